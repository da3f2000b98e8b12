package gpu

import (
	"fmt"

	"github.com/gekko3d/lumen/deferred/ds/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// CompositePass tone maps the HDR lit target onto the presentable surface.
type CompositePass struct {
	ctx      *Context
	program  *renderProgram
	uniform  *wgpu.Buffer
	litBG    *wgpu.BindGroup
	Exposure float32
}

func NewCompositePass(ctx *Context, exposure float32) (*CompositePass, error) {
	program, err := newRenderProgram(ctx.Device, programDesc{
		label:    "Composite",
		source:   shaders.CompositeWGSL,
		groups:   []*wgpu.BindGroupLayout{ctx.Layouts.Composite},
		buffers:  []wgpu.VertexBufferLayout{QuadLayout()},
		targets:  []wgpu.ColorTargetState{{Format: ctx.SurfaceFormat, WriteMask: wgpu.ColorWriteMaskAll}},
		cullMode: wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}
	uniform, err := ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "CompositeUB",
		Size:  CompositeUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		program.Release()
		return nil, fmt.Errorf("composite uniform: %w", err)
	}
	p := &CompositePass{ctx: ctx, program: program, uniform: uniform}
	p.SetExposure(exposure)
	return p, nil
}

func (p *CompositePass) SetExposure(exposure float32) {
	if exposure <= 0 {
		exposure = 1
	}
	p.Exposure = exposure
	p.ctx.Queue.WriteBuffer(p.uniform, 0, PackComposite(exposure, !IsSRGB(p.ctx.SurfaceFormat)))
}

// Bind points the pass at the lit target; call again after every resize.
func (p *CompositePass) Bind(lit *Target) error {
	bg, err := p.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "CompositeBG",
		Layout: p.ctx.Layouts.Composite,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: lit.View},
			{Binding: 1, Buffer: p.uniform, Size: CompositeUniformSize},
		},
	})
	if err != nil {
		return fmt.Errorf("composite bind group: %w", err)
	}
	if p.litBG != nil {
		p.litBG.Release()
	}
	p.litBG = bg
	return nil
}

func (p *CompositePass) Encode(encoder *wgpu.CommandEncoder, surface *wgpu.TextureView, res *SceneResources) error {
	if p.litBG == nil {
		return fmt.Errorf("composite pass: no lit target bound")
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "CompositePass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       surface,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(p.program.Pipeline)
	pass.SetBindGroup(0, p.litBG, nil)
	pass.SetVertexBuffer(0, res.QuadBuffer, 0, wgpu.WholeSize)
	pass.Draw(QuadVertexCount, 1, 0, 0)
	return pass.End()
}

func (p *CompositePass) Release() {
	if p.litBG != nil {
		p.litBG.Release()
		p.litBG = nil
	}
	if p.uniform != nil {
		p.uniform.Release()
		p.uniform = nil
	}
	p.program.Release()
}
