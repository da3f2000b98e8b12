package gpu

import (
	"fmt"

	"github.com/gekko3d/lumen/deferred/ds/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// LightingPass shades the full-screen quad from the G-buffer and the light array.
type LightingPass struct {
	ctx       *Context
	program   *renderProgram
	gbufferBG *wgpu.BindGroup
}

func NewLightingPass(ctx *Context) (*LightingPass, error) {
	program, err := newRenderProgram(ctx.Device, programDesc{
		label:    "DeferredLighting",
		source:   shaders.DeferredLighting(),
		groups:   []*wgpu.BindGroupLayout{ctx.Layouts.GBuffer, ctx.Layouts.Lighting},
		buffers:  []wgpu.VertexBufferLayout{QuadLayout()},
		targets:  []wgpu.ColorTargetState{{Format: LitFormat, WriteMask: wgpu.ColorWriteMaskAll}},
		cullMode: wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}
	return &LightingPass{ctx: ctx, program: program}, nil
}

// Bind points the pass at gbuf's targets. It must be called again after every resize.
func (p *LightingPass) Bind(gbuf *GBuffer) error {
	bg, err := p.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "GBufferBG",
		Layout: p.ctx.Layouts.GBuffer,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: gbuf.Position.View},
			{Binding: 1, TextureView: gbuf.Normal.View},
			{Binding: 2, TextureView: gbuf.AlbedoSpec.View},
		},
	})
	if err != nil {
		return fmt.Errorf("G-buffer bind group: %w", err)
	}
	if p.gbufferBG != nil {
		p.gbufferBG.Release()
	}
	p.gbufferBG = bg
	return nil
}

// Encode draws the quad once into target.
func (p *LightingPass) Encode(encoder *wgpu.CommandEncoder, target *Target, res *SceneResources) error {
	if p.gbufferBG == nil {
		return fmt.Errorf("lighting pass: no G-buffer bound")
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "LightingPass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       target.View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(p.program.Pipeline)
	pass.SetBindGroup(0, p.gbufferBG, nil)
	pass.SetBindGroup(1, res.LightingBindGroup, nil)
	pass.SetVertexBuffer(0, res.QuadBuffer, 0, wgpu.WholeSize)
	pass.Draw(QuadVertexCount, 1, 0, 0)
	return pass.End()
}

func (p *LightingPass) Release() {
	if p.gbufferBG != nil {
		p.gbufferBG.Release()
		p.gbufferBG = nil
	}
	p.program.Release()
}
