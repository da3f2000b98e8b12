package gpu

import (
	"github.com/gekko3d/lumen/deferred/ds/core"
	"github.com/gekko3d/lumen/deferred/ds/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// ForwardPass shades every object in a single pass, evaluating the light array per
// fragment. It writes the same lit target and scene depth the deferred path produces.
type ForwardPass struct {
	program *renderProgram
}

func NewForwardPass(ctx *Context) (*ForwardPass, error) {
	program, err := newRenderProgram(ctx.Device, programDesc{
		label:    "Forward",
		source:   shaders.Forward(),
		groups:   []*wgpu.BindGroupLayout{ctx.Layouts.Camera, ctx.Layouts.Object, ctx.Layouts.Material, ctx.Layouts.Lighting},
		buffers:  []wgpu.VertexBufferLayout{VertexLayout()},
		targets:  []wgpu.ColorTargetState{{Format: LitFormat, WriteMask: wgpu.ColorWriteMaskAll}},
		depth:    depthTest(DepthFormat, true),
		cullMode: wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}
	return &ForwardPass{program: program}, nil
}

func (p *ForwardPass) Encode(encoder *wgpu.CommandEncoder, targets *FrameTargets, res *SceneResources, scene *core.Scene) (int, error) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "ForwardPass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       targets.Lit.View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            targets.Depth.View,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(p.program.Pipeline)
	pass.SetBindGroup(0, res.CameraBindGroup, nil)
	pass.SetBindGroup(3, res.LightingBindGroup, nil)
	draws := res.DrawObjects(pass, scene)
	return draws, pass.End()
}

func (p *ForwardPass) Release() {
	p.program.Release()
}
