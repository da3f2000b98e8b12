package gpu

import (
	"github.com/gekko3d/lumen/deferred/ds/core"
	"github.com/gekko3d/lumen/deferred/ds/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// GeometryPass rasterizes every object into the G-buffer: world position, world normal,
// and albedo with specular intensity in alpha.
type GeometryPass struct {
	program *renderProgram
}

func NewGeometryPass(ctx *Context, layout GBufferLayout) (*GeometryPass, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	program, err := newRenderProgram(ctx.Device, programDesc{
		label:  "GBuffer",
		source: shaders.GBufferWGSL,
		groups: []*wgpu.BindGroupLayout{ctx.Layouts.Camera, ctx.Layouts.Object, ctx.Layouts.Material},
		buffers: []wgpu.VertexBufferLayout{
			VertexLayout(),
		},
		targets:  layout.ColorTargets(),
		depth:    depthTest(layout.Depth, true),
		cullMode: wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}
	return &GeometryPass{program: program}, nil
}

// Encode clears the G-buffer and draws the scene into it. It returns the draw count.
func (p *GeometryPass) Encode(encoder *wgpu.CommandEncoder, gbuf *GBuffer, res *SceneResources, scene *core.Scene) (int, error) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:                  "GeometryPass",
		ColorAttachments:       gbuf.ColorAttachments(),
		DepthStencilAttachment: gbuf.DepthAttachment(),
	})
	pass.SetPipeline(p.program.Pipeline)
	pass.SetBindGroup(0, res.CameraBindGroup, nil)
	draws := res.DrawObjects(pass, scene)
	return draws, pass.End()
}

func (p *GeometryPass) Release() {
	p.program.Release()
}
