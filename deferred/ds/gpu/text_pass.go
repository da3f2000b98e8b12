package gpu

import (
	"fmt"
	"unsafe"

	"github.com/gekko3d/lumen/deferred/ds/core"
	"github.com/gekko3d/lumen/deferred/ds/shaders"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextPass draws HUD text from a single-channel glyph atlas.
type TextPass struct {
	ctx         *Context
	program     *renderProgram
	Renderer    *core.TextRenderer
	atlas       *Target
	bindGroup   *wgpu.BindGroup
	vertices    *wgpu.Buffer
	vertexCount uint32
}

func NewTextPass(ctx *Context, tr *core.TextRenderer) (*TextPass, error) {
	program, err := newRenderProgram(ctx.Device, programDesc{
		label:  "Text",
		source: shaders.TextWGSL,
		groups: []*wgpu.BindGroupLayout{ctx.Layouts.Text},
		buffers: []wgpu.VertexBufferLayout{{
			ArrayStride: uint64(unsafe.Sizeof(core.TextVertex{})),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
			},
		}},
		targets:  []wgpu.ColorTargetState{{Format: ctx.SurfaceFormat, Blend: alphaBlend, WriteMask: wgpu.ColorWriteMaskAll}},
		cullMode: wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}
	p := &TextPass{ctx: ctx, program: program, Renderer: tr}

	w, h := tr.AtlasImage.Bounds().Dx(), tr.AtlasImage.Bounds().Dy()
	desc := targetDescriptor("TextAtlas", wgpu.TextureFormatR8Unorm,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, uint32(w), uint32(h))
	if p.atlas, err = NewTarget(ctx.Device, desc); err != nil {
		p.Release()
		return nil, err
	}
	err = ctx.Queue.WriteTexture(p.atlas.Texture.AsImageCopy(), tr.AtlasImage.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(tr.AtlasImage.Stride),
		RowsPerImage: uint32(h),
	}, &desc.Size)
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("text atlas upload: %w", err)
	}

	p.bindGroup, err = ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "TextBG",
		Layout: ctx.Layouts.Text,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: p.atlas.View},
			{Binding: 1, Sampler: ctx.TextSampler},
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("text bind group: %w", err)
	}
	return p, nil
}

// Update rebuilds the glyph quads for items on a width x height screen.
func (p *TextPass) Update(items []core.TextItem, width, height int) error {
	vertices := p.Renderer.BuildVertices(items, width, height)
	p.vertexCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return nil
	}

	size := uint64(len(vertices)) * uint64(unsafe.Sizeof(core.TextVertex{}))
	if p.vertices == nil || p.vertices.GetSize() < size {
		if p.vertices != nil {
			p.vertices.Release()
		}
		var err error
		p.vertices, err = p.ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "TextVB",
			Size:  size * 2,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.vertexCount = 0
			return fmt.Errorf("text vertices: %w", err)
		}
	}
	p.ctx.Queue.WriteBuffer(p.vertices, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size))
	return nil
}

func (p *TextPass) Encode(encoder *wgpu.CommandEncoder, surface *wgpu.TextureView) error {
	if p.vertexCount == 0 {
		return nil
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "TextPass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    surface,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
	})
	pass.SetPipeline(p.program.Pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.SetVertexBuffer(0, p.vertices, 0, wgpu.WholeSize)
	pass.Draw(p.vertexCount, 1, 0, 0)
	return pass.End()
}

func (p *TextPass) Release() {
	if p.vertices != nil {
		p.vertices.Release()
		p.vertices = nil
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	p.atlas.Release()
	p.atlas = nil
	p.program.Release()
}
