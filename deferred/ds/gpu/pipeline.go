package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// renderProgram is a compiled shader with the pipeline built from it.
type renderProgram struct {
	Module   *wgpu.ShaderModule
	Layout   *wgpu.PipelineLayout
	Pipeline *wgpu.RenderPipeline
}

type programDesc struct {
	label    string
	source   string
	groups   []*wgpu.BindGroupLayout
	buffers  []wgpu.VertexBufferLayout
	targets  []wgpu.ColorTargetState
	depth    *wgpu.DepthStencilState
	cullMode wgpu.CullMode
	vsEntry  string
	fsEntry  string
}

func newRenderProgram(device *wgpu.Device, d programDesc) (*renderProgram, error) {
	if d.vsEntry == "" {
		d.vsEntry = "vs_main"
	}
	if d.fsEntry == "" {
		d.fsEntry = "fs_main"
	}

	p := &renderProgram{}
	var err error
	if p.Module, err = NewProgram(device, d.label+"Shader", d.source, d.vsEntry, d.fsEntry); err != nil {
		return nil, err
	}

	p.Layout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            d.label + "Layout",
		BindGroupLayouts: d.groups,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%s pipeline layout: %w", d.label, err)
	}

	p.Pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  d.label + "Pipeline",
		Layout: p.Layout,
		Vertex: wgpu.VertexState{
			Module:     p.Module,
			EntryPoint: d.vsEntry,
			Buffers:    d.buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.Module,
			EntryPoint: d.fsEntry,
			Targets:    d.targets,
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  d.cullMode,
		},
		DepthStencil: d.depth,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("%s pipeline: %w", d.label, err)
	}
	return p, nil
}

func (p *renderProgram) Release() {
	if p == nil {
		return
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
	if p.Layout != nil {
		p.Layout.Release()
		p.Layout = nil
	}
	if p.Module != nil {
		p.Module.Release()
		p.Module = nil
	}
}

// depthTest is a less-than depth state on format.
func depthTest(format wgpu.TextureFormat, write bool) *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: write,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}

var alphaBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
		Operation: wgpu.BlendOperationAdd,
	},
}
