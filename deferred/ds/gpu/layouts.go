package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Layouts holds the bind group layouts shared by every pass.
type Layouts struct {
	Camera    *wgpu.BindGroupLayout // group 0 of scene passes
	Object    *wgpu.BindGroupLayout // group 1 of scene passes
	Material  *wgpu.BindGroupLayout // group 2 of scene passes
	Lighting  *wgpu.BindGroupLayout
	GBuffer   *wgpu.BindGroupLayout
	Composite *wgpu.BindGroupLayout
	Text      *wgpu.BindGroupLayout
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:             wgpu.BufferBindingTypeUniform,
			MinBindingSize:   size,
			HasDynamicOffset: false,
		},
	}
}

func textureEntry(binding uint32, sampleType wgpu.TextureSampleType) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    sampleType,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

func samplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
	}
}

func layoutDescriptors() map[string]*wgpu.BindGroupLayoutDescriptor {
	return map[string]*wgpu.BindGroupLayoutDescriptor{
		"camera": {
			Label:   "CameraBGL",
			Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, CameraUniformSize)},
		},
		"object": {
			Label:   "ObjectBGL",
			Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageVertex, ObjectUniformSize)},
		},
		"material": {
			Label: "MaterialBGL",
			Entries: []wgpu.BindGroupLayoutEntry{
				textureEntry(0, wgpu.TextureSampleTypeFloat),
				textureEntry(1, wgpu.TextureSampleTypeFloat),
				samplerEntry(2),
				uniformEntry(3, wgpu.ShaderStageFragment, MaterialUniformSize),
			},
		},
		"lighting": {
			Label:   "LightingBGL",
			Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageFragment, LightingUniformSize)},
		},
		// G-buffer targets are read with textureLoad, one texel per fragment
		"gbuffer": {
			Label: "GBufferBGL",
			Entries: []wgpu.BindGroupLayoutEntry{
				textureEntry(0, wgpu.TextureSampleTypeUnfilterableFloat),
				textureEntry(1, wgpu.TextureSampleTypeUnfilterableFloat),
				textureEntry(2, wgpu.TextureSampleTypeUnfilterableFloat),
			},
		},
		"composite": {
			Label: "CompositeBGL",
			Entries: []wgpu.BindGroupLayoutEntry{
				textureEntry(0, wgpu.TextureSampleTypeUnfilterableFloat),
				uniformEntry(1, wgpu.ShaderStageFragment, CompositeUniformSize),
			},
		},
		"text": {
			Label: "TextBGL",
			Entries: []wgpu.BindGroupLayoutEntry{
				textureEntry(0, wgpu.TextureSampleTypeFloat),
				samplerEntry(1),
			},
		},
	}
}

func NewLayouts(device *wgpu.Device) (*Layouts, error) {
	descs := layoutDescriptors()
	l := &Layouts{}
	targets := map[string]**wgpu.BindGroupLayout{
		"camera":    &l.Camera,
		"object":    &l.Object,
		"material":  &l.Material,
		"lighting":  &l.Lighting,
		"gbuffer":   &l.GBuffer,
		"composite": &l.Composite,
		"text":      &l.Text,
	}
	for name, dst := range targets {
		bgl, err := device.CreateBindGroupLayout(descs[name])
		if err != nil {
			l.Release()
			return nil, fmt.Errorf("bind group layout %s: %w", name, err)
		}
		*dst = bgl
	}
	return l, nil
}

func (l *Layouts) Release() {
	for _, bgl := range []*wgpu.BindGroupLayout{l.Camera, l.Object, l.Material, l.Lighting, l.GBuffer, l.Composite, l.Text} {
		if bgl != nil {
			bgl.Release()
		}
	}
}
