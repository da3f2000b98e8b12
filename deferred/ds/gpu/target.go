package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Target is a texture with its default view.
type Target struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Format  wgpu.TextureFormat
	Width   uint32
	Height  uint32
}

func targetDescriptor(label string, format wgpu.TextureFormat, usage wgpu.TextureUsage, w, h uint32) wgpu.TextureDescriptor {
	return wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	}
}

func NewTarget(device *wgpu.Device, desc wgpu.TextureDescriptor) (*Target, error) {
	tex, err := device.CreateTexture(&desc)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", desc.Label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture view %s: %w", desc.Label, err)
	}
	return &Target{
		Texture: tex,
		View:    view,
		Format:  desc.Format,
		Width:   desc.Size.Width,
		Height:  desc.Size.Height,
	}, nil
}

func (t *Target) Release() {
	if t == nil {
		return
	}
	if t.View != nil {
		t.View.Release()
		t.View = nil
	}
	if t.Texture != nil {
		t.Texture.Release()
		t.Texture = nil
	}
}

const (
	LitFormat   = wgpu.TextureFormatRGBA16Float
	DepthFormat = wgpu.TextureFormatDepth32Float
)

// FrameTargets are the viewport-sized targets downstream of the G-buffer: the HDR lit
// image and the scene depth that forward-drawn overlays test against.
type FrameTargets struct {
	Lit   *Target
	Depth *Target
}

func NewFrameTargets(device *wgpu.Device, w, h uint32) (*FrameTargets, error) {
	lit, err := NewTarget(device, targetDescriptor("LitTarget", LitFormat,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding, w, h))
	if err != nil {
		return nil, err
	}
	depth, err := NewTarget(device, targetDescriptor("SceneDepth", DepthFormat,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageCopyDst, w, h))
	if err != nil {
		lit.Release()
		return nil, err
	}
	return &FrameTargets{Lit: lit, Depth: depth}, nil
}

func (f *FrameTargets) Release() {
	if f == nil {
		return
	}
	f.Depth.Release()
	f.Lit.Release()
}
