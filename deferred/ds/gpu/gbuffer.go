package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var ErrGBufferIncomplete = errors.New("gpu: G-buffer incomplete")

// MaxTargetSize is the default WebGPU limit on 2D texture dimensions.
const MaxTargetSize = 8192

// GBufferLayout describes the geometry pass targets before anything is allocated.
type GBufferLayout struct {
	Width      uint32
	Height     uint32
	Position   wgpu.TextureFormat
	Normal     wgpu.TextureFormat
	AlbedoSpec wgpu.TextureFormat
	Depth      wgpu.TextureFormat
}

func NewGBufferLayout(width, height uint32) GBufferLayout {
	return GBufferLayout{
		Width:      width,
		Height:     height,
		Position:   wgpu.TextureFormatRGBA16Float,
		Normal:     wgpu.TextureFormatRGBA16Float,
		AlbedoSpec: wgpu.TextureFormatRGBA8Unorm,
		Depth:      DepthFormat,
	}
}

// colorFormats can be rendered to and read back with textureLoad as floats.
var colorFormats = map[wgpu.TextureFormat]bool{
	wgpu.TextureFormatRGBA8Unorm:   true,
	wgpu.TextureFormatRGBA16Float:  true,
	wgpu.TextureFormatRGBA32Float:  true,
	wgpu.TextureFormatRGB10A2Unorm: true,
}

// depthFormats can be copied into the scene depth target.
var depthFormats = map[wgpu.TextureFormat]bool{
	wgpu.TextureFormatDepth32Float: true,
	wgpu.TextureFormatDepth16Unorm: true,
}

// Validate is the completeness check run before any target exists.
func (l GBufferLayout) Validate() error {
	if l.Width == 0 || l.Height == 0 {
		return fmt.Errorf("%w: empty viewport %dx%d", ErrGBufferIncomplete, l.Width, l.Height)
	}
	if l.Width > MaxTargetSize || l.Height > MaxTargetSize {
		return fmt.Errorf("%w: viewport %dx%d exceeds %d", ErrGBufferIncomplete, l.Width, l.Height, MaxTargetSize)
	}
	for name, f := range map[string]wgpu.TextureFormat{"position": l.Position, "normal": l.Normal, "albedo": l.AlbedoSpec} {
		if !colorFormats[f] {
			return fmt.Errorf("%w: %s target format %v is not a readable color format", ErrGBufferIncomplete, name, f)
		}
	}
	if !depthFormats[l.Depth] {
		return fmt.Errorf("%w: depth format %v cannot be copied", ErrGBufferIncomplete, l.Depth)
	}
	return nil
}

// ColorTargets are the geometry pipeline's fragment outputs, in attachment order.
func (l GBufferLayout) ColorTargets() []wgpu.ColorTargetState {
	return []wgpu.ColorTargetState{
		{Format: l.Position, WriteMask: wgpu.ColorWriteMaskAll},
		{Format: l.Normal, WriteMask: wgpu.ColorWriteMaskAll},
		{Format: l.AlbedoSpec, WriteMask: wgpu.ColorWriteMaskAll},
	}
}

func (l GBufferLayout) descriptors() []wgpu.TextureDescriptor {
	color := wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding
	return []wgpu.TextureDescriptor{
		targetDescriptor("GBufferPosition", l.Position, color, l.Width, l.Height),
		targetDescriptor("GBufferNormal", l.Normal, color, l.Width, l.Height),
		targetDescriptor("GBufferAlbedoSpec", l.AlbedoSpec, color, l.Width, l.Height),
		targetDescriptor("GBufferDepth", l.Depth, color|wgpu.TextureUsageCopySrc, l.Width, l.Height),
	}
}

// GBuffer owns the geometry pass targets. All of them share Layout's size; a resize
// builds a new GBuffer.
type GBuffer struct {
	Layout     GBufferLayout
	Position   *Target
	Normal     *Target
	AlbedoSpec *Target
	Depth      *Target
}

func NewGBuffer(device *wgpu.Device, layout GBufferLayout) (*GBuffer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	g := &GBuffer{Layout: layout}
	slots := []**Target{&g.Position, &g.Normal, &g.AlbedoSpec, &g.Depth}
	for i, desc := range layout.descriptors() {
		t, err := NewTarget(device, desc)
		if err != nil {
			g.Release()
			return nil, fmt.Errorf("%w: %v", ErrGBufferIncomplete, err)
		}
		*slots[i] = t
	}
	return g, nil
}

// ColorAttachments clears every color target to zero, so uncovered pixels have w = 0.
func (g *GBuffer) ColorAttachments() []wgpu.RenderPassColorAttachment {
	attach := func(t *Target) wgpu.RenderPassColorAttachment {
		return wgpu.RenderPassColorAttachment{
			View:       t.View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 0},
		}
	}
	return []wgpu.RenderPassColorAttachment{attach(g.Position), attach(g.Normal), attach(g.AlbedoSpec)}
}

func (g *GBuffer) DepthAttachment() *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            g.Depth.View,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: 1.0,
	}
}

// CopyDepth records the transfer of the geometry depth into dst so later forward
// draws are occluded by deferred geometry.
func (g *GBuffer) CopyDepth(encoder *wgpu.CommandEncoder, dst *Target) error {
	if dst.Width != g.Layout.Width || dst.Height != g.Layout.Height {
		return fmt.Errorf("depth copy: target %dx%d does not match G-buffer %dx%d",
			dst.Width, dst.Height, g.Layout.Width, g.Layout.Height)
	}
	if dst.Format != g.Layout.Depth {
		return fmt.Errorf("depth copy: format %v does not match %v", dst.Format, g.Layout.Depth)
	}
	encoder.CopyTextureToTexture(
		&wgpu.ImageCopyTexture{Texture: g.Depth.Texture, Aspect: wgpu.TextureAspectAll},
		&wgpu.ImageCopyTexture{Texture: dst.Texture, Aspect: wgpu.TextureAspectAll},
		&wgpu.Extent3D{Width: g.Layout.Width, Height: g.Layout.Height, DepthOrArrayLayers: 1},
	)
	return nil
}

func (g *GBuffer) Release() {
	if g == nil {
		return
	}
	g.Depth.Release()
	g.AlbedoSpec.Release()
	g.Normal.Release()
	g.Position.Release()
}
