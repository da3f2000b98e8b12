package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Context bundles the device objects every pass is built from.
type Context struct {
	Device        *wgpu.Device
	Queue         *wgpu.Queue
	SurfaceFormat wgpu.TextureFormat
	Layouts       *Layouts
	// Sampler filters material textures; TextSampler keeps the bitmap font crisp.
	Sampler     *wgpu.Sampler
	TextSampler *wgpu.Sampler
}

func NewContext(device *wgpu.Device, surfaceFormat wgpu.TextureFormat) (*Context, error) {
	ctx := &Context{
		Device:        device,
		Queue:         device.GetQueue(),
		SurfaceFormat: surfaceFormat,
	}

	var err error
	if ctx.Layouts, err = NewLayouts(device); err != nil {
		return nil, err
	}

	ctx.Sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "MaterialSampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("material sampler: %w", err)
	}

	ctx.TextSampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "TextSampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("text sampler: %w", err)
	}
	return ctx, nil
}

// IsSRGB reports whether writes to format are gamma encoded by the hardware.
func IsSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

func (c *Context) Release() {
	if c.TextSampler != nil {
		c.TextSampler.Release()
		c.TextSampler = nil
	}
	if c.Sampler != nil {
		c.Sampler.Release()
		c.Sampler = nil
	}
	if c.Layouts != nil {
		c.Layouts.Release()
		c.Layouts = nil
	}
}
