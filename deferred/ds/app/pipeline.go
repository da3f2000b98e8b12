package app

import (
	"fmt"
	"strings"

	"github.com/gekko3d/lumen/deferred/ds/core"
	"github.com/gekko3d/lumen/deferred/ds/gpu"

	"github.com/cogentcore/webgpu/wgpu"
)

type PipelineKind string

const (
	PipelineDeferred PipelineKind = "deferred"
	PipelineForward  PipelineKind = "forward"
)

func ParsePipelineKind(s string) (PipelineKind, error) {
	switch PipelineKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", PipelineDeferred:
		return PipelineDeferred, nil
	case PipelineForward:
		return PipelineForward, nil
	}
	return "", fmt.Errorf("unknown pipeline %q (want deferred or forward)", s)
}

// Frame is what a pipeline needs to encode one frame.
type Frame struct {
	Encoder   *wgpu.CommandEncoder
	Scene     *core.Scene
	Resources *gpu.SceneResources
	Targets   *gpu.FrameTargets
	Profiler  *Profiler
}

// Pipeline renders the scene into Targets.Lit. After ResolveDepth, Targets.Depth holds the
// scene depth so forward-drawn overlays are occluded correctly.
type Pipeline interface {
	Name() string
	Resize(width, height uint32) error
	Encode(f *Frame) error
	ResolveDepth(f *Frame) error
	Release()
}

func NewPipeline(kind PipelineKind, ctx *gpu.Context, width, height uint32) (Pipeline, error) {
	switch kind {
	case PipelineDeferred, "":
		return NewDeferredPipeline(ctx, width, height)
	case PipelineForward:
		return NewForwardPipeline(ctx)
	}
	return nil, fmt.Errorf("unknown pipeline %q", kind)
}

// DeferredPipeline fills a G-buffer, then shades it once per pixel.
type DeferredPipeline struct {
	ctx      *gpu.Context
	Geometry *gpu.GeometryPass
	Lighting *gpu.LightingPass
	GBuffer  *gpu.GBuffer
}

func NewDeferredPipeline(ctx *gpu.Context, width, height uint32) (*DeferredPipeline, error) {
	layout := gpu.NewGBufferLayout(width, height)
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	geometry, err := gpu.NewGeometryPass(ctx, layout)
	if err != nil {
		return nil, err
	}
	lighting, err := gpu.NewLightingPass(ctx)
	if err != nil {
		geometry.Release()
		return nil, err
	}
	p := &DeferredPipeline{ctx: ctx, Geometry: geometry, Lighting: lighting}
	if err := p.Resize(width, height); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *DeferredPipeline) Name() string { return string(PipelineDeferred) }

// Resize rebuilds every G-buffer target at the new size and rebinds the lighting pass.
func (p *DeferredPipeline) Resize(width, height uint32) error {
	gbuf, err := gpu.NewGBuffer(p.ctx.Device, gpu.NewGBufferLayout(width, height))
	if err != nil {
		return err
	}
	if err := p.Lighting.Bind(gbuf); err != nil {
		gbuf.Release()
		return err
	}
	p.GBuffer.Release()
	p.GBuffer = gbuf
	return nil
}

func (p *DeferredPipeline) Encode(f *Frame) error {
	end := f.Profiler.Scope("geometry")
	draws, err := p.Geometry.Encode(f.Encoder, p.GBuffer, f.Resources, f.Scene)
	end()
	if err != nil {
		return fmt.Errorf("geometry pass: %w", err)
	}
	f.Profiler.SetCount("draws", draws)

	end = f.Profiler.Scope("lighting")
	err = p.Lighting.Encode(f.Encoder, f.Targets.Lit, f.Resources)
	end()
	if err != nil {
		return fmt.Errorf("lighting pass: %w", err)
	}
	return nil
}

func (p *DeferredPipeline) ResolveDepth(f *Frame) error {
	return p.GBuffer.CopyDepth(f.Encoder, f.Targets.Depth)
}

func (p *DeferredPipeline) Release() {
	p.GBuffer.Release()
	p.GBuffer = nil
	if p.Lighting != nil {
		p.Lighting.Release()
	}
	if p.Geometry != nil {
		p.Geometry.Release()
	}
}

// ForwardPipeline shades each object directly; it writes the scene depth itself.
type ForwardPipeline struct {
	Forward *gpu.ForwardPass
}

func NewForwardPipeline(ctx *gpu.Context) (*ForwardPipeline, error) {
	fwd, err := gpu.NewForwardPass(ctx)
	if err != nil {
		return nil, err
	}
	return &ForwardPipeline{Forward: fwd}, nil
}

func (p *ForwardPipeline) Name() string { return string(PipelineForward) }

func (p *ForwardPipeline) Resize(width, height uint32) error { return nil }

func (p *ForwardPipeline) Encode(f *Frame) error {
	end := f.Profiler.Scope("forward")
	draws, err := p.Forward.Encode(f.Encoder, f.Targets, f.Resources, f.Scene)
	end()
	if err != nil {
		return fmt.Errorf("forward pass: %w", err)
	}
	f.Profiler.SetCount("draws", draws)
	return nil
}

func (p *ForwardPipeline) ResolveDepth(f *Frame) error { return nil }

func (p *ForwardPipeline) Release() {
	p.Forward.Release()
}
