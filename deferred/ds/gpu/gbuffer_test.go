package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGBufferLayout_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GBufferLayout)
		ok     bool
	}{
		{"default", func(*GBufferLayout) {}, true},
		{"zero width", func(l *GBufferLayout) { l.Width = 0 }, false},
		{"zero height", func(l *GBufferLayout) { l.Height = 0 }, false},
		{"too large", func(l *GBufferLayout) { l.Width = MaxTargetSize + 1 }, false},
		{"depth as color", func(l *GBufferLayout) { l.Normal = wgpu.TextureFormatDepth32Float }, false},
		{"uncopyable depth", func(l *GBufferLayout) { l.Depth = wgpu.TextureFormatDepth24Plus }, false},
		{"color as depth", func(l *GBufferLayout) { l.Depth = wgpu.TextureFormatRGBA8Unorm }, false},
		{"wide position", func(l *GBufferLayout) { l.Position = wgpu.TextureFormatRGBA32Float }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewGBufferLayout(1280, 720)
			tt.mutate(&l)
			err := l.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrGBufferIncomplete)
			}
		})
	}
}

func TestGBufferLayout_Descriptors(t *testing.T) {
	l := NewGBufferLayout(640, 480)
	descs := l.descriptors()
	require.Len(t, descs, 4)
	for _, d := range descs {
		assert.Equal(t, uint32(640), d.Size.Width)
		assert.Equal(t, uint32(480), d.Size.Height)
		assert.NotZero(t, d.Usage&wgpu.TextureUsageRenderAttachment)
	}
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, descs[0].Format)
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, descs[1].Format)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, descs[2].Format)
	assert.Equal(t, DepthFormat, descs[3].Format)
	assert.NotZero(t, descs[3].Usage&wgpu.TextureUsageCopySrc, "depth must be copyable to the scene depth")

	targets := l.ColorTargets()
	require.Len(t, targets, 3)
	for i, ct := range targets {
		assert.Equal(t, descs[i].Format, ct.Format)
	}
}

func TestGBuffer_CopyDepthRejectsMismatch(t *testing.T) {
	g := &GBuffer{Layout: NewGBufferLayout(100, 100)}
	err := g.CopyDepth(nil, &Target{Width: 50, Height: 100, Format: DepthFormat})
	assert.Error(t, err)
	err = g.CopyDepth(nil, &Target{Width: 100, Height: 100, Format: wgpu.TextureFormatDepth16Unorm})
	assert.Error(t, err)
}
