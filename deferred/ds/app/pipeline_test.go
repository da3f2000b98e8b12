package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePipelineKind(t *testing.T) {
	tests := []struct {
		in   string
		want PipelineKind
	}{
		{"", PipelineDeferred},
		{"deferred", PipelineDeferred},
		{" Deferred ", PipelineDeferred},
		{"FORWARD", PipelineForward},
	}
	for _, tt := range tests {
		got, err := ParsePipelineKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParsePipelineKind("raytraced")
	assert.Error(t, err)
}

func TestNewPipeline_UnknownKind(t *testing.T) {
	p, err := NewPipeline("clustered", nil, 640, 480)
	assert.Nil(t, p)
	assert.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, PipelineDeferred, o.Pipeline)
	assert.Greater(t, o.Exposure, float32(0))
	assert.Greater(t, o.MarkerScale, float32(0))
	assert.True(t, o.VSync)
}
