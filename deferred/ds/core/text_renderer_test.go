package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer_Atlas(t *testing.T) {
	tr := NewTextRenderer(nil)
	require.NotNil(t, tr.AtlasImage)

	for _, r := range "FPS 0123456789" {
		_, ok := tr.Glyphs[r]
		assert.True(t, ok, "missing glyph %q", r)
	}
	g := tr.Glyphs['A']
	assert.Greater(t, g.Adv, float32(0))
	assert.Less(t, g.UVMin[0], g.UVMax[0])
}

func TestTextRenderer_BuildVertices(t *testing.T) {
	tr := NewTextRenderer(nil)
	verts := tr.BuildVertices([]TextItem{{Text: "ab\nc", Position: [2]float32{10, 10}, Scale: 1, Color: [4]float32{1, 1, 1, 1}}}, 640, 480)
	assert.Len(t, verts, 3*6)
	for _, v := range verts {
		assert.GreaterOrEqual(t, v.Pos[0], float32(-1))
		assert.LessOrEqual(t, v.Pos[0], float32(1))
	}

	assert.Nil(t, tr.BuildVertices([]TextItem{{Text: "x"}}, 0, 0))
}

func TestTextRenderer_Measure(t *testing.T) {
	tr := NewTextRenderer(nil)
	w1, h1 := tr.MeasureText("abc", 1)
	w2, h2 := tr.MeasureText("abc\nabcdef", 2)
	assert.Greater(t, w1, float32(0))
	assert.Greater(t, w2, 2*w1)
	assert.InDelta(t, 4*h1, h2, 1e-3)

	var nilTR *TextRenderer
	w, h := nilTR.MeasureText("x", 1)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
