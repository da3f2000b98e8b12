package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(s HUDStats) []string {
	var out []string
	for _, it := range HUDLines(s) {
		out = append(out, it.Text)
	}
	return out
}

func TestHUDLines_Basic(t *testing.T) {
	items := HUDLines(HUDStats{
		FPS:      59.94,
		Pipeline: "deferred",
		ViewMode: "lit",
		Width:    800,
		Height:   600,
		Objects:  4,
		Lights:   5,
		Visible:  3,
		Markers:  true,
	})
	require.Len(t, items, 4)
	assert.Equal(t, "FPS: 59.9  800x600", items[0].Text)
	assert.Equal(t, "Pipeline: deferred  View: lit", items[1].Text)
	assert.Equal(t, "Objects: 4  Lights: 3/5 visible", items[2].Text)
	assert.Contains(t, items[3].Text, "Markers: on")

	for i := 1; i < len(items); i++ {
		assert.Greater(t, items[i].Position[1], items[i-1].Position[1])
		assert.Equal(t, items[0].Position[0], items[i].Position[0])
	}
}

func TestHUDLines_Warnings(t *testing.T) {
	lines := texts(HUDStats{Dropped: 2, Placeholders: 1})
	assert.Contains(t, lines, "Lights over capacity: 2")
	assert.Contains(t, lines, "Missing textures: 1")
	assert.Contains(t, lines[len(lines)-1], "Markers: off")
}

func TestHUDLines_ProfileSkipsBlankLines(t *testing.T) {
	p := NewProfiler()
	p.SetCount("draws", 2)
	lines := texts(HUDStats{Profile: p.GetStatsString()})
	for _, l := range lines {
		assert.NotEmpty(t, l)
	}
	assert.Contains(t, lines, "Stats:")
}
