package app

import (
	"fmt"
	"strings"

	"github.com/gekko3d/lumen/deferred/ds/core"
)

// HUDStats is the per-frame state shown in the overlay.
type HUDStats struct {
	FPS          float64
	Pipeline     string
	ViewMode     string
	Width        int
	Height       int
	Objects      int
	Lights       int
	Visible      int
	Dropped      int
	Placeholders int
	Markers      bool
	Profile      string
}

var (
	hudColor  = [4]float32{1, 1, 0, 1}
	hudWarn   = [4]float32{1, 0.4, 0.3, 1}
	hudDim    = [4]float32{0.8, 0.8, 0.8, 1}
	hudMargin = float32(10)
	hudLineH  = float32(16)
)

// HUDLines lays the overlay out top-down from the upper-left corner.
func HUDLines(s HUDStats) []core.TextItem {
	var items []core.TextItem
	y := hudMargin
	add := func(text string, color [4]float32) {
		items = append(items, core.TextItem{
			Text:     text,
			Position: [2]float32{hudMargin, y},
			Scale:    1,
			Color:    color,
		})
		y += hudLineH
	}

	add(fmt.Sprintf("FPS: %.1f  %dx%d", s.FPS, s.Width, s.Height), hudColor)
	add(fmt.Sprintf("Pipeline: %s  View: %s", s.Pipeline, s.ViewMode), hudColor)
	add(fmt.Sprintf("Objects: %d  Lights: %d/%d visible", s.Objects, s.Visible, s.Lights), hudColor)
	if s.Dropped > 0 {
		add(fmt.Sprintf("Lights over capacity: %d", s.Dropped), hudWarn)
	}
	if s.Placeholders > 0 {
		add(fmt.Sprintf("Missing textures: %d", s.Placeholders), hudWarn)
	}
	markers := "off"
	if s.Markers {
		markers = "on"
	}
	add(fmt.Sprintf("Markers: %s  [L] markers  [F2] view  [Esc] quit", markers), hudDim)

	for _, line := range strings.Split(strings.TrimRight(s.Profile, "\n"), "\n") {
		if line == "" {
			continue
		}
		add(line, hudDim)
	}
	return items
}
