package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProfiler() (*Profiler, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler()
	p.now = clock.now
	return p, clock
}

func TestProfiler_ScopesKeepFirstSeenOrder(t *testing.T) {
	p, clock := newTestProfiler()
	p.Smoothing = 1

	for _, name := range []string{"update", "geometry", "update", "lighting"} {
		p.BeginScope(name)
		clock.advance(2 * time.Millisecond)
		p.EndScope(name)
	}

	assert.Equal(t, []string{"update", "geometry", "lighting"}, p.Order)
	assert.Equal(t, 2*time.Millisecond, p.Scopes["geometry"])
}

func TestProfiler_Smoothing(t *testing.T) {
	p, clock := newTestProfiler()
	p.Smoothing = 0.5

	end := p.Scope("render")
	clock.advance(10 * time.Millisecond)
	end()
	require.Equal(t, 10*time.Millisecond, p.Scopes["render"])

	end = p.Scope("render")
	clock.advance(20 * time.Millisecond)
	end()
	assert.Equal(t, 15*time.Millisecond, p.Scopes["render"])
}

func TestProfiler_EndWithoutBegin(t *testing.T) {
	p, _ := newTestProfiler()
	p.EndScope("never")
	assert.Empty(t, p.Scopes)
}

func TestProfiler_ResetKeepsOrder(t *testing.T) {
	p, clock := newTestProfiler()
	end := p.Scope("geometry")
	clock.advance(time.Millisecond)
	end()

	p.Reset()
	assert.Equal(t, []string{"geometry"}, p.Order)
	assert.Zero(t, p.Scopes["geometry"])
}

func TestProfiler_StatsString(t *testing.T) {
	p, clock := newTestProfiler()
	end := p.Scope("lighting")
	clock.advance(1500 * time.Microsecond)
	end()
	p.SetCount("lights.visible", 3)
	p.SetCount("draws", 4)
	p.AddCount("draws", 1)

	s := p.GetStatsString()
	assert.Contains(t, s, "lighting       : 1.50 ms")
	draws := strings.Index(s, "draws")
	lights := strings.Index(s, "lights.visible")
	require.True(t, draws > 0 && lights > 0)
	assert.Less(t, draws, lights, "counts are sorted by name")
	assert.Contains(t, s, "draws          : 5")
}
