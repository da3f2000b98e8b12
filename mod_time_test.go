package lumen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime_Advance(t *testing.T) {
	start := time.Unix(100, 0)
	tm := &Time{Time: start}

	tm.advance(start.Add(16 * time.Millisecond))
	assert.Equal(t, 16*time.Millisecond, tm.Dt)
	assert.InDelta(t, 0.016, tm.Seconds(), 1e-6)

	tm.advance(tm.Time.Add(5 * time.Second))
	assert.Equal(t, MaxFrameDt, tm.Dt, "long stalls are capped")
	assert.Equal(t, 16*time.Millisecond+MaxFrameDt, tm.Elapsed)

	tm.advance(tm.Time.Add(-time.Second))
	assert.Zero(t, tm.Dt, "a clock going backwards yields no step")
}

func TestTimeModule_SchedulesPrelude(t *testing.T) {
	app := NewAppBuilder().UseModule(TimeModule{}).Build()
	tm := Resource[Time](app)
	if assert.NotNil(t, tm) {
		before := tm.Time
		app.Step()
		assert.False(t, tm.Time.Before(before))
	}
	assert.Len(t, app.systemsStateless[Prelude.Name], 1)
}
