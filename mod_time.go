package lumen

import (
	"time"
)

// MaxFrameDt caps a single frame step.
const MaxFrameDt = 250 * time.Millisecond

type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
}

// Seconds is Dt in seconds, the unit every simulation step uses.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

func (t *Time) advance(now time.Time) {
	dt := now.Sub(t.Time)
	if dt < 0 {
		dt = 0
	}
	t.Dt = min(dt, MaxFrameDt)
	t.Elapsed += t.Dt
	t.Time = now
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{Time: time.Now()})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(t *Time) {
	t.advance(time.Now())
}
