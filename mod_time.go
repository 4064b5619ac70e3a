package shapes

import (
	"time"
)

// Time is the frame clock resource. Elapsed accumulates monotonically from
// the moment the module is installed; widgets use Seconds() as their phase.
type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
}

// Seconds returns the elapsed time since application start as float64 seconds.
func (t *Time) Seconds() float64 {
	return t.Elapsed.Seconds()
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:    time.Now(),
		Dt:      0,
		Elapsed: 0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Elapsed += timeResource.Dt
}
