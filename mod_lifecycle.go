package shapes

// Lifecycle collects shutdown requests raised during a frame. The run loop
// stops after the frame in which a request was seen.
type Lifecycle struct {
	quitRequested bool
}

// RequestQuit marks the application for shutdown at the end of the frame.
func (lc *Lifecycle) RequestQuit() {
	lc.quitRequested = true
}

// QuitRequested reports whether a shutdown request is pending.
func (lc *Lifecycle) QuitRequested() bool {
	return lc.quitRequested
}

type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Lifecycle{})
	app.UseSystem(
		System(lifecycleSystem).
			InStage(Finale).
			RunAlways(),
	)
}

func lifecycleSystem(lc *Lifecycle, cmd *Commands) {
	if lc.quitRequested {
		cmd.Quit()
	}
}
