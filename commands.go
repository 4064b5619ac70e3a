package shapes

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Quit asks the run loop to stop after the current frame.
func (cmd *Commands) Quit() *Commands {
	cmd.app.requestQuit()
	return cmd
}
