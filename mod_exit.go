package lumen

const (
	StateRunning State = iota
	StateExit
)

// ExitModule ends the run when the window is closed or Escape is pressed.
type ExitModule struct{}

func (ExitModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(exitSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
}

func exitSystem(s *WindowState, input *Input, cmd *Commands) {
	if s.ShouldClose() || input.JustPressed[KeyEscape] {
		cmd.Logger().Infof("exit requested")
		cmd.ChangeState(StateExit)
	}
}
