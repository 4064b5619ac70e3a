package shapes

// PlatformWindowModule provides the shared GLFW window as a WindowState
// resource. Install is idempotent: an existing WindowState is reused, so the
// window can be configured before a backend that would otherwise create it.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates the window module. Zero width or height fall
// back to the stock window size.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = defaultWindowWidth
	}
	if height <= 0 {
		height = defaultWindowHeight
	}
	if title == "" {
		title = defaultWindowTitle
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if resourceOf[WindowState](app) != nil {
		return
	}
	cmd.AddResources(createWindowState(m.Width, m.Height, m.Title))
}
