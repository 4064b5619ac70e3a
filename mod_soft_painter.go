package shapes

import "image"

// Pixmap is the output of the software backend: the last rasterized frame
// and a counter of frames produced. Image is nil until the first render.
type Pixmap struct {
	Image *image.RGBA
	Frame uint64
}

type softPainterConfig struct {
	options RasterOptions
}

// SoftPainterModule renders painter commands on the CPU into a Pixmap
// resource instead of a window. It needs no display and suits headless runs,
// snapshot tooling and tests.
type SoftPainterModule struct {
	Options RasterOptions
}

func (mod SoftPainterModule) Install(app *App, cmd *Commands) {
	ensureSingleBackend(app, string(BackendSoft))

	if resourceOf[Lifecycle](app) == nil {
		LifecycleModule{}.Install(app, cmd)
	}

	cmd.AddResources(
		&Pixmap{},
		&softPainterConfig{options: mod.Options.withDefaults()},
	)
	app.UseSystem(
		System(softRenderSystem).
			InStage(Render).
			RunAlways(),
	)
}

func softRenderSystem(cfg *softPainterConfig, painter *Painter, pixmap *Pixmap) {
	pixmap.Image = Rasterize(painter.Commands(), cfg.options)
	pixmap.Frame++
}
