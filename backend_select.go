package shapes

// BackendName identifies a concrete painter backend module.
// Keep names aligned with ensureSingleBackend tags.
type BackendName string

const (
	BackendGPU  BackendName = "gpu"
	BackendSoft BackendName = "soft"
)

// Backend is an alias to Module for semantic clarity in APIs.
type Backend interface {
	Module
}

// UseBackend installs the painter core plus exactly one backend module.
// Exclusivity is enforced at install time by the backend itself.
// Usage:
//
//	builder.UseBackend(shapes.GpuPainterModule{})
func (b *AppBuilder) UseBackend(mod Backend) *AppBuilder {
	return b.UseModule(PainterModule{}, mod)
}

// UseGPUPainter selects the wgpu backend with a shared window of the given
// size. Installs the painter core and the window module along the way.
func (b *AppBuilder) UseGPUPainter(width, height int, title string) *AppBuilder {
	return b.UseModule(
		PainterModule{},
		NewPlatformWindow(width, height, title),
		GpuPainterModule{},
	)
}

// UseSoftPainter selects the headless software raster backend.
func (b *AppBuilder) UseSoftPainter(opts RasterOptions) *AppBuilder {
	return b.UseModule(
		PainterModule{},
		SoftPainterModule{Options: opts},
	)
}
