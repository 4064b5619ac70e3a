package shapes

// TextOverlay collects immediate-mode labels for the current frame. It is
// reset at the top of every frame; backends drain it during render.
type TextOverlay struct {
	items []TextItem
}

func (overlay *TextOverlay) Push(items ...TextItem) {
	overlay.items = append(overlay.items, items...)
}

// Items returns the labels pushed since the last reset.
func (overlay *TextOverlay) Items() []TextItem {
	return overlay.items
}

func (overlay *TextOverlay) Clear() {
	overlay.items = overlay.items[:0]
}

func (overlay *TextOverlay) Len() int {
	return len(overlay.items)
}

const defaultOverlayFontSize = 16

// OverlayModule provides the shared text overlay and its glyph atlas.
// FontSize 0 means the default size.
type OverlayModule struct {
	FontSize float64
}

func (mod OverlayModule) Install(app *App, cmd *Commands) {
	size := mod.FontSize
	if size == 0 {
		size = defaultOverlayFontSize
	}
	atlas, err := NewTextAtlas(size)
	if err != nil {
		panic(err)
	}
	cmd.AddResources(&TextOverlay{}, atlas)
	app.UseSystem(
		System(overlayResetSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func overlayResetSystem(overlay *TextOverlay) {
	overlay.Clear()
}
