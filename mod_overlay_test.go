package shapes

import "testing"

func TestTextOverlay_PushAndReset(t *testing.T) {
	overlay := &TextOverlay{}
	overlay.Push(TextItem{Text: "hello", X: 10, Y: 20})
	overlay.Push(
		TextItem{Text: "a"},
		TextItem{Text: "b"},
	)

	if overlay.Len() != 3 {
		t.Fatalf("Expected 3 items, got %v", overlay.Len())
	}
	if overlay.Items()[0].Text != "hello" {
		t.Errorf("Expected items in push order, got %q first", overlay.Items()[0].Text)
	}

	overlayResetSystem(overlay)

	if overlay.Len() != 0 {
		t.Errorf("Expected overlay cleared at frame start, got %v items", overlay.Len())
	}
}

func TestOverlayModule_InstallsOverlayAndAtlas(t *testing.T) {
	app := NewAppBuilder().
		UseModule(OverlayModule{}).
		Build()

	if resourceOf[TextOverlay](app) == nil {
		t.Error("Expected TextOverlay resource after install")
	}
	atlas := resourceOf[TextAtlas](app)
	if atlas == nil {
		t.Fatal("Expected TextAtlas resource after install")
	}
	if len(atlas.Glyphs) == 0 {
		t.Errorf("Expected a populated glyph atlas")
	}
}
