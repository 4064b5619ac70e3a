package shapes

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPainter_DefaultStyle(t *testing.T) {
	p := NewPainter()
	style := p.Style()

	if style.Color != ColorWhite {
		t.Errorf("Expected default color white, got %v", style.Color)
	}
	if style.Thickness != 0.1 {
		t.Errorf("Expected default thickness 0.1, got %v", style.Thickness)
	}
	if style.Cap != CapNone {
		t.Errorf("Expected default cap CapNone, got %v", style.Cap)
	}
	if style.Hollow {
		t.Errorf("Expected default hollow false")
	}
	if style.Layer != 0 {
		t.Errorf("Expected default layer 0, got %v", style.Layer)
	}
	if style.Scale != 1 {
		t.Errorf("Expected default scale 1, got %v", style.Scale)
	}
	if style.Offset != (mgl64.Vec2{}) {
		t.Errorf("Expected default offset zero, got %v", style.Offset)
	}
}

func TestPainter_CommandSnapshotsStyle(t *testing.T) {
	p := NewPainter()
	p.SetColor(ColorCrimson)
	p.SetThickness(0.4)
	p.SetHollow(true)
	p.SetCap(CapRound)
	p.Arc(1.3, -1, 1)

	// Style changes after the fact must not leak into recorded commands.
	p.SetColor(ColorDarkGray)
	p.SetThickness(0.2)

	cmds := p.Commands()
	if len(cmds) != 1 {
		t.Fatalf("Expected 1 command, got %v", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Kind != CommandArc {
		t.Errorf("Expected CommandArc, got %v", cmd.Kind)
	}
	if cmd.Radius != 1.3 || cmd.Start != -1 || cmd.End != 1 {
		t.Errorf("Unexpected arc geometry: %+v", cmd)
	}
	if cmd.Style.Color != ColorCrimson {
		t.Errorf("Expected snapshotted crimson, got %v", cmd.Style.Color)
	}
	if cmd.Style.Thickness != 0.4 {
		t.Errorf("Expected snapshotted thickness 0.4, got %v", cmd.Style.Thickness)
	}
	if !cmd.Style.Hollow || cmd.Style.Cap != CapRound {
		t.Errorf("Expected hollow round-capped style, got %+v", cmd.Style)
	}
}

func TestPainter_TranslateAccumulatesAndUndoes(t *testing.T) {
	p := NewPainter()
	p.Translate(mgl64.Vec2{1, 2})
	p.Translate(mgl64.Vec2{3, -1})
	if got := p.Style().Offset; got != (mgl64.Vec2{4, 1}) {
		t.Errorf("Expected offset (4,1), got %v", got)
	}

	p.Translate(mgl64.Vec2{4, 1}.Mul(-1))
	if got := p.Style().Offset; got != (mgl64.Vec2{}) {
		t.Errorf("Expected offset back at zero, got %v", got)
	}
}

func TestPainter_RecordsAllKinds(t *testing.T) {
	p := NewPainter()
	p.Arc(1, 0, 1)
	p.Line(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0})
	p.Rect(mgl64.Vec2{2, 2}, 4, 2)
	p.Circle(0.5)

	cmds := p.Commands()
	if len(cmds) != 4 {
		t.Fatalf("Expected 4 commands, got %v", len(cmds))
	}
	kinds := []CommandKind{CommandArc, CommandLine, CommandRect, CommandCircle}
	for i, kind := range kinds {
		if cmds[i].Kind != kind {
			t.Errorf("Command %d: expected kind %v, got %v", i, kind, cmds[i].Kind)
		}
	}
	if cmds[2].A != (mgl64.Vec2{2, 2}) || cmds[2].B != (mgl64.Vec2{4, 2}) {
		t.Errorf("Rect should store center in A and size in B, got A=%v B=%v", cmds[2].A, cmds[2].B)
	}
}

func TestPainter_ClearResetsCommandsAndStyle(t *testing.T) {
	p := NewPainter()
	p.SetScale(3)
	p.SetRenderLayer(1)
	p.Translate(mgl64.Vec2{1, 1})
	p.Circle(2)
	p.Line(mgl64.Vec2{}, mgl64.Vec2{1, 0})
	if p.Len() != 2 {
		t.Fatalf("Expected 2 commands before Clear, got %v", p.Len())
	}

	p.Clear()

	if p.Len() != 0 {
		t.Errorf("Expected no commands after Clear, got %v", p.Len())
	}
	if p.Style() != defaultStyle() {
		t.Errorf("Expected default style after Clear, got %+v", p.Style())
	}
}

func TestPainterResetSystem_ClearsBetweenFrames(t *testing.T) {
	p := NewPainter()
	p.SetRenderLayer(5)
	p.Circle(1)

	painterResetSystem(p)

	if p.Len() != 0 {
		t.Errorf("Expected painter cleared at frame start, got %v commands", p.Len())
	}
	if p.Style().Layer != 0 {
		t.Errorf("Expected layer reset to 0, got %v", p.Style().Layer)
	}
}

func TestLayerMask(t *testing.T) {
	mask := LayerMaskOf(0, 3)
	if !mask.Has(0) || !mask.Has(3) {
		t.Errorf("Expected mask to contain layers 0 and 3")
	}
	if mask.Has(1) {
		t.Errorf("Expected mask to not contain layer 1")
	}
	if LayerBit(4) != 1<<4 {
		t.Errorf("Expected LayerBit(4) == 16, got %v", LayerBit(4))
	}
	if LayerMask(0).Normalized() != LayerBit(0) {
		t.Errorf("Expected zero mask to normalize to layer 0")
	}
	if mask.Normalized() != mask {
		t.Errorf("Expected non-zero mask to normalize to itself")
	}
}

func TestColor_ScaledAndClamped(t *testing.T) {
	c := Color{R: 0.5, G: 0.25, B: 1, A: 0.8}
	scaled := c.Scaled(2)
	if scaled.R != 1 || scaled.G != 0.5 || scaled.B != 2 {
		t.Errorf("Expected RGB doubled, got %v", scaled)
	}
	if scaled.A != 0.8 {
		t.Errorf("Expected alpha untouched by Scaled, got %v", scaled.A)
	}

	clamped := scaled.Clamped()
	if clamped.B != 1 {
		t.Errorf("Expected B clamped to 1, got %v", clamped.B)
	}

	vec := colorToVec4(Color{R: -1, G: 2, B: 0.5, A: 1})
	if vec[0] != 0 || vec[1] != 1 || vec[2] != 0.5 || vec[3] != 1 {
		t.Errorf("Expected clamped vec4, got %v", vec)
	}
}
