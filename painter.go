package shapes

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Layer tags a drawn primitive for camera filtering. Valid layers are 0..31.
type Layer uint8

// LayerMask is a camera-side bitset of layers.
type LayerMask uint32

// LayerBit returns the mask containing only the given layer.
func LayerBit(layer Layer) LayerMask {
	return LayerMask(1) << layer
}

// LayerMaskOf builds a mask from a set of layers.
func LayerMaskOf(layers ...Layer) LayerMask {
	var mask LayerMask
	for _, l := range layers {
		mask |= LayerBit(l)
	}
	return mask
}

// Has reports whether the mask contains the layer.
func (m LayerMask) Has(layer Layer) bool {
	return m&LayerBit(layer) != 0
}

// Normalized substitutes the zero mask with layer 0, the default layer.
// A camera or raster pass that never sets a mask sees the default layer
// instead of nothing.
func (m LayerMask) Normalized() LayerMask {
	if m == 0 {
		return LayerBit(0)
	}
	return m
}

// CapStyle selects how open ends of arcs and lines are finished.
type CapStyle int

const (
	CapNone CapStyle = iota
	CapRound
	CapSquare
)

// Color is an RGBA color with float64 components. Components may exceed 1;
// backends clamp when converting to output formats.
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite    = Color{R: 1, G: 1, B: 1, A: 1}
	ColorBlack    = Color{R: 0, G: 0, B: 0, A: 1}
	ColorCrimson  = Color{R: 220.0 / 255.0, G: 20.0 / 255.0, B: 60.0 / 255.0, A: 1}
	ColorDarkGray = Color{R: 0.25, G: 0.25, B: 0.25, A: 1}
)

// Scaled multiplies the RGB components by s and preserves alpha.
func (c Color) Scaled(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamped returns the color with all components clamped to [0,1].
func (c Color) Clamped() Color {
	return Color{R: clampUnit(c.R), G: clampUnit(c.G), B: clampUnit(c.B), A: clampUnit(c.A)}
}

func colorToVec4(c Color) [4]float32 {
	c = c.Clamped()
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// Style is the painter state captured into every command at issue time.
type Style struct {
	Color     Color
	Thickness float64
	Cap       CapStyle
	Hollow    bool
	Layer     Layer
	Scale     float64
	Offset    mgl64.Vec2
}

func defaultStyle() Style {
	return Style{
		Color:     ColorWhite,
		Thickness: 0.1,
		Cap:       CapNone,
		Hollow:    false,
		Layer:     0,
		Scale:     1,
	}
}

type CommandKind int

const (
	CommandArc CommandKind = iota
	CommandLine
	CommandRect
	CommandCircle
)

// Command is one recorded primitive. Geometry is in painter space before
// style scale and offset are applied; angles are radians measured clockwise
// from +Y, so the point at angle a sits at offset + radius*(sin a, cos a).
type Command struct {
	Kind   CommandKind
	Radius float64    // arc, circle
	Start  float64    // arc
	End    float64    // arc
	A      mgl64.Vec2 // line start; rect center
	B      mgl64.Vec2 // line end; rect size (width, height)
	Style  Style
}

// ShapePainter is the capability set widgets draw against: style mutators,
// origin translation and arc emission. *Painter implements it; tests use
// recording stubs.
type ShapePainter interface {
	Clear()
	SetRenderLayer(layer Layer)
	SetHollow(hollow bool)
	SetCap(cap CapStyle)
	SetThickness(thickness float64)
	SetColor(color Color)
	SetScale(scale float64)
	Arc(radius, startAngle, endAngle float64)
	Translate(offset mgl64.Vec2)
}

// Painter records immediate-mode shape commands for one frame. It is reset
// at the top of every frame by PainterModule; backends read the command
// list during the render stages without consuming it.
type Painter struct {
	style    Style
	commands []Command
}

func NewPainter() *Painter {
	return &Painter{style: defaultStyle()}
}

// Clear drops all recorded commands and resets the style to defaults.
func (p *Painter) Clear() {
	p.commands = p.commands[:0]
	p.style = defaultStyle()
}

func (p *Painter) SetRenderLayer(layer Layer) {
	p.style.Layer = layer
}

func (p *Painter) SetHollow(hollow bool) {
	p.style.Hollow = hollow
}

func (p *Painter) SetCap(cap CapStyle) {
	p.style.Cap = cap
}

func (p *Painter) SetThickness(thickness float64) {
	p.style.Thickness = thickness
}

func (p *Painter) SetColor(color Color) {
	p.style.Color = color
}

// SetScale sets the uniform scale applied to all subsequent geometry.
func (p *Painter) SetScale(scale float64) {
	p.style.Scale = scale
}

// Translate adds offset to the local drawing origin. Translating by the
// negated offset undoes it; Clear resets the origin for the next frame.
func (p *Painter) Translate(offset mgl64.Vec2) {
	p.style.Offset = p.style.Offset.Add(offset)
}

// Arc records an arc of the given centerline radius between two angles.
// Zero-span arcs are recorded too: with round caps they render as a dot.
func (p *Painter) Arc(radius, startAngle, endAngle float64) {
	p.commands = append(p.commands, Command{
		Kind:   CommandArc,
		Radius: radius,
		Start:  startAngle,
		End:    endAngle,
		Style:  p.style,
	})
}

// Line records a segment between two points, stroked with the current
// thickness and caps.
func (p *Painter) Line(a, b mgl64.Vec2) {
	p.commands = append(p.commands, Command{
		Kind:  CommandLine,
		A:     a,
		B:     b,
		Style: p.style,
	})
}

// Rect records an axis-aligned rectangle centered at center.
func (p *Painter) Rect(center mgl64.Vec2, width, height float64) {
	p.commands = append(p.commands, Command{
		Kind:  CommandRect,
		A:     center,
		B:     mgl64.Vec2{width, height},
		Style: p.style,
	})
}

// Circle records a full circle of the given radius around the local origin.
func (p *Painter) Circle(radius float64) {
	p.commands = append(p.commands, Command{
		Kind:   CommandCircle,
		Radius: radius,
		Style:  p.style,
	})
}

// Commands returns the commands recorded since the last Clear. The slice is
// owned by the painter and valid until the next Clear.
func (p *Painter) Commands() []Command {
	return p.commands
}

// Len returns the number of recorded commands.
func (p *Painter) Len() int {
	return len(p.commands)
}

// Style returns a copy of the current style state.
func (p *Painter) Style() Style {
	return p.style
}

// PainterModule installs the shared Painter resource and clears it at the
// top of every frame, which is the per-frame reset contract widgets rely on.
type PainterModule struct{}

func (mod PainterModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewPainter())
	app.UseSystem(
		System(painterResetSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func painterResetSystem(painter *Painter) {
	painter.Clear()
}
