package shapes

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Meter geometry. The gauge sweeps meterSize radians centered on +Y, the
// fill arc rides between the two rim arcs and the decorative end caps sit
// just outside the sweep ends.
const (
	meterSize          = 1.5 * math.Pi
	meterFillRadius    = 1.3
	meterFillThickness = 0.4
	meterOuterRadius   = 1.6
	meterInnerRadius   = 0.8
	meterRimThickness  = 0.2
	meterCapRadius     = 0.5
	meterCapOffset     = 1.1

	defaultMeterScale = 3.0
)

// GaugeState is the gauge sample of the current frame, refreshed by the
// meter system before it draws. Not persisted across frames.
type GaugeState struct {
	FillFraction float64
}

// ArcSegment describes one gauge arc: centerline radius, angular span,
// stroke parameters and the render layer it is filtered to.
type ArcSegment struct {
	Radius    float64
	Start     float64
	End       float64
	Thickness float64
	Cap       CapStyle
	Color     Color
	Layer     Layer
}

// MeterFill maps elapsed seconds to the gauge fill fraction in [0,1].
func MeterFill(t float64) float64 {
	return (math.Sin(t) + 1) / 2
}

// meterColorScale brightens the fill arc as the gauge empties.
func meterColorScale(fill float64) float64 {
	return 1 / (0.5 + fill)
}

// MeterArcs returns the five arcs of the gauge for a given fill fraction,
// in draw order: fill arc, outer rim, inner rim, then the two end caps.
// Every segment satisfies Start <= End and all share the layer tag.
func MeterArcs(fill float64, layer Layer) []ArcSegment {
	start := -meterSize / 2
	end := start + fill*meterSize
	return []ArcSegment{
		{
			Radius:    meterFillRadius,
			Start:     start,
			End:       end,
			Thickness: meterFillThickness,
			Cap:       CapRound,
			Color:     ColorCrimson.Scaled(meterColorScale(fill)),
			Layer:     layer,
		},
		{
			Radius:    meterOuterRadius,
			Start:     start,
			End:       -start,
			Thickness: meterRimThickness,
			Cap:       CapNone,
			Color:     ColorDarkGray,
			Layer:     layer,
		},
		{
			Radius:    meterInnerRadius,
			Start:     start,
			End:       -start,
			Thickness: meterRimThickness,
			Cap:       CapNone,
			Color:     ColorDarkGray,
			Layer:     layer,
		},
		{
			Radius:    meterCapRadius,
			Start:     start + 1.5*math.Pi,
			End:       start + 2.5*math.Pi,
			Thickness: meterRimThickness,
			Cap:       CapNone,
			Color:     ColorDarkGray,
			Layer:     layer,
		},
		{
			Radius:    meterCapRadius,
			Start:     start + math.Pi,
			End:       start + 2*math.Pi,
			Thickness: meterRimThickness,
			Cap:       CapNone,
			Color:     ColorDarkGray,
			Layer:     layer,
		},
	}
}

func paintArc(painter ShapePainter, seg ArcSegment) {
	painter.SetCap(seg.Cap)
	painter.SetThickness(seg.Thickness)
	painter.SetColor(seg.Color)
	painter.Arc(seg.Radius, seg.Start, seg.End)
}

// DrawMeter draws the gauge for elapsed seconds t. It clears the painter,
// sets the layer tag and scale, then issues the five arcs from MeterArcs.
// The first end cap is drawn inside a translate/untranslate pair; the
// second leaves its translation in place and relies on the per-frame
// painter reset. Pure over t: equal inputs record equal command lists.
func DrawMeter(painter ShapePainter, t float64, layer Layer, scale float64) {
	fill := MeterFill(t)
	segments := MeterArcs(fill, layer)

	painter.Clear()
	painter.SetRenderLayer(layer)
	painter.SetHollow(true)
	painter.SetScale(scale)

	paintArc(painter, segments[0])
	paintArc(painter, segments[1])
	paintArc(painter, segments[2])

	start := -meterSize / 2
	capA := mgl64.Rotate2D(start).Mul2x1(mgl64.Vec2{0, 1}).Mul(meterCapOffset)
	painter.Translate(capA)
	paintArc(painter, segments[3])
	painter.Translate(capA.Mul(-1))

	capB := mgl64.Rotate2D(-start).Mul2x1(mgl64.Vec2{0, 1}).Mul(meterCapOffset)
	painter.Translate(capB)
	paintArc(painter, segments[4])
}

type meterConfig struct {
	layer       Layer
	scale       float64
	showReadout bool
}

// MeterModule draws the built-in circular gauge every frame. Scale 0 means
// the stock meter scale. ShowReadout pushes a percentage label to the text
// overlay and requires OverlayModule. PainterModule must be installed.
type MeterModule struct {
	Layer       Layer
	Scale       float64
	ShowReadout bool
}

func (mod MeterModule) Install(app *App, cmd *Commands) {
	scale := mod.Scale
	if scale == 0 {
		scale = defaultMeterScale
	}
	cmd.AddResources(
		&GaugeState{},
		&meterConfig{layer: mod.Layer, scale: scale, showReadout: mod.ShowReadout},
	)
	app.UseSystem(
		System(meterSystem).
			InStage(Update).
			RunAlways(),
	)
	if mod.ShowReadout {
		app.UseSystem(
			System(meterReadoutSystem).
				InStage(PostUpdate).
				RunAlways(),
		)
	}
}

func meterSystem(cfg *meterConfig, time *Time, painter *Painter, gauge *GaugeState) {
	gauge.FillFraction = MeterFill(time.Seconds())
	DrawMeter(painter, time.Seconds(), cfg.layer, cfg.scale)
}

func meterReadoutSystem(gauge *GaugeState, overlay *TextOverlay) {
	overlay.Push(TextItem{
		Text:  fmt.Sprintf("meter %3.0f%%", gauge.FillFraction*100),
		X:     24,
		Y:     24,
		Color: ColorWhite,
	})
}
