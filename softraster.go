package shapes

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultRasterSize    = 512
	defaultPixelsPerUnit = 64
)

// RasterOptions configures the software rasterizer. The image is centered on
// the painter origin with +Y up; PixelsPerUnit sets the zoom. Zero fields
// fall back to a 512x512 image at 64 pixels per unit showing the default
// layer on a transparent background.
type RasterOptions struct {
	Width         int
	Height        int
	PixelsPerUnit float64
	Background    Color
	Layers        LayerMask
}

func (opts RasterOptions) withDefaults() RasterOptions {
	if opts.Width <= 0 {
		opts.Width = defaultRasterSize
	}
	if opts.Height <= 0 {
		opts.Height = defaultRasterSize
	}
	if opts.PixelsPerUnit <= 0 {
		opts.PixelsPerUnit = defaultPixelsPerUnit
	}
	return opts
}

// Rasterize draws painter commands into an RGBA image on the CPU. Commands
// on layers outside opts.Layers are skipped. The output matches what the GPU
// backend draws for a camera over the same layers, modulo antialiasing.
func Rasterize(commands []Command, opts RasterOptions) *image.RGBA {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	background := opts.Background.Clamped()
	if background.A > 0 {
		dc.SetRGBA(background.R, background.G, background.B, background.A)
		dc.Clear()
	}

	// Painter space is y-up and centered; image space is y-down from the
	// top-left corner.
	dc.Translate(float64(opts.Width)/2, float64(opts.Height)/2)
	dc.Scale(opts.PixelsPerUnit, -opts.PixelsPerUnit)

	visible := opts.Layers.Normalized()
	for _, cmd := range commands {
		if !visible.Has(cmd.Style.Layer) {
			continue
		}
		rasterizeCommand(dc, cmd, opts.PixelsPerUnit)
	}

	return dc.Image().(*image.RGBA)
}

// RasterizePNG rasterizes commands and writes the image to path.
func RasterizePNG(commands []Command, opts RasterOptions, path string) error {
	if err := gg.SavePNG(path, Rasterize(commands, opts)); err != nil {
		return fmt.Errorf("save rasterized png: %w", err)
	}
	return nil
}

func rasterizeCommand(dc *gg.Context, cmd Command, pixelsPerUnit float64) {
	color := cmd.Style.Color.Clamped()
	dc.SetRGBA(color.R, color.G, color.B, color.A)

	// gg stroke widths are device pixels, unaffected by the path transform.
	strokeWidth := cmd.Style.Thickness * cmd.Style.Scale * pixelsPerUnit

	switch cmd.Kind {
	case CommandArc:
		rasterizeArc(dc, cmd, strokeWidth)
	case CommandLine:
		rasterizeLine(dc, cmd, strokeWidth)
	case CommandRect:
		rasterizeRect(dc, cmd, strokeWidth)
	case CommandCircle:
		rasterizeCircle(dc, cmd, strokeWidth)
	}
}

// worldPoint applies the command's local offset and scale, yielding painter
// world coordinates. The gg transform takes it to pixels from there.
func worldPoint(style Style, p mgl64.Vec2) (float64, float64) {
	w := p.Add(style.Offset).Mul(style.Scale)
	return w.X(), w.Y()
}

// ggAngle converts a painter angle, clockwise from +Y, to the gg convention
// of counterclockwise from +X in the y-up space set up by Rasterize.
func ggAngle(a float64) float64 {
	return math.Pi/2 - a
}

func rasterizeArc(dc *gg.Context, cmd Command, strokeWidth float64) {
	style := cmd.Style
	cx, cy := worldPoint(style, mgl64.Vec2{})
	radius := cmd.Radius * style.Scale

	if !style.Hollow {
		// Filled pie sector, same shape the tessellator fans out.
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, ggAngle(cmd.Start), ggAngle(cmd.End))
		dc.ClosePath()
		dc.Fill()
		return
	}

	dc.DrawArc(cx, cy, radius, ggAngle(cmd.Start), ggAngle(cmd.End))
	dc.SetLineWidth(strokeWidth)
	if style.Cap == CapRound {
		dc.SetLineCap(gg.LineCapRound)
	} else {
		dc.SetLineCap(gg.LineCapButt)
	}
	dc.Stroke()
}

func rasterizeLine(dc *gg.Context, cmd Command, strokeWidth float64) {
	style := cmd.Style
	ax, ay := worldPoint(style, cmd.A)
	bx, by := worldPoint(style, cmd.B)

	if cmd.A == cmd.B {
		// Degenerate segment: round caps degrade to a dot, other caps to
		// nothing, matching the tessellator.
		if style.Cap == CapRound {
			dc.DrawCircle(ax, ay, style.Thickness/2*style.Scale)
			dc.Fill()
		}
		return
	}

	dc.MoveTo(ax, ay)
	dc.LineTo(bx, by)
	dc.SetLineWidth(strokeWidth)
	dc.SetLineCap(rasterLineCap(style.Cap))
	dc.Stroke()
}

func rasterizeRect(dc *gg.Context, cmd Command, strokeWidth float64) {
	style := cmd.Style
	cx, cy := worldPoint(style, cmd.A)
	halfW := cmd.B.X() / 2 * style.Scale
	halfH := cmd.B.Y() / 2 * style.Scale

	if !style.Hollow {
		dc.DrawRectangle(cx-halfW, cy-halfH, halfW*2, halfH*2)
		dc.Fill()
		return
	}

	// Mitred frame: even-odd fill between the outer and inner expansion of
	// the rectangle by half the stroke. gg has no miter join, so the frame
	// is filled rather than stroked.
	half := style.Thickness / 2 * style.Scale
	dc.DrawRectangle(cx-halfW-half, cy-halfH-half, (halfW+half)*2, (halfH+half)*2)
	dc.NewSubPath()
	dc.DrawRectangle(cx-halfW+half, cy-halfH+half, (halfW-half)*2, (halfH-half)*2)
	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.Fill()
	dc.SetFillRule(gg.FillRuleWinding)
}

func rasterizeCircle(dc *gg.Context, cmd Command, strokeWidth float64) {
	style := cmd.Style
	cx, cy := worldPoint(style, mgl64.Vec2{})
	radius := cmd.Radius * style.Scale

	if !style.Hollow {
		dc.DrawCircle(cx, cy, radius)
		dc.Fill()
		return
	}

	dc.DrawCircle(cx, cy, radius)
	dc.SetLineWidth(strokeWidth)
	dc.Stroke()
}

func rasterLineCap(cap CapStyle) gg.LineCap {
	switch cap {
	case CapRound:
		return gg.LineCapRound
	case CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}
