package shapes

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// maxArcStep caps the angular step used when flattening curved geometry.
const maxArcStep = math.Pi / 32

// ShapeVertex is the GPU vertex produced by tessellation. Positions are in
// world units on the z=0 plane; the shape shader lifts them through the
// camera matrix.
type ShapeVertex struct {
	Position [2]float32 `shapes:"layout" location:"0" format:"float2"`
	Color    [4]float32 `shapes:"layout" location:"1" format:"float4"`
}

// arcPoint maps a painter angle to the unit circle. Angles are measured
// clockwise from +Y.
func arcPoint(angle float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Sin(angle), math.Cos(angle)}
}

func arcSteps(span float64) int {
	steps := int(math.Ceil(math.Abs(span) / maxArcStep))
	if steps < 1 {
		steps = 1
	}
	return steps
}

// Tessellate flattens every command whose layer is in visible into a flat
// triangle list. Commands keep their recorded order, so later commands
// paint over earlier ones.
func Tessellate(commands []Command, visible LayerMask) []ShapeVertex {
	var out []ShapeVertex
	for _, cmd := range commands {
		if !visible.Has(cmd.Style.Layer) {
			continue
		}
		switch cmd.Kind {
		case CommandArc:
			out = appendArc(out, cmd)
		case CommandCircle:
			out = appendCircle(out, cmd)
		case CommandLine:
			out = appendLine(out, cmd)
		case CommandRect:
			out = appendRect(out, cmd)
		}
	}
	return out
}

func shapeVertex(style Style, p mgl64.Vec2) ShapeVertex {
	world := p.Add(style.Offset).Mul(style.Scale)
	return ShapeVertex{
		Position: [2]float32{float32(world.X()), float32(world.Y())},
		Color:    colorToVec4(style.Color),
	}
}

func appendTriangle(dst []ShapeVertex, style Style, a, b, c mgl64.Vec2) []ShapeVertex {
	return append(dst,
		shapeVertex(style, a),
		shapeVertex(style, b),
		shapeVertex(style, c),
	)
}

func appendQuad(dst []ShapeVertex, style Style, a, b, c, d mgl64.Vec2) []ShapeVertex {
	dst = appendTriangle(dst, style, a, b, c)
	return appendTriangle(dst, style, a, c, d)
}

// appendRibbon emits the constant-thickness band that follows the arc
// centerline between two angles.
func appendRibbon(dst []ShapeVertex, cmd Command, inner, outer float64) []ShapeVertex {
	steps := arcSteps(cmd.End - cmd.Start)
	delta := (cmd.End - cmd.Start) / float64(steps)
	for i := 0; i < steps; i++ {
		a0 := cmd.Start + float64(i)*delta
		a1 := a0 + delta
		p0 := arcPoint(a0)
		p1 := arcPoint(a1)
		dst = appendQuad(dst, cmd.Style,
			p0.Mul(inner), p0.Mul(outer),
			p1.Mul(outer), p1.Mul(inner),
		)
	}
	return dst
}

// appendSector emits a filled pie slice out to the arc radius.
func appendSector(dst []ShapeVertex, cmd Command) []ShapeVertex {
	steps := arcSteps(cmd.End - cmd.Start)
	delta := (cmd.End - cmd.Start) / float64(steps)
	center := mgl64.Vec2{}
	for i := 0; i < steps; i++ {
		a0 := cmd.Start + float64(i)*delta
		a1 := a0 + delta
		dst = appendTriangle(dst, cmd.Style,
			center,
			arcPoint(a0).Mul(cmd.Radius),
			arcPoint(a1).Mul(cmd.Radius),
		)
	}
	return dst
}

// appendDisc emits a full disc around center, used for dots.
func appendDisc(dst []ShapeVertex, style Style, center mgl64.Vec2, radius float64) []ShapeVertex {
	steps := arcSteps(2 * math.Pi)
	delta := 2 * math.Pi / float64(steps)
	for i := 0; i < steps; i++ {
		a0 := float64(i) * delta
		a1 := a0 + delta
		dst = appendTriangle(dst, style,
			center,
			center.Add(arcPoint(a0).Mul(radius)),
			center.Add(arcPoint(a1).Mul(radius)),
		)
	}
	return dst
}

// appendHalfDisc emits the semicircular fan from basis u through w to -u,
// used for round caps: u spans the stroke cross-section at the end point, w
// points outward, so the cap sits flush against the stroke with no overlap.
func appendHalfDisc(dst []ShapeVertex, style Style, center, u, w mgl64.Vec2, radius float64) []ShapeVertex {
	steps := arcSteps(math.Pi)
	delta := math.Pi / float64(steps)
	for i := 0; i < steps; i++ {
		t0 := float64(i) * delta
		t1 := t0 + delta
		p0 := u.Mul(math.Cos(t0)).Add(w.Mul(math.Sin(t0)))
		p1 := u.Mul(math.Cos(t1)).Add(w.Mul(math.Sin(t1)))
		dst = appendTriangle(dst, style,
			center,
			center.Add(p0.Mul(radius)),
			center.Add(p1.Mul(radius)),
		)
	}
	return dst
}

func appendArc(dst []ShapeVertex, cmd Command) []ShapeVertex {
	if !cmd.Style.Hollow {
		return appendSector(dst, cmd)
	}
	half := cmd.Style.Thickness / 2
	dst = appendRibbon(dst, cmd, cmd.Radius-half, cmd.Radius+half)
	if cmd.Style.Cap == CapRound {
		lo, hi := cmd.Start, cmd.End
		if hi < lo {
			lo, hi = hi, lo
		}
		// Cap cross-sections run radially; the outward tangents point past
		// the sweep ends. A zero-span arc gets two opposing half discs,
		// which is the full dot.
		dst = appendHalfDisc(dst, cmd.Style,
			arcPoint(lo).Mul(cmd.Radius), arcPoint(lo), mgl64.Vec2{-math.Cos(lo), math.Sin(lo)}, half)
		dst = appendHalfDisc(dst, cmd.Style,
			arcPoint(hi).Mul(cmd.Radius), arcPoint(hi), mgl64.Vec2{math.Cos(hi), -math.Sin(hi)}, half)
	}
	return dst
}

func appendCircle(dst []ShapeVertex, cmd Command) []ShapeVertex {
	if !cmd.Style.Hollow {
		return appendDisc(dst, cmd.Style, mgl64.Vec2{}, cmd.Radius)
	}
	half := cmd.Style.Thickness / 2
	ring := cmd
	ring.Start = 0
	ring.End = 2 * math.Pi
	return appendRibbon(dst, ring, cmd.Radius-half, cmd.Radius+half)
}

func appendLine(dst []ShapeVertex, cmd Command) []ShapeVertex {
	dir := cmd.B.Sub(cmd.A)
	length := dir.Len()
	if length == 0 {
		if cmd.Style.Cap == CapRound {
			return appendDisc(dst, cmd.Style, cmd.A, cmd.Style.Thickness/2)
		}
		return dst
	}
	dir = dir.Mul(1 / length)
	half := cmd.Style.Thickness / 2
	side := mgl64.Vec2{-dir.Y(), dir.X()}
	normal := side.Mul(half)
	a, b := cmd.A, cmd.B
	if cmd.Style.Cap == CapSquare {
		a = a.Sub(dir.Mul(half))
		b = b.Add(dir.Mul(half))
	}
	dst = appendQuad(dst, cmd.Style,
		a.Sub(normal), a.Add(normal),
		b.Add(normal), b.Sub(normal),
	)
	if cmd.Style.Cap == CapRound {
		dst = appendHalfDisc(dst, cmd.Style, cmd.A, side, dir.Mul(-1), half)
		dst = appendHalfDisc(dst, cmd.Style, cmd.B, side, dir, half)
	}
	return dst
}

func appendRect(dst []ShapeVertex, cmd Command) []ShapeVertex {
	center := cmd.A
	halfW := cmd.B.X() / 2
	halfH := cmd.B.Y() / 2
	if !cmd.Style.Hollow {
		return appendQuad(dst, cmd.Style,
			center.Add(mgl64.Vec2{-halfW, -halfH}),
			center.Add(mgl64.Vec2{-halfW, halfH}),
			center.Add(mgl64.Vec2{halfW, halfH}),
			center.Add(mgl64.Vec2{halfW, -halfH}),
		)
	}
	half := cmd.Style.Thickness / 2
	// Frame between the outer and inner rectangle, mitred at the corners.
	outer := [4]mgl64.Vec2{
		center.Add(mgl64.Vec2{-halfW - half, -halfH - half}),
		center.Add(mgl64.Vec2{-halfW - half, halfH + half}),
		center.Add(mgl64.Vec2{halfW + half, halfH + half}),
		center.Add(mgl64.Vec2{halfW + half, -halfH - half}),
	}
	inner := [4]mgl64.Vec2{
		center.Add(mgl64.Vec2{-halfW + half, -halfH + half}),
		center.Add(mgl64.Vec2{-halfW + half, halfH - half}),
		center.Add(mgl64.Vec2{halfW - half, halfH - half}),
		center.Add(mgl64.Vec2{halfW - half, -halfH + half}),
	}
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		dst = appendQuad(dst, cmd.Style, inner[i], outer[i], outer[j], inner[j])
	}
	return dst
}
