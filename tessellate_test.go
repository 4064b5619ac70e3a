package shapes

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func hasVertexNear(verts []ShapeVertex, x, y, tol float64) bool {
	for _, v := range verts {
		dx := float64(v.Position[0]) - x
		dy := float64(v.Position[1]) - y
		if math.Hypot(dx, dy) <= tol {
			return true
		}
	}
	return false
}

func tessellateOne(cmd Command) []ShapeVertex {
	return Tessellate([]Command{cmd}, LayerBit(cmd.Style.Layer))
}

func TestTessellate_HollowArcStaysOnBand(t *testing.T) {
	style := defaultStyle()
	style.Hollow = true
	style.Thickness = 0.4
	cmd := Command{Kind: CommandArc, Radius: 1.3, Start: -1, End: 1, Style: style}

	verts := tessellateOne(cmd)
	if len(verts) == 0 {
		t.Fatal("Expected vertices for a hollow arc")
	}
	if len(verts)%3 != 0 {
		t.Fatalf("Expected a whole number of triangles, got %v vertices", len(verts))
	}

	inner := 1.3 - 0.2
	outer := 1.3 + 0.2
	for i, v := range verts {
		d := math.Hypot(float64(v.Position[0]), float64(v.Position[1]))
		if d < inner-1e-6 || d > outer+1e-6 {
			t.Fatalf("Vertex %d at distance %v, outside band [%v, %v]", i, d, inner, outer)
		}
	}

	// Both angular endpoints of the centerline are covered.
	start := arcPoint(-1).Mul(1.3)
	end := arcPoint(1).Mul(1.3)
	if !hasVertexNear(verts, start.X(), start.Y(), 0.21) {
		t.Errorf("Expected geometry near arc start %v", start)
	}
	if !hasVertexNear(verts, end.X(), end.Y(), 0.21) {
		t.Errorf("Expected geometry near arc end %v", end)
	}
}

func TestTessellate_SolidArcIsSector(t *testing.T) {
	style := defaultStyle()
	cmd := Command{Kind: CommandArc, Radius: 2, Start: 0, End: math.Pi / 2, Style: style}

	verts := tessellateOne(cmd)
	steps := arcSteps(math.Pi / 2)
	if len(verts) != steps*3 {
		t.Fatalf("Expected %v vertices for the sector fan, got %v", steps*3, len(verts))
	}
	// Fan apex at the local origin.
	if verts[0].Position != ([2]float32{0, 0}) {
		t.Errorf("Expected fan apex at origin, got %v", verts[0].Position)
	}
	// Rim vertices on the full radius.
	d := math.Hypot(float64(verts[1].Position[0]), float64(verts[1].Position[1]))
	if math.Abs(d-2) > 1e-6 {
		t.Errorf("Expected rim vertex at radius 2, got %v", d)
	}
}

func TestTessellate_RoundCapsAddHalfDiscsAtEndpoints(t *testing.T) {
	style := defaultStyle()
	style.Hollow = true
	style.Thickness = 0.4

	butt := Command{Kind: CommandArc, Radius: 1.3, Start: -1, End: 1, Style: style}
	style.Cap = CapRound
	round := Command{Kind: CommandArc, Radius: 1.3, Start: -1, End: 1, Style: style}

	buttVerts := tessellateOne(butt)
	roundVerts := tessellateOne(round)

	capVerts := arcSteps(math.Pi) * 3
	if len(roundVerts) != len(buttVerts)+2*capVerts {
		t.Errorf("Expected two half-disc caps of %v vertices each, got %v extra",
			capVerts, len(roundVerts)-len(buttVerts))
	}

	// Cap fans are centered on the centerline endpoints.
	end := arcPoint(1).Mul(1.3)
	if !hasVertexNear(roundVerts, end.X(), end.Y(), 1e-6) {
		t.Errorf("Expected cap center at %v", end)
	}

	// The cap apex bulges past the sweep end along the tangent.
	apex := end.Add(mgl64.Vec2{math.Cos(1), -math.Sin(1)}.Mul(0.2))
	if !hasVertexNear(roundVerts, apex.X(), apex.Y(), 1e-6) {
		t.Errorf("Expected cap apex at %v", apex)
	}
	if hasVertexNear(buttVerts, apex.X(), apex.Y(), 1e-6) {
		t.Error("Expected no cap geometry without round caps")
	}
}

func TestTessellate_ZeroSpanArcWithRoundCapIsDot(t *testing.T) {
	style := defaultStyle()
	style.Hollow = true
	style.Thickness = 0.4
	butt := Command{Kind: CommandArc, Radius: 1, Start: 0.5, End: 0.5, Style: style}
	style.Cap = CapRound
	round := Command{Kind: CommandArc, Radius: 1, Start: 0.5, End: 0.5, Style: style}

	if len(tessellateOne(round)) <= len(tessellateOne(butt)) {
		t.Errorf("Expected a dot from the round caps of a zero-span arc")
	}
}

func TestTessellate_LayerFilter(t *testing.T) {
	base := defaultStyle()
	layer1 := base
	layer1.Layer = 1

	commands := []Command{
		{Kind: CommandCircle, Radius: 1, Style: base},
		{Kind: CommandCircle, Radius: 1, Style: layer1},
	}

	both := Tessellate(commands, LayerMaskOf(0, 1))
	only0 := Tessellate(commands, LayerBit(0))
	only2 := Tessellate(commands, LayerBit(2))

	if len(only0)*2 != len(both) {
		t.Errorf("Expected half the vertices with one of two layers visible, got %v of %v",
			len(only0), len(both))
	}
	if len(only2) != 0 {
		t.Errorf("Expected no vertices for an unused layer, got %v", len(only2))
	}
}

func TestTessellate_AppliesOffsetThenScale(t *testing.T) {
	style := defaultStyle()
	style.Thickness = 0.2
	style.Offset = mgl64.Vec2{1, 1}
	style.Scale = 2
	cmd := Command{Kind: CommandLine, A: mgl64.Vec2{0, 0}, B: mgl64.Vec2{1, 0}, Style: style}

	verts := tessellateOne(cmd)
	if len(verts) != 6 {
		t.Fatalf("Expected 6 vertices for a butt line, got %v", len(verts))
	}
	// Corner a - normal = (0, -0.1), world = ((0,-0.1)+(1,1))*2 = (2, 1.8).
	if !hasVertexNear(verts, 2, 1.8, 1e-6) {
		t.Errorf("Expected corner at (2, 1.8) after offset and scale")
	}
	// Corner b + normal = (1, 0.1), world = (4, 2.2).
	if !hasVertexNear(verts, 4, 2.2, 1e-6) {
		t.Errorf("Expected corner at (4, 2.2) after offset and scale")
	}
}

func TestTessellate_SquareCapExtendsLine(t *testing.T) {
	style := defaultStyle()
	style.Thickness = 0.2
	style.Cap = CapSquare
	cmd := Command{Kind: CommandLine, A: mgl64.Vec2{0, 0}, B: mgl64.Vec2{1, 0}, Style: style}

	verts := tessellateOne(cmd)
	minX := math.Inf(1)
	maxX := math.Inf(-1)
	for _, v := range verts {
		minX = math.Min(minX, float64(v.Position[0]))
		maxX = math.Max(maxX, float64(v.Position[0]))
	}
	if math.Abs(minX+0.1) > 1e-6 || math.Abs(maxX-1.1) > 1e-6 {
		t.Errorf("Expected square caps to extend to [-0.1, 1.1], got [%v, %v]", minX, maxX)
	}
}

func TestTessellate_ZeroLengthLine(t *testing.T) {
	style := defaultStyle()
	style.Thickness = 0.2
	butt := Command{Kind: CommandLine, A: mgl64.Vec2{1, 1}, B: mgl64.Vec2{1, 1}, Style: style}

	if got := tessellateOne(butt); len(got) != 0 {
		t.Errorf("Expected nothing for a zero-length butt line, got %v vertices", len(got))
	}

	style.Cap = CapRound
	round := Command{Kind: CommandLine, A: mgl64.Vec2{1, 1}, B: mgl64.Vec2{1, 1}, Style: style}
	verts := tessellateOne(round)
	if len(verts) == 0 {
		t.Fatal("Expected a dot for a zero-length round line")
	}
	for _, v := range verts {
		d := math.Hypot(float64(v.Position[0])-1, float64(v.Position[1])-1)
		if d > 0.1+1e-6 {
			t.Fatalf("Dot vertex outside cap radius: distance %v", d)
		}
	}
}

func TestTessellate_Rect(t *testing.T) {
	style := defaultStyle()
	solid := Command{Kind: CommandRect, A: mgl64.Vec2{1, 2}, B: mgl64.Vec2{4, 2}, Style: style}
	verts := tessellateOne(solid)
	if len(verts) != 6 {
		t.Fatalf("Expected 6 vertices for a solid rect, got %v", len(verts))
	}
	for _, corner := range [][2]float64{{-1, 1}, {3, 1}, {3, 3}, {-1, 3}} {
		if !hasVertexNear(verts, corner[0], corner[1], 1e-6) {
			t.Errorf("Expected solid rect corner at %v", corner)
		}
	}

	style.Hollow = true
	style.Thickness = 0.2
	hollow := Command{Kind: CommandRect, A: mgl64.Vec2{0, 0}, B: mgl64.Vec2{2, 2}, Style: style}
	verts = tessellateOne(hollow)
	if len(verts) != 24 {
		t.Fatalf("Expected 24 vertices for a hollow rect frame, got %v", len(verts))
	}
	// Mitred outer corner half a thickness outside, inner corner inside.
	if !hasVertexNear(verts, 1.1, 1.1, 1e-6) {
		t.Errorf("Expected outer frame corner at (1.1, 1.1)")
	}
	if !hasVertexNear(verts, 0.9, 0.9, 1e-6) {
		t.Errorf("Expected inner frame corner at (0.9, 0.9)")
	}
}

func TestTessellate_Circle(t *testing.T) {
	style := defaultStyle()
	solid := Command{Kind: CommandCircle, Radius: 2, Style: style}
	verts := tessellateOne(solid)
	if len(verts) != arcSteps(2*math.Pi)*3 {
		t.Fatalf("Expected full disc fan, got %v vertices", len(verts))
	}

	style.Hollow = true
	style.Thickness = 0.4
	ring := Command{Kind: CommandCircle, Radius: 2, Style: style}
	verts = tessellateOne(ring)
	for i, v := range verts {
		d := math.Hypot(float64(v.Position[0]), float64(v.Position[1]))
		if d < 1.8-1e-6 || d > 2.2+1e-6 {
			t.Fatalf("Ring vertex %d at distance %v, outside [1.8, 2.2]", i, d)
		}
	}
}

func TestArcPoint_Convention(t *testing.T) {
	// Angle zero points at +Y, quarter turn clockwise points at +X.
	if p := arcPoint(0); math.Abs(p.X()) > 1e-9 || math.Abs(p.Y()-1) > 1e-9 {
		t.Errorf("Expected arcPoint(0) = (0,1), got %v", p)
	}
	if p := arcPoint(math.Pi / 2); math.Abs(p.X()-1) > 1e-9 || math.Abs(p.Y()) > 1e-9 {
		t.Errorf("Expected arcPoint(pi/2) = (1,0), got %v", p)
	}
}
