package shapes

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func projectPoint(vp mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	clip := vp.Mul4x1(mgl32.Vec4{p.X(), p.Y(), p.Z(), 1})
	return clip.Vec3().Mul(1 / clip.W())
}

func TestCamera_PerspectiveProjection(t *testing.T) {
	camera := Camera{Eye: mgl32.Vec3{0, 0, 15}}
	vp := camera.ViewProjection(1)

	// The look-at point lands in the screen center.
	ndc := projectPoint(vp, mgl32.Vec3{0, 0, 0})
	if math.Abs(float64(ndc.X())) > 1e-5 || math.Abs(float64(ndc.Y())) > 1e-5 {
		t.Errorf("Expected origin at screen center, got %v", ndc)
	}

	// +X in world is +X on screen, +Y is up.
	right := projectPoint(vp, mgl32.Vec3{2, 0, 0})
	if right.X() <= 0 {
		t.Errorf("Expected +X to project right of center, got %v", right)
	}
	up := projectPoint(vp, mgl32.Vec3{0, 2, 0})
	if up.Y() <= 0 {
		t.Errorf("Expected +Y to project above center, got %v", up)
	}

	// A wider viewport shrinks normalized x.
	wide := projectPoint(camera.ViewProjection(2), mgl32.Vec3{2, 0, 0})
	if wide.X() >= right.X() {
		t.Errorf("Expected wider aspect to shrink ndc x: %v vs %v", wide.X(), right.X())
	}
}

func TestCamera_OrthographicProjection(t *testing.T) {
	camera := Camera{
		Projection: ProjectionOrthographic,
		Eye:        mgl32.Vec3{0, 0, 15},
		Height:     10,
	}
	vp := camera.ViewProjection(1)

	// Half the ortho height reaches the top edge.
	top := projectPoint(vp, mgl32.Vec3{0, 5, 0})
	if math.Abs(float64(top.Y())-1) > 1e-5 {
		t.Errorf("Expected y=5 at the top edge, got %v", top.Y())
	}
	edge := projectPoint(vp, mgl32.Vec3{5, 0, 0})
	if math.Abs(float64(edge.X())-1) > 1e-5 {
		t.Errorf("Expected x=5 at the right edge, got %v", edge.X())
	}

	// Depth does not change footprint under ortho.
	near := projectPoint(vp, mgl32.Vec3{3, 0, 5})
	far := projectPoint(vp, mgl32.Vec3{3, 0, -5})
	if math.Abs(float64(near.X()-far.X())) > 1e-5 {
		t.Errorf("Expected depth-independent x under ortho, got %v vs %v", near.X(), far.X())
	}
}

func TestCameraList_SortedByOrderStable(t *testing.T) {
	list := &CameraList{}
	list.Add(
		Camera{Order: 1, Target: "last"},
		Camera{Order: 0, Target: "first-zero"},
		Camera{Order: -1, Target: "offscreen"},
		Camera{Order: 0, Target: "second-zero"},
	)

	sorted := list.Sorted()
	expected := []TargetId{"offscreen", "first-zero", "second-zero", "last"}
	for i, id := range expected {
		if sorted[i].Target != id {
			t.Errorf("Position %d: expected %q, got %q", i, id, sorted[i].Target)
		}
	}

	// The backing list keeps insertion order.
	if list.Cameras[0].Target != "last" {
		t.Errorf("Expected Sorted to leave the list unmodified")
	}
}

func TestCameraList_Clear(t *testing.T) {
	list := &CameraList{}
	list.Add(Camera{}, Camera{})
	list.Clear()
	if len(list.Sorted()) != 0 {
		t.Errorf("Expected no cameras after Clear")
	}
}
