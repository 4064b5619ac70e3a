package shapes

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type ProjectionKind int

const (
	ProjectionPerspective ProjectionKind = iota
	ProjectionOrthographic
)

// Camera describes one compositor pass. Cameras render in ascending Order;
// a camera draws only the shapes and meshes whose layer is in Layers, into
// Target or the window surface when Target is empty. A nil ClearColor
// loads the previous pass contents instead of clearing.
type Camera struct {
	Order      int
	ClearColor *Color
	Layers     LayerMask
	Target     TargetId
	Projection ProjectionKind

	Eye    mgl32.Vec3
	LookAt mgl32.Vec3
	Up     mgl32.Vec3

	FovY   float32 // perspective vertical field of view, radians
	Height float32 // orthographic visible world height
	Near   float32
	Far    float32
}

// ViewProjection builds the camera matrix for the given aspect ratio.
// Zero-value fields fall back to sane defaults: 45 degree fov, +Y up,
// near 0.1, far 100, orthographic height 10.
func (c Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	near := c.Near
	if near == 0 {
		near = 0.1
	}
	far := c.Far
	if far == 0 {
		far = 100
	}
	view := mgl32.LookAtV(c.Eye, c.LookAt, up)

	var projection mgl32.Mat4
	switch c.Projection {
	case ProjectionOrthographic:
		height := c.Height
		if height == 0 {
			height = 10
		}
		halfH := height / 2
		halfW := halfH * aspect
		projection = mgl32.Ortho(-halfW, halfW, -halfH, halfH, near, far)
	default:
		fovY := c.FovY
		if fovY == 0 {
			fovY = mgl32.DegToRad(45)
		}
		projection = mgl32.Perspective(fovY, aspect, near, far)
	}
	return projection.Mul4(view)
}

// CameraList is the set of compositor cameras. Installed as a resource by
// the GPU backend; systems mutate it freely, the backend reads it sorted.
type CameraList struct {
	Cameras []Camera
}

func (list *CameraList) Add(cameras ...Camera) {
	list.Cameras = append(list.Cameras, cameras...)
}

func (list *CameraList) Clear() {
	list.Cameras = list.Cameras[:0]
}

// Sorted returns the cameras in ascending Order. Cameras with equal Order
// keep their insertion order.
func (list *CameraList) Sorted() []Camera {
	sorted := make([]Camera, len(list.Cameras))
	copy(sorted, list.Cameras)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
