package shapes

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MeshVertex feeds the textured mesh pipeline.
type MeshVertex struct {
	Position [3]float32 `shapes:"layout" location:"0" format:"float3"`
	Normal   [3]float32 `shapes:"layout" location:"1" format:"float3"`
	UV       [2]float32 `shapes:"layout" location:"2" format:"float2"`
}

// Mesh is a retained textured mesh drawn by the camera pass matching its
// layer. Texture names a render target whose color output is sampled onto
// the surface. Geometry is uploaded once; Model may change every frame.
type Mesh struct {
	Label    string
	Vertices []MeshVertex
	Indices  []uint16
	Model    mgl32.Mat4
	Texture  TargetId
	Layer    Layer
}

// MeshList is the set of meshes to draw, installed as a resource by the
// GPU backend.
type MeshList struct {
	Meshes []*Mesh
}

func (list *MeshList) Add(meshes ...*Mesh) {
	list.Meshes = append(list.Meshes, meshes...)
}

// ModelMatrix composes translate, rotate and scale into a model matrix.
func ModelMatrix(position mgl32.Vec3, rotation mgl32.Mat4, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(rotation).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// CubeMesh builds an axis-aligned cube with the given edge length, four
// vertices per face so normals stay hard, CCW winding.
func CubeMesh(size float32) *Mesh {
	h := size / 2
	type cubeFace struct {
		normal mgl32.Vec3
		u      mgl32.Vec3
		v      mgl32.Vec3
	}
	// u cross v equals the outward normal on every face
	faces := []cubeFace{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}

	var vertices []MeshVertex
	var indices []uint16
	for _, f := range faces {
		center := f.normal.Mul(h)
		base := uint16(len(vertices))
		corners := [4]mgl32.Vec3{
			center.Sub(f.u.Mul(h)).Sub(f.v.Mul(h)),
			center.Add(f.u.Mul(h)).Sub(f.v.Mul(h)),
			center.Add(f.u.Mul(h)).Add(f.v.Mul(h)),
			center.Sub(f.u.Mul(h)).Add(f.v.Mul(h)),
		}
		uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
		for i := 0; i < 4; i++ {
			vertices = append(vertices, MeshVertex{
				Position: [3]float32{corners[i].X(), corners[i].Y(), corners[i].Z()},
				Normal:   [3]float32{f.normal.X(), f.normal.Y(), f.normal.Z()},
				UV:       uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return &Mesh{
		Label:    "cube",
		Vertices: vertices,
		Indices:  indices,
		Model:    mgl32.Ident4(),
	}
}
