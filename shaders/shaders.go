package shaders

import (
	_ "embed"
)

//go:embed shape.wgsl
var ShapeWGSL string

//go:embed mesh.wgsl
var MeshWGSL string

//go:embed text.wgsl
var TextWGSL string
