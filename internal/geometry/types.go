// Package geometry generates the procedural meshes drawn by the scene graph:
// cube, sphere, ellipsoid, cylinder/frustum and torus.
//
// All generators are pure. They validate their parameters before allocating
// and return triangles wound counter-clockwise when seen from the side the
// normal points to.
package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/validate"
)

// InvalidParameterError is returned by every generator for a rejected argument.
type InvalidParameterError = validate.InvalidParameterError

// ErrInvalidParameter matches any InvalidParameterError.
var ErrInvalidParameter = validate.ErrInvalidParameter

// FloatsPerVertex is the interleaved vertex stride in float32 values.
const FloatsPerVertex = 11

// VertexSize is the interleaved vertex stride in bytes.
const VertexSize = FloatsPerVertex * 4

// Column offsets (in floats) of each attribute inside an interleaved vertex.
const (
	PositionOffset = 0
	NormalOffset   = 3
	ColorOffset    = 6
	UVOffset       = 9
)

// Color is an RGB vertex color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Gray returns a gray color of the given intensity.
func Gray(v float32) Color {
	return Color{v, v, v}
}

func (c Color) vec() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// Vertex is a single mesh vertex. Its memory layout matches the interleaved
// buffer layout: position, normal, color, uv.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh holds generated vertex and triangle index data ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}
