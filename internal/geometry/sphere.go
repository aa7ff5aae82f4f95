package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/validate"
)

// MinSegments is the lowest subdivision count accepted by the curved
// generators. Smaller values are raised to it.
const MinSegments = 3

// SphereParams describes a sphere of the given radius centered at the origin.
type SphereParams struct {
	Radius float32
	Slices int // longitude subdivisions
	Stacks int // latitude subdivisions
	Color  Color
}

// EllipsoidParams describes an ellipsoid with independent axis radii.
type EllipsoidParams struct {
	RadiusX, RadiusY, RadiusZ float32
	Slices                    int
	Stacks                    int
	Color                     Color
}

// Sphere samples phi in [-pi/2, pi/2] and theta in [-pi, pi] on a
// (stacks+1) x (slices+1) grid with position r*(cos phi cos theta, cos phi sin theta, sin phi).
func Sphere(p SphereParams) (*Mesh, error) {
	if err := validate.Positive("sphere", "radius", p.Radius); err != nil {
		return nil, err
	}
	r := p.Radius
	return latLongSurface(p.Slices, p.Stacks, p.Color, func(cp, sp, ct, st float32) (mgl32.Vec3, mgl32.Vec3) {
		n := mgl32.Vec3{cp * ct, cp * st, sp}
		return n.Mul(r), n
	}), nil
}

// Ellipsoid uses the sphere parametrization scaled per axis. The normal is
// the gradient of the implicit surface, (x/rx, y/ry, z/rz) on the unit
// parameters, normalized.
func Ellipsoid(p EllipsoidParams) (*Mesh, error) {
	const kind = "ellipsoid"
	if err := validate.First(
		validate.Positive(kind, "radiusX", p.RadiusX),
		validate.Positive(kind, "radiusY", p.RadiusY),
		validate.Positive(kind, "radiusZ", p.RadiusZ),
	); err != nil {
		return nil, err
	}
	rx, ry, rz := p.RadiusX, p.RadiusY, p.RadiusZ
	return latLongSurface(p.Slices, p.Stacks, p.Color, func(cp, sp, ct, st float32) (mgl32.Vec3, mgl32.Vec3) {
		ux, uy, uz := cp*ct, cp*st, sp
		pos := mgl32.Vec3{rx * ux, ry * uy, rz * uz}
		n := mgl32.Vec3{ux / rx, uy / ry, uz / rz}.Normalize()
		return pos, n
	}), nil
}

// surfaceFunc maps the cosine/sine of latitude and longitude to a position and unit normal.
type surfaceFunc func(cosPhi, sinPhi, cosTheta, sinTheta float32) (pos, normal mgl32.Vec3)

// latLongSurface builds the shared grid for spheres and ellipsoids.
//
// Row i is latitude, column j is longitude. Column slices repeats column 0
// in position and normal with u=1 instead of u=0, so a wrapping texture has
// no seam. The first and last rows collapse onto the poles; the quads there
// are emitted as a single triangle to avoid zero-area faces.
func latLongSurface(slices, stacks int, color Color, f surfaceFunc) *Mesh {
	slices = max(slices, MinSegments)
	stacks = max(stacks, MinSegments)

	cols := slices + 1
	rows := stacks + 1
	m := &Mesh{
		Vertices: make([]Vertex, 0, rows*cols),
		Indices:  make([]uint32, 0, 6*slices*(stacks-1)),
	}
	c := color.vec()

	for i := 0; i < rows; i++ {
		phi := -math32.Pi/2 + math32.Pi*float32(i)/float32(stacks)
		cp, sp := math32.Cos(phi), math32.Sin(phi)
		switch i {
		case 0:
			cp, sp = 0, -1
		case stacks:
			cp, sp = 0, 1
		}
		for j := 0; j < cols; j++ {
			theta := -math32.Pi + 2*math32.Pi*float32(j)/float32(slices)
			ct, st := math32.Cos(theta), math32.Sin(theta)
			if j == slices {
				// Reuse the exact first column values so the seam closes bit-for-bit.
				ct, st = math32.Cos(-math32.Pi), math32.Sin(-math32.Pi)
			}
			pos, n := f(cp, sp, ct, st)
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   n,
				Color:    c,
				UV:       mgl32.Vec2{float32(j) / float32(slices), float32(i) / float32(stacks)},
			})
		}
	}

	idx := func(i, j int) uint32 { return uint32(i*cols + j) }
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := idx(i, j), idx(i, j+1)
			c, d := idx(i+1, j+1), idx(i+1, j)
			if i != stacks-1 {
				if i == 0 {
					m.triangle(a, c, d)
					continue
				}
				m.triangle(a, b, c)
				m.triangle(a, c, d)
				continue
			}
			m.triangle(a, b, c)
		}
	}
	return m
}

// LatLongTriangleCount is the number of triangles Sphere and Ellipsoid
// emit after clamping: two per quad, one per pole quad.
func LatLongTriangleCount(slices, stacks int) int {
	slices = max(slices, MinSegments)
	stacks = max(stacks, MinSegments)
	return 2 * slices * (stacks - 1)
}
