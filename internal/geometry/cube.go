package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/validate"
)

// CubeParams describes an axis-aligned box centered at the origin.
type CubeParams struct {
	Length float32 // extent along X
	Width  float32 // extent along Y
	Height float32 // extent along Z
	Color  Color

	// TiledUV repeats the texture every TileU/TileV world units instead of
	// stretching one copy across each face.
	TiledUV bool
	TileU   float32
	TileV   float32
}

// cubeFace is one face given by its outward normal and the in-plane axes
// along u and v. u x v == normal, so the corner order below is CCW.
type cubeFace struct {
	normal, u, v mgl32.Vec3
}

// Face order: back, front, left, right, top, bottom.
var cubeFaces = [6]cubeFace{
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
}

var quadCorners = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// Cube builds a box with 4 vertices per face so every face keeps its own
// normal and UV range. The result always has 24 vertices and 36 indices.
func Cube(p CubeParams) (*Mesh, error) {
	const kind = "cube"
	if err := validate.First(
		validate.Positive(kind, "length", p.Length),
		validate.Positive(kind, "width", p.Width),
		validate.Positive(kind, "height", p.Height),
	); err != nil {
		return nil, err
	}
	if p.TiledUV {
		if err := validate.First(
			validate.Positive(kind, "tileU", p.TileU),
			validate.Positive(kind, "tileV", p.TileV),
		); err != nil {
			return nil, err
		}
	}

	half := mgl32.Vec3{p.Length / 2, p.Width / 2, p.Height / 2}
	color := p.Color.vec()

	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	for _, f := range cubeFaces {
		// Half extents of the face along its own axes.
		hn := absDot(f.normal, half)
		hu := absDot(f.u, half)
		hv := absDot(f.v, half)

		uMax, vMax := float32(1), float32(1)
		if p.TiledUV {
			uMax = 2 * hu / p.TileU
			vMax = 2 * hv / p.TileV
		}

		base := uint32(len(m.Vertices))
		center := f.normal.Mul(hn)
		for _, c := range quadCorners {
			pos := center.Add(f.u.Mul(c[0] * hu)).Add(f.v.Mul(c[1] * hv))
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos,
				Normal:   f.normal,
				Color:    color,
				UV:       mgl32.Vec2{(c[0] + 1) / 2 * uMax, (c[1] + 1) / 2 * vMax},
			})
		}
		m.triangle(base, base+1, base+2)
		m.triangle(base, base+2, base+3)
	}

	return m, nil
}

// absDot projects the half extents onto a unit axis.
func absDot(axis, half mgl32.Vec3) float32 {
	d := axis.Dot(half)
	if d < 0 {
		return -d
	}
	return d
}
