package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/validate"
)

// TorusParams describes a torus around the Z axis. The tube spans radially
// from InnerRadius to OuterRadius.
type TorusParams struct {
	InnerRadius float32
	OuterRadius float32
	Sides       int // tube subdivisions (v)
	Rings       int // ring subdivisions (u)
	Color       Color
}

// Torus samples u (around Z) and v (around the tube) on a
// (sides+1) x (rings+1) grid. Swapped radii are accepted. Equal radii give
// an empty mesh.
func Torus(p TorusParams) (*Mesh, error) {
	const kind = "torus"
	if err := validate.First(
		validate.NonNegative(kind, "innerRadius", p.InnerRadius),
		validate.NonNegative(kind, "outerRadius", p.OuterRadius),
	); err != nil {
		return nil, err
	}

	inner, outer := p.InnerRadius, p.OuterRadius
	if inner > outer {
		inner, outer = outer, inner
	}
	a := (outer + inner) / 2
	b := (outer - inner) / 2
	if b == 0 {
		return &Mesh{}, nil
	}

	sides := max(p.Sides, MinSegments)
	rings := max(p.Rings, MinSegments)
	cols := rings + 1
	c := p.Color.vec()

	m := &Mesh{
		Vertices: make([]Vertex, 0, (sides+1)*cols),
		Indices:  make([]uint32, 0, 6*sides*rings),
	}
	for k := 0; k <= sides; k++ {
		v := 2 * math32.Pi * float32(k) / float32(sides)
		cv, sv := math32.Cos(v), math32.Sin(v)
		if k == sides {
			cv, sv = 1, 0
		}
		r := a + b*cv
		sign := float32(1)
		if r < 0 {
			sign = -1
		}
		for j := 0; j <= rings; j++ {
			u := 2 * math32.Pi * float32(j) / float32(rings)
			cu, su := math32.Cos(u), math32.Sin(u)
			if j == rings {
				cu, su = 1, 0
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{r * cu, r * su, b * sv},
				Normal:   mgl32.Vec3{cu * cv, su * cv, sv}.Mul(sign),
				Color:    c,
				UV:       mgl32.Vec2{float32(j) / float32(rings), float32(k) / float32(sides)},
			})
		}
	}

	idx := func(k, j int) uint32 { return uint32(k*cols + j) }
	for k := 0; k < sides; k++ {
		for j := 0; j < rings; j++ {
			v0, v1 := idx(k, j), idx(k, j+1)
			v2, v3 := idx(k+1, j+1), idx(k+1, j)
			m.triangle(v0, v1, v2)
			m.triangle(v0, v2, v3)
		}
	}
	return m, nil
}
