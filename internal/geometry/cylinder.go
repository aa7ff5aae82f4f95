package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/validate"
)

// CylinderParams describes a capped cylinder along Z centered at the origin.
// Different lower and upper radii give a frustum.
type CylinderParams struct {
	RadiusLower float32
	RadiusUpper float32
	Height      float32
	Sides       int
	Color       Color
}

// Vertex layout of a cylinder mesh: index 0 is the bottom cap center,
// index 1 the top cap center, then four vertices per ring sample.
const (
	cylBottomCap = iota
	cylSideBottom
	cylSideTop
	cylTopCap
	cylPerSample
)

// Cylinder builds the side surface and both flat caps. Every ring position
// appears once per adjoining surface because the normals differ.
func Cylinder(p CylinderParams) (*Mesh, error) {
	const kind = "cylinder"
	if err := validate.First(
		validate.Positive(kind, "radiusLower", p.RadiusLower),
		validate.Positive(kind, "radiusUpper", p.RadiusUpper),
		validate.Positive(kind, "height", p.Height),
	); err != nil {
		return nil, err
	}

	cSin := (p.RadiusLower - p.RadiusUpper) / p.Height
	if cSin > 1 || cSin < -1 {
		return nil, &validate.InvalidParameterError{
			Kind:   kind,
			Field:  "height",
			Value:  p.Height,
			Reason: "too short for the radius difference",
		}
	}
	cCos := math32.Sqrt(1 - cSin*cSin)

	sides := max(p.Sides, MinSegments)
	half := p.Height / 2
	c := p.Color.vec()

	m := &Mesh{
		Vertices: make([]Vertex, 0, 2+cylPerSample*(sides+1)),
		Indices:  make([]uint32, 0, 12*sides),
	}
	down := mgl32.Vec3{0, 0, -1}
	up := mgl32.Vec3{0, 0, 1}
	m.Vertices = append(m.Vertices,
		Vertex{Position: mgl32.Vec3{0, 0, -half}, Normal: down, Color: c, UV: mgl32.Vec2{0.5, 0.5}},
		Vertex{Position: mgl32.Vec3{0, 0, half}, Normal: up, Color: c, UV: mgl32.Vec2{0.5, 0.5}},
	)

	for i := 0; i <= sides; i++ {
		u := float32(i) / float32(sides)
		theta := -math32.Pi + 2*math32.Pi*u
		ct, st := math32.Cos(theta), math32.Sin(theta)
		if i == sides {
			ct, st = math32.Cos(-math32.Pi), math32.Sin(-math32.Pi)
		}
		bottom := mgl32.Vec3{p.RadiusLower * ct, p.RadiusLower * st, -half}
		top := mgl32.Vec3{p.RadiusUpper * ct, p.RadiusUpper * st, half}
		side := mgl32.Vec3{ct * cCos, st * cCos, cSin}
		capUV := mgl32.Vec2{0.5 + 0.5*ct, 0.5 + 0.5*st}

		m.Vertices = append(m.Vertices,
			Vertex{Position: bottom, Normal: down, Color: c, UV: capUV},
			Vertex{Position: bottom, Normal: side, Color: c, UV: mgl32.Vec2{u, 0}},
			Vertex{Position: top, Normal: side, Color: c, UV: mgl32.Vec2{u, 1}},
			Vertex{Position: top, Normal: up, Color: c, UV: capUV},
		)
	}

	at := func(i, slot int) uint32 { return uint32(2 + cylPerSample*i + slot) }
	for i := 0; i < sides; i++ {
		m.triangle(0, at(i+1, cylBottomCap), at(i, cylBottomCap))
		m.triangle(1, at(i, cylTopCap), at(i+1, cylTopCap))

		b0, b1 := at(i, cylSideBottom), at(i+1, cylSideBottom)
		t0, t1 := at(i, cylSideTop), at(i+1, cylSideTop)
		m.triangle(b0, b1, t1)
		m.triangle(b0, t1, t0)
	}
	return m, nil
}
