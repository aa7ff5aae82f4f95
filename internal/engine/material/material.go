// Package material holds the reflectance parameters uploaded as the
// material uniform block.
package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/validate"
)

// DefaultHighlight is the shininess exponent used when none is given.
const DefaultHighlight = 32

// Material describes how a surface reflects each light term. The alpha
// channel of each coefficient is carried to the shader unchanged.
type Material struct {
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Highlight float32

	// UseNormalMap perturbs the shading normal with the texture bound to
	// the normal-map unit.
	UseNormalMap bool
}

// Default returns a mid-gray material.
func Default() Material {
	return Material{
		Ambient:   mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:   mgl32.Vec4{0.8, 0.8, 0.8, 1},
		Specular:  mgl32.Vec4{0, 0, 0, 1},
		Highlight: DefaultHighlight,
	}
}

// New validates and returns a material.
func New(ambient, diffuse, specular mgl32.Vec4, highlight float32) (Material, error) {
	m := Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Highlight: highlight,
	}
	return m, m.Validate()
}

// FromSlices builds a material from loosely typed coefficients, as decoded
// from scene files. Each coefficient must have exactly four components.
func FromSlices(ambient, diffuse, specular []float32, highlight float32) (Material, error) {
	const kind = "material"
	if err := validate.First(
		validate.Size(kind, "ambient", len(ambient), 4),
		validate.Size(kind, "diffuse", len(diffuse), 4),
		validate.Size(kind, "specular", len(specular), 4),
	); err != nil {
		return Material{}, err
	}
	return New(vec4(ambient), vec4(diffuse), vec4(specular), highlight)
}

// Validate checks that the highlight exponent is positive and coefficients
// are not negative.
func (m Material) Validate() error {
	const kind = "material"
	errs := []error{validate.Positive(kind, "highlight", m.Highlight)}
	for i := 0; i < 4; i++ {
		errs = append(errs,
			validate.NonNegative(kind, "ambient", m.Ambient[i]),
			validate.NonNegative(kind, "diffuse", m.Diffuse[i]),
			validate.NonNegative(kind, "specular", m.Specular[i]),
		)
	}
	return validate.First(errs...)
}

// WithNormalMap returns a copy with the normal-map flag set.
func (m Material) WithNormalMap(on bool) Material {
	m.UseNormalMap = on
	return m
}

func vec4(s []float32) mgl32.Vec4 {
	var v mgl32.Vec4
	copy(v[:], s)
	return v
}
