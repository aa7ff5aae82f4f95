// Package lighting holds the light sources uploaded to the shader's light
// array and the fixed-size slot table that feeds it.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/validate"
)

// Light is one entry of the shader light array.
//
// Infinite and Spot combine freely. A light with neither is a point light
// with no attenuation.
type Light struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4 // alpha gates intensity
	Enabled  bool

	Infinite  bool
	Direction mgl32.Vec3 // unit vector towards the light, used when Infinite

	Spot           bool
	SpotDirection  mgl32.Vec3
	RadialFactor   mgl32.Vec3 // a, b, c of 1/(a + b*d + c*d*d)
	AngleLimit     float32    // cosine of the cone half angle
	ExpAttenuation float32
}

// NewPoint returns an enabled point light.
func NewPoint(pos mgl32.Vec3, color mgl32.Vec4) Light {
	return Light{Position: pos, Color: color, Enabled: true}
}

// NewDirectional returns an enabled light at infinity in direction dir.
func NewDirectional(dir mgl32.Vec3, color mgl32.Vec4) (Light, error) {
	if dir.Len() == 0 {
		return Light{}, &validate.InvalidParameterError{Kind: "light", Field: "direction", Value: dir, Reason: "must not be zero"}
	}
	return Light{Color: color, Enabled: true, Infinite: true, Direction: dir.Normalize()}, nil
}

// SpotParams configures a spot light.
type SpotParams struct {
	Position       mgl32.Vec3
	Color          mgl32.Vec4
	Direction      mgl32.Vec3
	RadialFactor   mgl32.Vec3
	AngleLimit     float32
	ExpAttenuation float32
}

// NewSpot validates p and returns an enabled spot light.
func NewSpot(p SpotParams) (Light, error) {
	const kind = "spot light"
	if p.Direction.Len() == 0 {
		return Light{}, &validate.InvalidParameterError{Kind: kind, Field: "direction", Value: p.Direction, Reason: "must not be zero"}
	}
	if err := validate.First(
		validate.NonNegative(kind, "radialFactor", p.RadialFactor[0]),
		validate.NonNegative(kind, "radialFactor", p.RadialFactor[1]),
		validate.NonNegative(kind, "radialFactor", p.RadialFactor[2]),
		validate.NonNegative(kind, "expAttenuation", p.ExpAttenuation),
	); err != nil {
		return Light{}, err
	}
	if p.RadialFactor == (mgl32.Vec3{}) {
		return Light{}, &validate.InvalidParameterError{Kind: kind, Field: "radialFactor", Value: p.RadialFactor, Reason: "at least one coefficient must be positive"}
	}
	if p.AngleLimit < -1 || p.AngleLimit > 1 {
		return Light{}, &validate.InvalidParameterError{Kind: kind, Field: "angleLimit", Value: p.AngleLimit, Reason: "must be a cosine in [-1, 1]"}
	}
	return Light{
		Position:       p.Position,
		Color:          p.Color,
		Enabled:        true,
		Spot:           true,
		SpotDirection:  p.Direction.Normalize(),
		RadialFactor:   p.RadialFactor,
		AngleLimit:     p.AngleLimit,
		ExpAttenuation: p.ExpAttenuation,
	}, nil
}

// Kind names the light mode for logs.
func (l Light) Kind() string {
	switch {
	case l.Infinite && l.Spot:
		return "directional spot"
	case l.Infinite:
		return "directional"
	case l.Spot:
		return "spot"
	default:
		return "point"
	}
}
