package shading

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
)

// Fixed colors of the placeholder terms.
var (
	pureColor   = mgl32.Vec4{0, 0, 0, 1}
	artistColor = mgl32.Vec4{0.5, 0.5, 0.5, 1}
	customColor = mgl32.Vec4{0.5, 0.5, 0.5, 1}
)

// Switches are the global light-term toggles.
type Switches struct {
	Ambient  bool
	Diffuse  bool
	Specular bool
}

// AllOn enables every term.
var AllOn = Switches{Ambient: true, Diffuse: true, Specular: true}

// Fragment is the interpolated input to one fragment evaluation.
// Normal is the shading normal after any normal mapping. Texel is the
// sampled texture color.
type Fragment struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec3
	Texel    mgl32.Vec4
	Eye      mgl32.Vec3
}

// Evaluate runs the scene fragment shader on the CPU. The result is the
// mean of every term the routing enables, or transparent black when it
// enables none.
func Evaluate(f Fragment, m material.Material, lights []lighting.Light, sw Switches, r Routing) mgl32.Vec4 {
	terms := make([]mgl32.Vec4, 0, 8)

	lit := r.Has(Lighting)
	textured := r.Has(TextureModulate)
	if lit {
		base := f.Color.Vec4(1)
		if textured {
			base = f.Texel
		}
		terms = append(terms, Illuminate(f, base, m, lights, sw))
	}
	if r.Has(VertexColor) {
		terms = append(terms, f.Color.Vec4(1))
	}
	if r.Has(PureColor) {
		terms = append(terms, pureColor)
	}
	if r.Has(NormalDebug) {
		n := f.Normal.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5})
		terms = append(terms, n.Vec4(1))
	}
	if r.Has(ArtistStyle) {
		terms = append(terms, artistColor)
	}
	if r.Has(Custom) {
		terms = append(terms, customColor)
	}
	if textured && !lit {
		terms = append(terms, f.Texel)
	}

	var out mgl32.Vec4
	if len(terms) == 0 {
		return out
	}
	w := 1 / float32(len(terms))
	for _, t := range terms {
		out = out.Add(t.Mul(w))
	}
	return out
}

// Illuminate computes the lighting term for base color:
// ambient + min(sum of attenuated diffuse and specular, 1) * base, clamped to 1.
func Illuminate(f Fragment, base mgl32.Vec4, m material.Material, lights []lighting.Light, sw Switches) mgl32.Vec4 {
	result := base
	if sw.Ambient {
		result = mulVec4(m.Ambient, base)
	}

	var sum mgl32.Vec4
	n := f.Normal.Normalize()
	v := f.Eye.Sub(f.Position).Normalize()
	for i := range lights {
		l := &lights[i]
		if !l.Enabled {
			continue
		}
		if !sw.Diffuse && !sw.Specular {
			continue
		}
		dir := LightDirection(*l, f.Position)

		nDotL := n.Dot(dir)
		var diffuse, specular mgl32.Vec4
		if sw.Diffuse && nDotL > 0 {
			diffuse = mulVec4(m.Diffuse.Mul(nDotL), l.Color)
		}
		rDotV := max(reflect(dir.Mul(-1), n).Dot(v), 0)
		if sw.Specular && nDotL > 0 && rDotV > 0 {
			s := math32.Pow(rDotV, m.Highlight)
			specular = mulVec4(m.Specular.Mul(s), l.Color)
		}

		att := RadialAttenuation(*l, f.Position) * AngularAttenuation(*l, f.Position)
		sum = sum.Add(diffuse.Add(specular).Mul(att))
	}
	sum = minVec4(sum, 1)
	return minVec4(result.Add(mulVec4(sum, base)), 1)
}

// LightDirection returns the unit vector from p towards the light.
func LightDirection(l lighting.Light, p mgl32.Vec3) mgl32.Vec3 {
	if l.Infinite {
		return l.Direction.Normalize()
	}
	return l.Position.Sub(p).Normalize()
}

// RadialAttenuation is 1/(a + b*d + c*d*d) for a positional spot light at
// distance d from p, and 1 otherwise.
func RadialAttenuation(l lighting.Light, p mgl32.Vec3) float32 {
	if !l.Spot || l.Infinite {
		return 1
	}
	d := l.Position.Sub(p).Len()
	a, b, c := l.RadialFactor[0], l.RadialFactor[1], l.RadialFactor[2]
	return 1 / (a + b*d + c*d*d)
}

// AngularAttenuation is cos^exp of the angle between the spot axis and the
// ray from the light to p inside the cone, 0 outside it, and 1 when the
// light is not a spot. SpotDirection names where the beam points, so the
// cone is measured along light-to-fragment.
func AngularAttenuation(l lighting.Light, p mgl32.Vec3) float32 {
	if !l.Spot {
		return 1
	}
	cos := p.Sub(l.Position).Normalize().Dot(l.SpotDirection.Normalize())
	if cos > l.AngleLimit {
		return math32.Pow(cos, l.ExpAttenuation)
	}
	return 0
}

func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

func mulVec4(a, b mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func minVec4(v mgl32.Vec4, hi float32) mgl32.Vec4 {
	for i := range v {
		v[i] = min(v[i], hi)
	}
	return v
}
