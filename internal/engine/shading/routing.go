// Package shading defines the fragment routing bitmask, the embedded scene
// shaders and a CPU evaluator of the same lighting equation.
package shading

import "strings"

// Routing selects which shading terms a node's fragments combine.
type Routing uint32

const (
	Lighting Routing = 1 << iota
	VertexColor
	PureColor
	NormalDebug
	BumpMapping
	ArtistStyle
	Custom
	_
	TextureModulate
)

// Bits in shader order, with their routing names.
var routingNames = []struct {
	bit  Routing
	name string
}{
	{Lighting, "lighting"},
	{VertexColor, "vertex"},
	{PureColor, "pure"},
	{NormalDebug, "normal"},
	{BumpMapping, "bump"},
	{ArtistStyle, "artist"},
	{Custom, "custom"},
	{TextureModulate, "texture"},
}

// ParseRouting builds a mask from a routing name such as "lighting_texture".
// Matching is by case-insensitive substring, so any separator works.
// "illumination" is accepted for lighting. Unknown words are ignored.
func ParseRouting(s string) Routing {
	s = strings.ToLower(s)
	var r Routing
	for _, rn := range routingNames {
		if strings.Contains(s, rn.name) {
			r |= rn.bit
		}
	}
	if strings.Contains(s, "illumination") {
		r |= Lighting
	}
	return r
}

// Has reports whether every bit of flag is set.
func (r Routing) Has(flag Routing) bool {
	return r&flag == flag
}

// String joins the set names with underscores. ParseRouting(r.String()) == r
// for every mask made of known bits.
func (r Routing) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	for _, rn := range routingNames {
		if r&rn.bit != 0 {
			parts = append(parts, rn.name)
		}
	}
	return strings.Join(parts, "_")
}

// MarshalText implements encoding.TextMarshaler for scene files.
func (r Routing) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Routing) UnmarshalText(b []byte) error {
	*r = ParseRouting(string(b))
	return nil
}
