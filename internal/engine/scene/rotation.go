package scene

import "github.com/go-gl/mathgl/mgl32"

// Axis names one of a node's local axes.
type Axis int

const (
	AxisU Axis = iota // local X
	AxisV             // local Y
	AxisW             // local Z
)

// Vec returns the axis as a unit vector in the node's frame.
func (a Axis) Vec() mgl32.Vec3 {
	switch a {
	case AxisV:
		return mgl32.Vec3{0, 1, 0}
	case AxisW:
		return mgl32.Vec3{0, 0, 1}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}

func (a Axis) String() string {
	switch a {
	case AxisU:
		return "u"
	case AxisV:
		return "v"
	case AxisW:
		return "w"
	}
	return "?"
}

// ParseAxis accepts u/v/w and x/y/z.
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "u", "x", "U", "X":
		return AxisU, true
	case "v", "y", "V", "Y":
		return AxisV, true
	case "w", "z", "W", "Z":
		return AxisW, true
	}
	return 0, false
}

// RotationBetween returns the rotation taking the direction of v1 onto the
// direction of v2. Opposite vectors rotate half a turn about an axis
// perpendicular to v1.
func RotationBetween(v1, v2 mgl32.Vec3) mgl32.Mat4 {
	if v1.Len() == 0 || v2.Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.QuatBetweenVectors(v1.Normalize(), v2.Normalize()).Mat4()
}
