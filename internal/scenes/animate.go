package scenes

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/engine/scene"
)

// OrbitAnimator moves a node around a circle of Radius in the XZ plane,
// then applies Transform. Angle advances by Speed degrees per second.
type OrbitAnimator struct {
	Radius    float32
	Speed     float32
	Angle     float32
	Transform mgl32.Mat4
}

// NewOrbitAnimator builds the animator for d.
func NewOrbitAnimator(d OrbitDesc) (*OrbitAnimator, error) {
	t := mgl32.Translate3D(d.Offset[0], d.Offset[1], d.Offset[2])
	if d.TiltDeg != 0 {
		axis, ok := scene.ParseAxis(d.TiltAxis)
		if !ok {
			return nil, fmt.Errorf("orbit: unknown tilt axis %q", d.TiltAxis)
		}
		t = t.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(d.TiltDeg), axis.Vec()))
	}
	return &OrbitAnimator{
		Radius:    d.Radius,
		Speed:     d.Speed,
		Angle:     d.Start,
		Transform: t,
	}, nil
}

// Position is the point on the orbit for the current angle.
func (a *OrbitAnimator) Position() mgl32.Vec3 {
	rad := mgl32.DegToRad(a.Angle)
	p := mgl32.Vec4{a.Radius * math32.Cos(rad), 0, a.Radius * math32.Sin(rad), 1}
	return a.Transform.Mul4x1(p).Vec3()
}

// Animate advances the angle and moves n.
func (a *OrbitAnimator) Animate(n *scene.Node, dt float32) {
	a.Angle = math32.Mod(a.Angle+a.Speed*dt, 360)
	if a.Angle < 0 {
		a.Angle += 360
	}
	n.SetCurrentPosition(a.Position())
}

// SpinAnimator turns a node about one of its own axes.
type SpinAnimator struct {
	Axis  scene.Axis
	Speed float32 // degrees per second
}

// NewSpinAnimator builds the animator for d.
func NewSpinAnimator(d SpinDesc) (*SpinAnimator, error) {
	axis, ok := scene.ParseAxis(d.Axis)
	if !ok {
		return nil, fmt.Errorf("spin: unknown axis %q", d.Axis)
	}
	return &SpinAnimator{Axis: axis, Speed: d.Speed}, nil
}

func (a *SpinAnimator) Animate(n *scene.Node, dt float32) {
	n.Rotate(a.Speed*dt, a.Axis)
}

// chain runs animators in order.
func chain(as ...scene.Animator) scene.Animator {
	if len(as) == 1 {
		return as[0]
	}
	return scene.AnimatorFunc(func(n *scene.Node, dt float32) {
		for _, a := range as {
			a.Animate(n, dt)
		}
	})
}
