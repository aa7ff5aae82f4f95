package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPositionOnAxes(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 5
	c.Pitch = 0
	c.Yaw = 0
	assert.Less(t, c.Position().Sub(mgl32.Vec3{0, 0, 5}).Len(), float32(1e-5))

	c.Center = mgl32.Vec3{1, 1, 1}
	c.Pitch = mgl32.DegToRad(90)
	assert.Less(t, c.Position().Sub(mgl32.Vec3{1, 6, 1}).Len(), float32(1e-4))
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{2, 0, 0}
	center := c.ViewMatrix().Mul4x1(c.Center.Vec4(1)).Vec3()

	// The center lands on the negative view axis at the orbit distance.
	assert.InDelta(t, 0, center[0], 1e-4)
	assert.InDelta(t, 0, center[1], 1e-4)
	assert.InDelta(t, -c.Distance, center[2], 1e-4)
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.Pitch)

	yaw := c.Yaw
	c.HandleDrag(100, 0)
	assert.InDelta(t, yaw-100*c.DragSensitivity, c.Yaw, 1e-6)
}

func TestZoomClamps(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  func(c *OrbitCamera) float32
	}{
		{"in", 100, func(c *OrbitCamera) float32 { return c.MinDistance }},
		{"out", -1000, func(c *OrbitCamera) float32 { return c.MaxDistance }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.HandleZoom(tt.delta)
			assert.Equal(t, tt.want(c), c.Distance)
		})
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{3, 1, 1})
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.Center)
	assert.Greater(t, c.Distance, float32(2))
}
