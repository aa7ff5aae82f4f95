package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/prism/internal/engine/shading"
)

func TestSwitchToggles(t *testing.T) {
	c := NewController(shading.AllOn, 1, 0)
	c.Apply(Command{Action: ActionToggleAmbient})
	c.Apply(Command{Action: ActionToggleSpecular})
	c.Apply(Command{Action: ActionToggleSpecular})
	c.Apply(Command{Action: ActionToggleDiffuse})

	assert.Equal(t, shading.Switches{Ambient: false, Diffuse: false, Specular: true}, c.Switches())
}

func TestSceneCycling(t *testing.T) {
	tests := []struct {
		name  string
		start int
		cmds  []Action
		want  int
	}{
		{"next", 0, []Action{ActionNextScene}, 1},
		{"wrap forward", 3, []Action{ActionNextScene}, 0},
		{"wrap back", 0, []Action{ActionPrevScene}, 3},
		{"round trip", 2, []Action{ActionNextScene, ActionPrevScene}, 2},
		{"start out of range", 6, nil, 2},
		{"negative start", -1, nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(shading.AllOn, 4, tt.start)
			for _, a := range tt.cmds {
				c.Apply(Command{Action: a})
			}
			assert.Equal(t, tt.want, c.Scene())
		})
	}
}

func TestTakeSceneChange(t *testing.T) {
	c := NewController(shading.AllOn, 2, 0)
	_, changed := c.TakeSceneChange()
	assert.False(t, changed)

	c.Apply(Command{Action: ActionNextScene})
	idx, changed := c.TakeSceneChange()
	assert.True(t, changed)
	assert.Equal(t, 1, idx)

	_, changed = c.TakeSceneChange()
	assert.False(t, changed)
}

func TestLightTogglesClearedOnSceneChange(t *testing.T) {
	c := NewController(shading.AllOn, 2, 0)
	c.Apply(Command{Action: ActionToggleLight, Slot: 0})
	c.Apply(Command{Action: ActionToggleLight, Slot: 2})
	assert.Equal(t, []int{0, 2}, c.TakeLightToggles())
	assert.Empty(t, c.TakeLightToggles())

	c.Apply(Command{Action: ActionToggleLight, Slot: 1})
	c.Apply(Command{Action: ActionNextScene})
	assert.Empty(t, c.TakeLightToggles())
}

func TestCameraAccumulates(t *testing.T) {
	c := NewController(shading.AllOn, 1, 0)
	c.Apply(Command{Action: ActionOrbit, DX: 3, DY: -1})
	c.Apply(Command{Action: ActionOrbit, DX: 2, DY: 4})
	c.Apply(Command{Action: ActionZoom, Delta: 1})

	dx, dy, zoom := c.TakeCamera()
	assert.Equal(t, float32(5), dx)
	assert.Equal(t, float32(3), dy)
	assert.Equal(t, float32(1), zoom)

	dx, dy, zoom = c.TakeCamera()
	assert.Zero(t, dx+dy+zoom)
}

func TestOneShotRequests(t *testing.T) {
	c := NewController(shading.AllOn, 1, 0)
	assert.False(t, c.Quit())
	c.Apply(Command{Action: ActionScreenshot})
	c.Apply(Command{Action: ActionResize, Width: 800, Height: 600})
	c.Apply(Command{Action: ActionQuit})

	assert.True(t, c.TakeScreenshot())
	assert.False(t, c.TakeScreenshot())
	w, h, ok := c.TakeResize()
	assert.True(t, ok)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	_, _, ok = c.TakeResize()
	assert.False(t, ok)
	assert.True(t, c.Quit())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "toggle_light", ActionToggleLight.String())
	assert.Equal(t, "action(99)", Action(99).String())
}
