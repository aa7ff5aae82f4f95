// Package controls turns viewer commands into pending state changes that
// the frame loop consumes once per frame.
package controls

import (
	"fmt"

	"github.com/Faultbox/prism/internal/engine/shading"
)

// Action identifies a user command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleLight
	ActionToggleAmbient
	ActionToggleDiffuse
	ActionToggleSpecular
	ActionNextScene
	ActionPrevScene
	ActionScreenshot
	ActionOrbit
	ActionZoom
	ActionResize
)

var actionNames = map[Action]string{
	ActionNone:           "none",
	ActionQuit:           "quit",
	ActionToggleLight:    "toggle_light",
	ActionToggleAmbient:  "toggle_ambient",
	ActionToggleDiffuse:  "toggle_diffuse",
	ActionToggleSpecular: "toggle_specular",
	ActionNextScene:      "next_scene",
	ActionPrevScene:      "prev_scene",
	ActionScreenshot:     "screenshot",
	ActionOrbit:          "orbit",
	ActionZoom:           "zoom",
	ActionResize:         "resize",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Command is one input event after key binding.
type Command struct {
	Action Action
	Slot   int     // light index for ActionToggleLight
	DX, DY float32 // orbit drag in pixels
	Delta  float32 // wheel steps
	Width  int     // ActionResize
	Height int
}

// Controller accumulates commands between frames.
type Controller struct {
	switches   shading.Switches
	sceneCount int
	scene      int

	quit          bool
	screenshot    bool
	sceneChanged  bool
	lightToggles  []int
	dragX, dragY  float32
	zoom          float32
	width, height int
	resized       bool
}

// NewController starts on scene index start of sceneCount scenes.
func NewController(sw shading.Switches, sceneCount, start int) *Controller {
	if sceneCount < 1 {
		sceneCount = 1
	}
	return &Controller{
		switches:   sw,
		sceneCount: sceneCount,
		scene:      ((start % sceneCount) + sceneCount) % sceneCount,
	}
}

// Apply records cmd.
func (c *Controller) Apply(cmd Command) {
	switch cmd.Action {
	case ActionQuit:
		c.quit = true
	case ActionToggleLight:
		c.lightToggles = append(c.lightToggles, cmd.Slot)
	case ActionToggleAmbient:
		c.switches.Ambient = !c.switches.Ambient
	case ActionToggleDiffuse:
		c.switches.Diffuse = !c.switches.Diffuse
	case ActionToggleSpecular:
		c.switches.Specular = !c.switches.Specular
	case ActionNextScene:
		c.step(1)
	case ActionPrevScene:
		c.step(-1)
	case ActionScreenshot:
		c.screenshot = true
	case ActionOrbit:
		c.dragX += cmd.DX
		c.dragY += cmd.DY
	case ActionZoom:
		c.zoom += cmd.Delta
	case ActionResize:
		c.width, c.height = cmd.Width, cmd.Height
		c.resized = true
	}
}

func (c *Controller) step(d int) {
	c.scene = (c.scene + d + c.sceneCount) % c.sceneCount
	c.sceneChanged = true
	c.lightToggles = c.lightToggles[:0]
}

// Quit reports whether a quit was requested.
func (c *Controller) Quit() bool { return c.quit }

// Switches returns the global ambient/diffuse/specular toggles.
func (c *Controller) Switches() shading.Switches { return c.switches }

// Scene returns the current scene index.
func (c *Controller) Scene() int { return c.scene }

// TakeSceneChange reports a scene switch since the last call.
func (c *Controller) TakeSceneChange() (int, bool) {
	changed := c.sceneChanged
	c.sceneChanged = false
	return c.scene, changed
}

// TakeLightToggles returns and clears the pending light toggles.
func (c *Controller) TakeLightToggles() []int {
	t := append([]int(nil), c.lightToggles...)
	c.lightToggles = c.lightToggles[:0]
	return t
}

// TakeScreenshot reports and clears a pending capture request.
func (c *Controller) TakeScreenshot() bool {
	s := c.screenshot
	c.screenshot = false
	return s
}

// TakeCamera returns and clears the accumulated drag and wheel input.
func (c *Controller) TakeCamera() (dx, dy, zoom float32) {
	dx, dy, zoom = c.dragX, c.dragY, c.zoom
	c.dragX, c.dragY, c.zoom = 0, 0, 0
	return dx, dy, zoom
}

// TakeResize returns the last viewport size reported since the previous call.
func (c *Controller) TakeResize() (int, int, bool) {
	r := c.resized
	c.resized = false
	return c.width, c.height, r
}
