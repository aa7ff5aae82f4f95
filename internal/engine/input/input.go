// Package input polls SDL2 events and binds them to viewer commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/prism/internal/controls"
)

// keymap binds scancodes to commands. Digits 1 to 9 toggle light slots 0 to 8.
var keymap = map[sdl.Scancode]controls.Command{
	sdl.SCANCODE_ESCAPE: {Action: controls.ActionQuit},
	sdl.SCANCODE_A:      {Action: controls.ActionToggleAmbient},
	sdl.SCANCODE_D:      {Action: controls.ActionToggleDiffuse},
	sdl.SCANCODE_S:      {Action: controls.ActionToggleSpecular},
	sdl.SCANCODE_N:      {Action: controls.ActionNextScene},
	sdl.SCANCODE_P:      {Action: controls.ActionPrevScene},
	sdl.SCANCODE_F12:    {Action: controls.ActionScreenshot},
}

func init() {
	for i := 0; i < 9; i++ {
		keymap[sdl.SCANCODE_1+sdl.Scancode(i)] = controls.Command{Action: controls.ActionToggleLight, Slot: i}
	}
}

// Input handles all input processing.
type Input struct {
	commands []controls.Command
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		commands: make([]controls.Command, 0, 16),
	}
}

// Update polls SDL events and converts them to commands.
// Returns true if the window was closed.
func (i *Input) Update() bool {
	i.commands = i.commands[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.commands = append(i.commands, controls.Command{Action: controls.ActionQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.commands = append(i.commands, controls.Command{
					Action: controls.ActionResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if cmd, ok := keymap[e.Keysym.Scancode]; ok {
				i.commands = append(i.commands, cmd)
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			if i.dragging {
				i.commands = append(i.commands, controls.Command{
					Action: controls.ActionOrbit,
					DX:     float32(e.XRel),
					DY:     float32(e.YRel),
				})
			}

		case *sdl.MouseWheelEvent:
			i.commands = append(i.commands, controls.Command{
				Action: controls.ActionZoom,
				Delta:  float32(e.Y),
			})
		}
	}

	return false
}

// Commands returns the commands from the last Update.
func (i *Input) Commands() []controls.Command {
	return i.commands
}
