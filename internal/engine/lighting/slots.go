package lighting

import (
	"errors"
	"fmt"
)

// MaxLights is the size of the light array declared in the fragment shader.
const MaxLights = 20

// ErrSlotsFull is returned when every light slot is taken.
var ErrSlotsFull = fmt.Errorf("all %d light slots in use", MaxLights)

// ErrSlotRange is returned for an index outside [0, MaxLights).
var ErrSlotRange = errors.New("light slot out of range")

// Slots is the fixed-capacity table mirrored into the shader every frame.
// There is no removal, so the index returned by Add stays valid until Clear.
type Slots struct {
	lights []Light
}

// NewSlots creates an empty table.
func NewSlots() *Slots {
	return &Slots{lights: make([]Light, 0, MaxLights)}
}

// Add appends a light and returns its slot index.
func (s *Slots) Add(l Light) (int, error) {
	if len(s.lights) >= MaxLights {
		return -1, ErrSlotsFull
	}
	s.lights = append(s.lights, l)
	return len(s.lights) - 1, nil
}

// At returns a pointer to the light in slot i, or nil.
func (s *Slots) At(i int) *Light {
	if i < 0 || i >= len(s.lights) {
		return nil
	}
	return &s.lights[i]
}

// Toggle flips the enabled flag of slot i and returns the new state.
func (s *Slots) Toggle(i int) (bool, error) {
	l := s.At(i)
	if l == nil {
		return false, fmt.Errorf("toggle slot %d: %w", i, ErrSlotRange)
	}
	l.Enabled = !l.Enabled
	return l.Enabled, nil
}

// Len returns the number of occupied slots.
func (s *Slots) Len() int {
	return len(s.lights)
}

// Lights returns the occupied slots in index order.
func (s *Slots) Lights() []Light {
	return s.lights
}

// Clear empties the table.
func (s *Slots) Clear() {
	s.lights = s.lights[:0]
}
