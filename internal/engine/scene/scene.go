package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/logger"
)

// Scene is the root of a node tree. It owns the light slots and the
// indicator node shown for each light.
type Scene struct {
	*Node

	lights     *lighting.Slots
	indicators []*Node
	follow     []bool
}

// New creates an empty scene rooted at the origin.
func New(name string) *Scene {
	return &Scene{
		Node:   NewNode(name, mgl32.Vec3{}, nil),
		lights: lighting.NewSlots(),
	}
}

// AddLight registers l with an optional indicator node, which must already
// be part of the tree. With follow set, the light position tracks the
// indicator's world position every Update.
func (s *Scene) AddLight(l lighting.Light, indicator *Node, follow bool) (int, error) {
	if follow && indicator == nil {
		return -1, fmt.Errorf("add light to %q: follow needs an indicator", s.Name)
	}
	i, err := s.lights.Add(l)
	if err != nil {
		return -1, fmt.Errorf("add light to %q: %w", s.Name, err)
	}
	s.indicators = append(s.indicators, indicator)
	s.follow = append(s.follow, follow)
	if follow {
		s.lights.At(i).Position = indicator.WorldPosition()
	}
	return i, nil
}

// Lights returns the registered lights in slot order.
func (s *Scene) Lights() []lighting.Light { return s.lights.Lights() }

// LightCount returns the number of registered lights.
func (s *Scene) LightCount() int { return s.lights.Len() }

// Light returns light i, or nil.
func (s *Scene) Light(i int) *lighting.Light { return s.lights.At(i) }

// Indicator returns the node shown for light i, or nil.
func (s *Scene) Indicator(i int) *Node {
	if i < 0 || i >= len(s.indicators) {
		return nil
	}
	return s.indicators[i]
}

// ToggleLight flips light i and switches its indicator to match.
func (s *Scene) ToggleLight(i int) (bool, error) {
	on, err := s.lights.Toggle(i)
	if err != nil {
		return false, fmt.Errorf("toggle light %d in %q: %w", i, s.Name, err)
	}
	if ind := s.Indicator(i); ind != nil {
		var t Toggleable = ind
		if on {
			t.TurnOn()
		} else {
			t.TurnOff()
		}
	}
	logger.Debug("light toggled",
		zap.String("scene", s.Name),
		zap.Int("slot", i),
		zap.Bool("enabled", on))
	return on, nil
}

// Initialize clears the shader light array, uploads the lights and then
// initializes the tree.
func (s *Scene) Initialize(ctx *Context) error {
	if err := s.pushLights(ctx.Program); err != nil {
		return err
	}
	return s.Node.Initialize(ctx)
}

// Update animates the tree and moves following lights onto their
// indicators.
func (s *Scene) Update(dt float32) {
	s.Node.Update(dt)
	for i, f := range s.follow {
		if f {
			s.lights.At(i).Position = s.indicators[i].WorldPosition()
		}
	}
}

// Draw uploads the current lights and draws the tree.
func (s *Scene) Draw(ctx *Context) error {
	if err := ctx.Program.SetLights(s.lights.Lights()); err != nil {
		return fmt.Errorf("draw %q: %w", s.Name, err)
	}
	return s.Node.Draw(ctx, NewMatrixStack())
}

// Release frees the GPU resources of the tree and empties the light
// table.
func (s *Scene) Release() {
	s.Node.Release()
	s.lights.Clear()
	s.indicators = nil
	s.follow = nil
}

func (s *Scene) pushLights(p Program) error {
	if err := p.SetLights(s.lights.Lights()); err != nil {
		return fmt.Errorf("initialize %q: %w", s.Name, err)
	}
	return nil
}
