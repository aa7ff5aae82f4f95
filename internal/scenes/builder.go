package scenes

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/internal/geometry"
	"github.com/Faultbox/prism/internal/logger"
)

// TextureSource resolves texture names from scene files.
type TextureSource func(name string) (scene.Texture, error)

// FromCache adapts a texture cache.
func FromCache(c *texture.Cache) TextureSource {
	return func(name string) (scene.Texture, error) {
		t, err := c.Get(name)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// loadTexture resolves name and logs failures. Nodes stay usable without
// their texture.
func loadTexture(src TextureSource, node, name string) (scene.Texture, bool) {
	t, err := src(name)
	if err != nil {
		logger.Warn("texture unavailable",
			zap.String("node", node),
			zap.String("texture", name),
			zap.Error(err))
		return nil, false
	}
	return t, true
}

var white = geometry.Color{R: 1, G: 1, B: 1}

// Builder turns descriptions into scene trees.
type Builder struct {
	// Textures may be nil, in which case nodes are built untextured.
	Textures TextureSource

	materials map[string]material.Material
}

// Build creates the scene described by d. Nothing is uploaded yet.
func (b *Builder) Build(d *Description) (*scene.Scene, error) {
	b.materials = make(map[string]material.Material, len(d.Materials))
	for name, md := range d.Materials {
		m, err := material.FromSlices(md.Ambient, md.Diffuse, md.Specular, md.Highlight)
		if err != nil {
			return nil, fmt.Errorf("scene %q: material %q: %w", d.Name, name, err)
		}
		b.materials[name] = m
	}

	s := scene.New(d.Name)
	for _, nd := range d.Nodes {
		n, err := b.node(nd)
		if err != nil {
			return nil, fmt.Errorf("scene %q: %w", d.Name, err)
		}
		if err := s.AddChild(n); err != nil {
			return nil, fmt.Errorf("scene %q: %w", d.Name, err)
		}
	}

	for i, ld := range d.Lights {
		l, err := buildLight(ld)
		if err != nil {
			return nil, fmt.Errorf("scene %q: light %d: %w", d.Name, i, err)
		}
		var indicator *scene.Node
		if ld.Indicator != "" {
			if indicator = s.Find(ld.Indicator); indicator == nil {
				return nil, fmt.Errorf("scene %q: light %d: no node named %q", d.Name, i, ld.Indicator)
			}
		}
		if _, err := s.AddLight(l, indicator, ld.Follow); err != nil {
			return nil, err
		}
	}

	logger.Debug("scene built",
		zap.String("scene", d.Name),
		zap.Int("nodes", len(d.Nodes)),
		zap.Int("lights", s.LightCount()))
	return s, nil
}

func (b *Builder) node(nd NodeDesc) (*scene.Node, error) {
	if nd.Name == "" {
		return nil, fmt.Errorf("node without a name")
	}
	pos := mgl32.Vec3(nd.Position)

	var n *scene.Node
	switch {
	case nd.Prefab != "":
		if nd.Prefab != "flashlight" {
			return nil, fmt.Errorf("node %q: unknown prefab %q", nd.Name, nd.Prefab)
		}
		var err error
		if n, err = Flashlight(nd.Name, b.Textures); err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}
		n.SetDefaultPosition(pos)
	case nd.Shape != nil:
		color := white
		if nd.Color != nil {
			color = geometry.Color{R: nd.Color[0], G: nd.Color[1], B: nd.Color[2]}
		}
		m, err := buildShape(nd.Shape, color)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}
		n = scene.NewNode(nd.Name, pos, m)
	default:
		n = scene.NewNode(nd.Name, pos, nil)
	}

	if err := b.transform(n, nd); err != nil {
		return nil, fmt.Errorf("node %q: %w", nd.Name, err)
	}
	if err := b.appearance(n, nd); err != nil {
		return nil, fmt.Errorf("node %q: %w", nd.Name, err)
	}

	if nd.Switch != nil {
		n.SetSwitch(scene.RoutingSwitch{OnRouting: nd.Switch.On, OffRouting: nd.Switch.Off})
	}
	var animators []scene.Animator
	if nd.Orbit != nil {
		a, err := NewOrbitAnimator(*nd.Orbit)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}
		n.SetDefaultPosition(a.Position())
		animators = append(animators, a)
	}
	if nd.Spin != nil {
		a, err := NewSpinAnimator(*nd.Spin)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}
		animators = append(animators, a)
	}
	if len(animators) > 0 {
		n.SetAnimator(chain(animators...))
	}

	for _, cd := range nd.Children {
		c, err := b.node(cd)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(c); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (b *Builder) transform(n *scene.Node, nd NodeDesc) error {
	switch len(nd.Scale) {
	case 0:
	case 1:
		n.SetDefaultScale(mgl32.Vec3{nd.Scale[0], nd.Scale[0], nd.Scale[0]})
	case 3:
		n.SetDefaultScale(mgl32.Vec3{nd.Scale[0], nd.Scale[1], nd.Scale[2]})
	default:
		return fmt.Errorf("scale needs 1 or 3 values, got %d", len(nd.Scale))
	}

	for _, a := range nd.Angles {
		axis, ok := scene.ParseAxis(a.Axis)
		if !ok {
			return fmt.Errorf("unknown axis %q", a.Axis)
		}
		n.SetDefaultAngle(a.Deg, axis)
	}
	for _, a := range nd.Rotate {
		axis, ok := scene.ParseAxis(a.Axis)
		if !ok {
			return fmt.Errorf("unknown axis %q", a.Axis)
		}
		n.Rotate(a.Deg, axis)
	}

	switch len(nd.Aim) {
	case 0:
	case 2:
		n.SetPreRotation(scene.RotationBetween(nd.Aim[0], nd.Aim[1]))
	default:
		return fmt.Errorf("aim needs a from and a to vector, got %d vectors", len(nd.Aim))
	}
	return nil
}

func (b *Builder) appearance(n *scene.Node, nd NodeDesc) error {
	if nd.Material != "" {
		m, ok := b.materials[nd.Material]
		if !ok {
			return fmt.Errorf("unknown material %q", nd.Material)
		}
		n.SetMaterial(m)
	}
	if nd.Routing != nil {
		n.SetRouting(*nd.Routing)
	}
	if b.Textures == nil {
		return nil
	}
	if nd.Texture != "" {
		if t, ok := loadTexture(b.Textures, nd.Name, nd.Texture); ok {
			n.SetTexture(t)
		}
	}
	if nd.NormalMap != "" {
		if t, ok := loadTexture(b.Textures, nd.Name, nd.NormalMap); ok {
			n.SetNormalMap(t)
		}
	}
	return nil
}

func buildShape(sd *ShapeDesc, color geometry.Color) (*geometry.Mesh, error) {
	switch strings.ToLower(sd.Type) {
	case "cube":
		return geometry.Cube(geometry.CubeParams{
			Length:  sd.Length,
			Width:   sd.Width,
			Height:  sd.Height,
			Color:   color,
			TiledUV: sd.TileU != 0 || sd.TileV != 0,
			TileU:   sd.TileU,
			TileV:   sd.TileV,
		})
	case "sphere":
		return geometry.Sphere(geometry.SphereParams{
			Radius: sd.Radius, Slices: sd.Slices, Stacks: sd.Stacks, Color: color,
		})
	case "ellipsoid":
		return geometry.Ellipsoid(geometry.EllipsoidParams{
			RadiusX: sd.Radii[0], RadiusY: sd.Radii[1], RadiusZ: sd.Radii[2],
			Slices: sd.Slices, Stacks: sd.Stacks, Color: color,
		})
	case "cylinder":
		return geometry.Cylinder(geometry.CylinderParams{
			RadiusLower: sd.RadiusLower, RadiusUpper: sd.RadiusUpper, Height: sd.Height,
			Sides: sd.Sides, Color: color,
		})
	case "torus":
		return geometry.Torus(geometry.TorusParams{
			InnerRadius: sd.Inner, OuterRadius: sd.Outer,
			Sides: sd.Sides, Rings: sd.Rings, Color: color,
		})
	}
	return nil, fmt.Errorf("unknown shape %q", sd.Type)
}

func buildLight(ld LightDesc) (lighting.Light, error) {
	color := mgl32.Vec4(ld.Color)
	if color == (mgl32.Vec4{}) {
		color = mgl32.Vec4{1, 1, 1, 1}
	}
	dir := mgl32.Vec3(ld.Direction)
	if ld.Sun != nil {
		dir = lighting.SunDirection(ld.Sun[0], ld.Sun[1])
	}

	var (
		l   lighting.Light
		err error
	)
	switch strings.ToLower(ld.Type) {
	case "", "point":
		l = lighting.NewPoint(mgl32.Vec3(ld.Position), color)
	case "directional":
		l, err = lighting.NewDirectional(dir, color)
	case "spot":
		limit := ld.AngleLimit
		if ld.Cone != 0 {
			limit = math32.Cos(mgl32.DegToRad(ld.Cone))
		}
		l, err = lighting.NewSpot(lighting.SpotParams{
			Position:       mgl32.Vec3(ld.Position),
			Color:          color,
			Direction:      mgl32.Vec3(ld.SpotDirection),
			RadialFactor:   mgl32.Vec3(ld.Radial),
			AngleLimit:     limit,
			ExpAttenuation: ld.Exponent,
		})
		if err == nil && ld.Infinite {
			var d lighting.Light
			if d, err = lighting.NewDirectional(dir, color); err == nil {
				l.Infinite, l.Direction = true, d.Direction
			}
		}
	default:
		return lighting.Light{}, fmt.Errorf("unknown light type %q", ld.Type)
	}
	if err != nil {
		return lighting.Light{}, err
	}
	l.Enabled = !ld.Disabled
	return l, nil
}
