// Package scenes holds the sample scenes of the viewer as YAML
// descriptions and builds scene trees from them.
package scenes

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/prism/internal/engine/shading"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// Builtin scene names in keyboard order.
var builtinOrder = []string{"orbit", "sports", "table", "pool"}

// ErrUnknownScene is returned by Load for a name with no embedded file.
var ErrUnknownScene = errors.New("unknown scene")

// Description is a scene file.
type Description struct {
	Name      string                  `yaml:"name"`
	Camera    *CameraDesc             `yaml:"camera"`
	Materials map[string]MaterialDesc `yaml:"materials"`
	Nodes     []NodeDesc              `yaml:"nodes"`
	Lights    []LightDesc             `yaml:"lights"`
}

// CameraDesc overrides the configured orbit camera for one scene.
type CameraDesc struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"`
	Yaw      float32 `yaml:"yaw"`
}

// MaterialDesc lists the four-component reflectance coefficients.
type MaterialDesc struct {
	Ambient   []float32 `yaml:"ambient,flow"`
	Diffuse   []float32 `yaml:"diffuse,flow"`
	Specular  []float32 `yaml:"specular,flow"`
	Highlight float32   `yaml:"highlight"`
}

// ShapeDesc selects a generator by Type and carries its parameters.
// Fields that do not apply to the type are ignored.
type ShapeDesc struct {
	Type string `yaml:"type"`

	Length float32 `yaml:"length"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	TileU  float32 `yaml:"tile_u"`
	TileV  float32 `yaml:"tile_v"`

	Radius      float32    `yaml:"radius"`
	Radii       [3]float32 `yaml:"radii,flow"`
	RadiusLower float32    `yaml:"radius_lower"`
	RadiusUpper float32    `yaml:"radius_upper"`
	Inner       float32    `yaml:"inner"`
	Outer       float32    `yaml:"outer"`

	Slices int `yaml:"slices"`
	Stacks int `yaml:"stacks"`
	Sides  int `yaml:"sides"`
	Rings  int `yaml:"rings"`
}

// AngleDesc is one rotation about a local axis.
type AngleDesc struct {
	Axis string  `yaml:"axis"`
	Deg  float32 `yaml:"deg"`
}

// SwitchDesc is the routing pair a node alternates between when its light
// is toggled.
type SwitchDesc struct {
	On  shading.Routing `yaml:"on"`
	Off shading.Routing `yaml:"off"`
}

// OrbitDesc moves a node on a circle in the XZ plane, then through an
// optional tilt about a local axis and an offset.
type OrbitDesc struct {
	Radius   float32    `yaml:"radius"`
	Speed    float32    `yaml:"speed"` // degrees per second
	Start    float32    `yaml:"start"` // degrees
	TiltAxis string     `yaml:"tilt_axis"`
	TiltDeg  float32    `yaml:"tilt_deg"`
	Offset   [3]float32 `yaml:"offset,flow"`
}

// SpinDesc rotates a node about one of its axes.
type SpinDesc struct {
	Axis  string  `yaml:"axis"`
	Speed float32 `yaml:"speed"` // degrees per second
}

// NodeDesc is one node of the tree. Prefab names a composite built in
// code and replaces Shape.
type NodeDesc struct {
	Name     string      `yaml:"name"`
	Shape    *ShapeDesc  `yaml:"shape"`
	Prefab   string      `yaml:"prefab"`
	Color    *[3]float32 `yaml:"color,flow"`
	Position [3]float32  `yaml:"position,flow"`
	Scale    []float32   `yaml:"scale,flow"`
	Angles   []AngleDesc `yaml:"angles"`
	Rotate   []AngleDesc `yaml:"rotate"`

	// Aim pre-rotates the node so that Aim[0] points along Aim[1].
	Aim [][3]float32 `yaml:"aim,flow"`

	Material  string           `yaml:"material"`
	Routing   *shading.Routing `yaml:"routing"`
	Texture   string           `yaml:"texture"`
	NormalMap string           `yaml:"normal_map"`

	Switch *SwitchDesc `yaml:"switch"`
	Orbit  *OrbitDesc  `yaml:"orbit"`
	Spin   *SpinDesc   `yaml:"spin"`

	Children []NodeDesc `yaml:"children"`
}

// LightDesc is one light. Type is point, directional or spot; a spot with
// Infinite set is a directional spot.
type LightDesc struct {
	Type     string     `yaml:"type"`
	Position [3]float32 `yaml:"position,flow"`
	Color    [4]float32 `yaml:"color,flow"`
	Disabled bool       `yaml:"disabled"`

	Direction [3]float32 `yaml:"direction,flow"`

	// Sun gives the direction as azimuth and elevation in degrees.
	Sun *[2]float32 `yaml:"sun,flow"`

	SpotDirection [3]float32 `yaml:"spot_direction,flow"`
	Radial        [3]float32 `yaml:"radial,flow"`
	Exponent      float32    `yaml:"exponent"`
	Infinite      bool       `yaml:"infinite"`

	// Cone is the half angle in degrees; AngleLimit is its cosine. Cone
	// wins when both are set.
	Cone       float32 `yaml:"cone"`
	AngleLimit float32 `yaml:"angle_limit"`

	Indicator string `yaml:"indicator"`
	Follow    bool   `yaml:"follow"`
}

// Names returns the builtin scene names in keyboard order.
func Names() []string {
	return append([]string(nil), builtinOrder...)
}

// Load parses the embedded scene called name.
func Load(name string) (*Description, error) {
	data, err := builtinFS.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return Parse(data)
}

// LoadFile parses a scene file from disk.
func LoadFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a scene description. Unknown keys are rejected.
func Parse(data []byte) (*Description, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if d.Name == "" {
		return nil, errors.New("parsing scene: missing name")
	}
	return &d, nil
}
