// Package config loads viewer settings from defaults, a YAML file and
// command-line flags, in that order of priority.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Camera  CameraConfig  `yaml:"camera"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    int    `yaml:"samples"` // MSAA, 0 disables
}

// RenderConfig holds pipeline state and the initial light-term switches.
type RenderConfig struct {
	AmbientOn   bool       `yaml:"ambient_on"`
	DiffuseOn   bool       `yaml:"diffuse_on"`
	SpecularOn  bool       `yaml:"specular_on"`
	ClearColor  [3]float32 `yaml:"clear_color,flow"`
	FOV         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	FaceCulling bool       `yaml:"face_culling"`
}

// SceneConfig selects what is shown at startup.
type SceneConfig struct {
	Name     string `yaml:"name"`      // name of a built-in scene
	File     string `yaml:"file"`      // optional scene description, replaces the built-ins
	AssetDir string `yaml:"asset_dir"` // base directory for texture paths
}

// CameraConfig holds the orbit camera start pose.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	Pitch           float32 `yaml:"pitch"` // radians
	Yaw             float32 `yaml:"yaw"`   // radians
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
}

// CaptureConfig controls screenshots.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "prism",
			Width:   1024,
			Height:  768,
			VSync:   true,
			Samples: 4,
		},
		Render: RenderConfig{
			AmbientOn:   true,
			DiffuseOn:   true,
			SpecularOn:  true,
			ClearColor:  [3]float32{0.1, 0.1, 0.15},
			FOV:         45,
			Near:        0.1,
			Far:         100,
			FaceCulling: true,
		},
		Scene: SceneConfig{
			Name:     "orbit",
			AssetDir: "assets",
		},
		Camera: CameraConfig{
			Distance:        8,
			Pitch:           0.4,
			Yaw:             0,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "prism",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		errs = append(errs, fmt.Errorf("samples %d must not be negative", c.Window.Samples))
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v must be in (0, 180)", c.Render.FOV))
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		errs = append(errs, fmt.Errorf("clip range [%v, %v] must satisfy 0 < near < far", c.Render.Near, c.Render.Far))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera distance %v must be positive", c.Camera.Distance))
	}
	return errors.Join(errs...)
}
