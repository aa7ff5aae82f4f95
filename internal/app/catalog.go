package app

import (
	"fmt"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/scenes"
)

// loadCatalog returns the scenes the viewer cycles through and the index
// to start on. A configured scene file replaces the built-ins.
func loadCatalog(cfg config.SceneConfig) ([]*scenes.Description, int, error) {
	if cfg.File != "" {
		d, err := scenes.LoadFile(cfg.File)
		if err != nil {
			return nil, 0, err
		}
		return []*scenes.Description{d}, 0, nil
	}

	names := scenes.Names()
	list := make([]*scenes.Description, 0, len(names))
	start := -1
	for i, name := range names {
		d, err := scenes.Load(name)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, d)
		if name == cfg.Name {
			start = i
		}
	}
	if start < 0 {
		if cfg.Name != "" {
			return nil, 0, fmt.Errorf("%w: %q", scenes.ErrUnknownScene, cfg.Name)
		}
		start = 0
	}
	return list, start, nil
}

// newCamera builds the orbit camera from the configured pose.
func newCamera(cfg *config.Config) *camera.OrbitCamera {
	c := camera.NewOrbitCamera()
	c.Distance = cfg.Camera.Distance
	c.Pitch = cfg.Camera.Pitch
	c.Yaw = cfg.Camera.Yaw
	c.DragSensitivity = cfg.Camera.DragSensitivity
	c.ZoomSensitivity = cfg.Camera.ZoomSensitivity
	c.FOV = cfg.Render.FOV
	c.Near = cfg.Render.Near
	c.Far = cfg.Render.Far
	return c
}

// applyCameraPose moves c to the pose stored with a scene, falling back to
// the configured pose for a scene without one.
func applyCameraPose(c *camera.OrbitCamera, d *scenes.Description, cfg config.CameraConfig) {
	c.Distance, c.Pitch, c.Yaw = cfg.Distance, cfg.Pitch, cfg.Yaw
	if d.Camera == nil {
		return
	}
	if d.Camera.Distance > 0 {
		c.Distance = min(max(d.Camera.Distance, c.MinDistance), c.MaxDistance)
	}
	c.Pitch = min(max(d.Camera.Pitch, c.MinPitch), c.MaxPitch)
	c.Yaw = d.Camera.Yaw
}
