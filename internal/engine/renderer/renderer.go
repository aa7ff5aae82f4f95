// Package renderer owns the OpenGL state of the viewer: context function
// loading, per-frame clears, viewport and the Device that shader programs,
// mesh buffers and textures talk to.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	ClearColor  [3]float32
	FaceCulling bool
	Multisample bool
}

// Renderer handles frame setup for the scene.
type Renderer struct {
	config Config
	device Device
}

// New loads the GL function pointers and sets the default state.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	r := &Renderer{config: cfg}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if cfg.Multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
	r.SetFaceCulling(cfg.FaceCulling)
	r.SetClearColor(cfg.ClearColor)
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Device returns the GL device for programs, buffers and textures.
func (r *Renderer) Device() Device { return r.device }

// SetClearColor sets the background color.
func (r *Renderer) SetClearColor(c [3]float32) {
	r.config.ClearColor = c
	gl.ClearColor(c[0], c[1], c[2], 1)
}

// SetFaceCulling enables or disables back-face culling. Fronts are CCW.
func (r *Renderer) SetFaceCulling(on bool) {
	r.config.FaceCulling = on
	if on {
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
		gl.Enable(gl.CULL_FACE)
		return
	}
	gl.Disable(gl.CULL_FACE)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) { return r.config.Width, r.config.Height }

// Aspect returns width over height, or 1 for an empty viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadFrame returns the current framebuffer contents, bottom row first.
func (r *Renderer) ReadFrame() ([]byte, int, int) {
	w, h := r.Size()
	return r.device.ReadPixels(w, h), w, h
}

// Close logs shutdown. Programs, buffers and textures are released by
// their owners.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}
