// Package app runs the viewer: it owns the window, the GL state, the scene
// being shown and the frame loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/config"
	"github.com/Faultbox/prism/internal/controls"
	"github.com/Faultbox/prism/internal/engine/camera"
	"github.com/Faultbox/prism/internal/engine/capture"
	"github.com/Faultbox/prism/internal/engine/input"
	"github.com/Faultbox/prism/internal/engine/renderer"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/internal/engine/shading"
	"github.com/Faultbox/prism/internal/engine/texture"
	"github.com/Faultbox/prism/internal/engine/window"
	"github.com/Faultbox/prism/internal/logger"
	"github.com/Faultbox/prism/internal/scenes"
)

// App is the viewer instance.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	program  *shader.Program
	textures *texture.Cache
	capture  *capture.Capture

	catalog []*scenes.Description
	control *controls.Controller
	camera  *camera.OrbitCamera

	scene *scene.Scene
	ctx   *scene.Context
}

// New opens the window and loads the starting scene.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	catalog, start, err := loadCatalog(cfg.Scene)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, catalog: catalog}

	// Window first, the GL context must exist before the renderer.
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:       w,
		Height:      h,
		ClearColor:  cfg.Render.ClearColor,
		FaceCulling: cfg.Render.FaceCulling,
		Multisample: cfg.Window.Samples > 0,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	dev := a.renderer.Device()
	a.program, err = shader.New(dev, shading.VertexShader, shading.FragmentShader)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build shader program: %w", err)
	}
	a.ctx = &scene.Context{Program: a.program, Device: dev}

	a.input = input.New()
	a.textures = texture.NewCache(dev, cfg.Scene.AssetDir)
	a.capture = capture.New(cfg.Capture.Dir, cfg.Capture.Prefix)
	a.camera = newCamera(cfg)
	a.control = controls.NewController(shading.Switches{
		Ambient:  cfg.Render.AmbientOn,
		Diffuse:  cfg.Render.DiffuseOn,
		Specular: cfg.Render.SpecularOn,
	}, len(catalog), start)

	if err := a.load(a.control.Scene()); err != nil {
		a.Close()
		return nil, err
	}

	logger.Info("viewer initialized", zap.Int("scenes", len(catalog)))
	return a, nil
}

// load replaces the current scene with catalog entry i.
func (a *App) load(i int) error {
	d := a.catalog[i]
	b := scenes.Builder{Textures: scenes.FromCache(a.textures)}
	s, err := b.Build(d)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}

	a.program.Use()
	if err := s.Initialize(a.ctx); err != nil {
		s.Release()
		return fmt.Errorf("failed to initialize scene: %w", err)
	}

	if a.scene != nil {
		a.scene.Release()
	}
	a.scene = s
	applyCameraPose(a.camera, d, a.cfg.Camera)

	a.window.SetTitle(fmt.Sprintf("%s - %s", a.cfg.Window.Title, d.Name))
	logger.Info("scene loaded",
		zap.String("scene", d.Name),
		zap.Int("lights", s.LightCount()),
		zap.Int("textures", a.textures.Len()),
	)
	return nil
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Input
		closed := a.input.Update()
		for _, cmd := range a.input.Commands() {
			a.control.Apply(cmd)
		}
		if closed || a.control.Quit() {
			return nil
		}

		// 2. Update
		if err := a.update(float32(dt)); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if a.control.TakeScreenshot() {
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Duration("frame", time.Duration(dt*float64(time.Second))))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) update(dt float32) error {
	if _, _, ok := a.control.TakeResize(); ok {
		// Event sizes are in window points; the viewport needs pixels.
		a.renderer.Resize(a.window.DrawableSize())
	}

	if i, ok := a.control.TakeSceneChange(); ok {
		if err := a.load(i); err != nil {
			return err
		}
	}

	for _, slot := range a.control.TakeLightToggles() {
		if slot >= a.scene.LightCount() {
			logger.Debug("no light in slot", zap.Int("slot", slot))
			continue
		}
		if _, err := a.scene.ToggleLight(slot); err != nil {
			return err
		}
	}

	dx, dy, zoom := a.control.TakeCamera()
	if dx != 0 || dy != 0 {
		a.camera.HandleDrag(dx, dy)
	}
	if zoom != 0 {
		a.camera.HandleZoom(zoom)
	}

	a.scene.Update(dt)
	return nil
}

func (a *App) render() error {
	a.renderer.Begin()

	a.program.Use()
	a.program.SetMat4(shader.UniformProjection, a.camera.ProjectionMatrix(a.renderer.Aspect()))
	a.program.SetMat4(shader.UniformView, a.camera.ViewMatrix())
	eye := a.camera.Position()
	if err := a.program.SetVector(shader.UniformViewPosition, eye[:]); err != nil {
		return err
	}
	a.program.SetSwitches(a.control.Switches())

	return a.scene.Draw(a.ctx)
}

// screenshot saves the back buffer. Failures are logged, not fatal.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadFrame()
	path, err := a.capture.FromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.scene != nil {
		a.scene.Release()
		a.scene = nil
	}
	if a.textures != nil {
		a.textures.Release()
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
