package game

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"voxelscene/internal/config"
	"voxelscene/internal/graphics"
	"voxelscene/internal/graphics/renderer"
	"voxelscene/internal/profiling"
	"voxelscene/internal/scene"
	"voxelscene/internal/textures"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Session wires one scene to the window: shader, GL backend, texture
// loader, renderer and optional metrics endpoint.
type Session struct {
	Window   *glfw.Window
	Scene    *scene.Scene
	Renderer *renderer.Renderer
	Metrics  *profiling.FrameMetrics

	shader     *graphics.Shader
	backend    *renderer.GLBackend
	metricsSrv *http.Server
	closeOnce  sync.Once

	// pointer capture
	captured   bool
	firstMouse bool
	lastX      float64
	lastY      float64
}

// SceneOptions derives the scene start-up options from the configuration.
func SceneOptions(cfg config.Config) scene.Options {
	opts := scene.DefaultOptions()
	opts.Seed = cfg.World.Seed
	opts.Stones = cfg.World.Stones
	opts.Width = cfg.Window.Width
	opts.Height = cfg.Window.Height
	opts.OrbitSpeed = cfg.Light.OrbitSpeed
	opts.GlobalAngle = cfg.Light.GlobalAngle
	opts.FOV = cfg.Camera.FOV
	opts.MoveSpeed = cfg.Camera.MoveSpeed
	opts.PanStep = cfg.Camera.PanStep
	opts.Sensitivity = config.GetMouseSensitivity()
	return opts
}

// TexturePaths maps each textured material to its configured image.
func TexturePaths(cfg config.TextureConfig) map[scene.Material]string {
	return map[scene.Material]string{
		scene.MaterialSky:   cfg.Sky,
		scene.MaterialGrass: cfg.Grass,
		scene.MaterialStone: cfg.Stone,
	}
}

// NewSession compiles the scene shader and builds everything that depends on
// the GL context. A shader missing a required location is reported as
// graphics.ErrConfigurationMissing.
func NewSession(window *glfw.Window, cfg config.Config) (*Session, error) {
	shader, err := graphics.LoadSceneShader(cfg.ShaderDir)
	if err != nil {
		return nil, err
	}
	backend := renderer.NewGLBackend(shader)

	sc := scene.New(SceneOptions(cfg))
	if err := sc.SetLightColorHex(cfg.Light.Color); err != nil {
		log.Printf("light color %q ignored: %v", cfg.Light.Color, err)
	}
	log.Printf("seeded %d random stones (seed %d)", sc.RandomStonesPlaced(), cfg.World.Seed)

	metrics := profiling.NewFrameMetrics()
	loader := textures.NewLoader(cfg.Textures.Workers, len(TexturePaths(cfg.Textures)))
	r := renderer.NewRenderer(sc, backend, loader, metrics)
	r.RequestTextures(TexturePaths(cfg.Textures))

	fbW, fbH := window.GetFramebufferSize()
	r.UpdateViewport(fbW, fbH)

	s := &Session{
		Window:   window,
		Scene:    sc,
		Renderer: r,
		Metrics:  metrics,
		shader:   shader,
		backend:  backend,
	}
	if cfg.MetricsAddr != "" {
		s.metricsSrv = metrics.Serve(cfg.MetricsAddr)
	}
	return s, nil
}

// SetCaptured grabs or releases the pointer. Camera look only follows the
// pointer while it is captured.
func (s *Session) SetCaptured(captured bool) {
	s.captured = captured
	if captured {
		s.firstMouse = true
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		return
	}
	s.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// Captured reports whether the pointer is grabbed.
func (s *Session) Captured() bool { return s.captured }

// pointerMoved converts an absolute cursor position into a delta. The first
// sample after capture only establishes the reference point.
func (s *Session) pointerMoved(x, y float64) (dx, dy float64, ok bool) {
	if !s.captured {
		return 0, 0, false
	}
	if s.firstMouse {
		s.lastX, s.lastY = x, y
		s.firstMouse = false
		return 0, 0, false
	}
	dx, dy = x-s.lastX, y-s.lastY
	s.lastX, s.lastY = x, y
	return dx, dy, true
}

// Close stops background work: texture decoding and the metrics server.
// It touches no GL state, so it may run from a signal handler goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.Renderer.Dispose()
		if s.metricsSrv == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.metricsSrv.Shutdown(ctx); err != nil {
			log.Printf("metrics shutdown: %v", err)
		}
	})
}

// Cleanup releases GL objects and then calls Close. Must run on the thread
// owning the context.
func (s *Session) Cleanup() {
	s.backend.Dispose()
	s.shader.Delete()
	s.Close()
}
