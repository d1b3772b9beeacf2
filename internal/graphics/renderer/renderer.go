package renderer

import (
	"log"
	"time"

	"voxelscene/internal/profiling"
	"voxelscene/internal/scene"
	"voxelscene/internal/textures"
)

// Renderer drives one scene against one backend each frame and applies
// finished texture loads before drawing.
type Renderer struct {
	scene   *scene.Scene
	backend scene.Backend
	loader  *textures.Loader
	metrics *profiling.FrameMetrics
}

// NewRenderer creates a renderer. loader and metrics may be nil.
func NewRenderer(s *scene.Scene, b scene.Backend, loader *textures.Loader, metrics *profiling.FrameMetrics) *Renderer {
	return &Renderer{
		scene:   s,
		backend: b,
		loader:  loader,
		metrics: metrics,
	}
}

// RequestTextures queues the decode of each material texture.
func (r *Renderer) RequestTextures(paths map[scene.Material]string) {
	if r.loader == nil {
		return
	}
	for m, path := range paths {
		unit := m.TextureUnit()
		if unit < 0 || path == "" {
			continue
		}
		if !r.loader.SubmitBlocking(textures.Job{Unit: unit, Path: path}) {
			log.Printf("texture %s not queued: loader stopped", path)
		}
	}
}

// applyTextures uploads every texture decoded since the last frame. A
// material whose texture failed keeps sampling whatever its unit holds.
func (r *Renderer) applyTextures() {
	if r.loader == nil {
		return
	}
	defer profiling.Track("renderer.applyTextures")()

	r.loader.Drain(func(res textures.Result) {
		err := res.Err
		if err == nil {
			err = r.backend.BindTexture(res.Unit, res.Image)
		}
		if r.metrics != nil {
			r.metrics.TextureLoaded(err == nil)
		}
		if err != nil {
			log.Printf("texture unit %d: %v", res.Unit, err)
			return
		}
		log.Printf("texture unit %d loaded from %s", res.Unit, res.Path)
	})
}

// Render draws one frame. Errors are logged and counted; the next frame is
// attempted regardless.
func (r *Renderer) Render() scene.FrameStats {
	defer profiling.Track("renderer.Render")()
	start := time.Now()

	r.applyTextures()
	stats, err := r.scene.Render(r.backend)
	if err != nil {
		log.Printf("render: %v", err)
		if r.metrics != nil {
			r.metrics.RenderError()
		}
		return stats
	}
	if r.metrics != nil {
		r.metrics.ObserveFrame(stats.DrawCalls, stats.Vertices, stats.Cubes, time.Since(start))
	}
	return stats
}

// UpdateViewport updates the backend viewport and the scene camera for a
// new framebuffer size
func (r *Renderer) UpdateViewport(width, height int) {
	if v, ok := r.backend.(interface{ Viewport(w, h int) }); ok {
		v.Viewport(width, height)
	}
	r.scene.SetViewport(width, height)
}

// Dispose stops texture decoding. The backend is owned by the caller.
func (r *Renderer) Dispose() {
	if r.loader != nil {
		r.loader.Shutdown()
	}
}
