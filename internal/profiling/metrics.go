package profiling

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxelscene"

// FrameMetrics exports render statistics to Prometheus. Each instance owns
// its registry so several can coexist in tests.
type FrameMetrics struct {
	registry *prometheus.Registry

	frames       prometheus.Counter
	renderErrors prometheus.Counter
	drawCalls    prometheus.Gauge
	vertices     prometheus.Gauge
	cubes        prometheus.Gauge
	frameSeconds prometheus.Histogram
	textures     *prometheus.CounterVec
}

// NewFrameMetrics creates and registers the frame collectors.
func NewFrameMetrics() *FrameMetrics {
	m := &FrameMetrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames submitted to the backend.",
		}),
		renderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Frames that failed to submit.",
		}),
		drawCalls: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "draw_calls",
			Help:      "Draw calls issued by the last frame.",
		}),
		vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vertices",
			Help:      "Vertices submitted by the last frame.",
		}),
		cubes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "terrain_cubes",
			Help:      "Terrain cubes batched by the last frame.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "CPU time spent building and submitting a frame.",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1},
		}),
		textures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "texture_loads_total",
			Help:      "Texture decode results by outcome.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.frames,
		m.renderErrors,
		m.drawCalls,
		m.vertices,
		m.cubes,
		m.frameSeconds,
		m.textures,
	)
	return m
}

// Registry exposes the collectors for scraping or inspection.
func (m *FrameMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFrame records one successfully submitted frame.
func (m *FrameMetrics) ObserveFrame(drawCalls, vertices, cubes int, d time.Duration) {
	m.frames.Inc()
	m.drawCalls.Set(float64(drawCalls))
	m.vertices.Set(float64(vertices))
	m.cubes.Set(float64(cubes))
	m.frameSeconds.Observe(d.Seconds())
}

// RenderError records a frame that failed to submit.
func (m *FrameMetrics) RenderError() {
	m.renderErrors.Inc()
}

// TextureLoaded records the outcome of one texture decode.
func (m *FrameMetrics) TextureLoaded(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.textures.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *FrameMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr in the background. The returned server can
// be shut down by the caller.
func (m *FrameMetrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("metrics available at http://%s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server: %v", err)
		}
	}()
	return srv
}
