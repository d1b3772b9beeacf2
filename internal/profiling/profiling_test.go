package profiling

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAccumulatesUntilReset(t *testing.T) {
	ResetFrame()
	stop := Track("test.Op")
	time.Sleep(time.Millisecond)
	stop()
	Track("test.Op")()

	snap := Snapshot()
	require.Contains(t, snap, "test.Op")
	assert.GreaterOrEqual(t, snap["test.Op"], time.Millisecond)

	ResetFrame()
	assert.Empty(t, Snapshot())
}

func TestTopNOrdering(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["a.Fast"] = 500 * time.Microsecond
	frameTotals["b.Slow"] = 4250 * time.Microsecond
	frameTotals["c.Mid"] = 2 * time.Millisecond
	mu.Unlock()
	defer ResetFrame()

	assert.Equal(t, "b.Slow:4.2ms, c.Mid:2ms", TopN(2))
	assert.Equal(t, "b.Slow:4.2ms, c.Mid:2ms, a.Fast:0.5ms", TopN(10))
	assert.Equal(t, "", TopN(0))
}

func gaugeValue(t *testing.T, m *FrameMetrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		metric := mf.GetMetric()[0]
		if g := metric.GetGauge(); g != nil {
			return g.GetValue()
		}
		return metric.GetCounter().GetValue()
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestFrameMetrics(t *testing.T) {
	m := NewFrameMetrics()
	m.ObserveFrame(5, 2580, 60, 3*time.Millisecond)
	m.ObserveFrame(4, 2544, 0, 2*time.Millisecond)
	m.RenderError()
	m.TextureLoaded(true)
	m.TextureLoaded(false)

	assert.Equal(t, 2.0, gaugeValue(t, m, "voxelscene_frames_total"))
	assert.Equal(t, 4.0, gaugeValue(t, m, "voxelscene_draw_calls"))
	assert.Equal(t, 2544.0, gaugeValue(t, m, "voxelscene_vertices"))
	assert.Equal(t, 1.0, gaugeValue(t, m, "voxelscene_render_errors_total"))

	// Two instances do not collide.
	NewFrameMetrics()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `voxelscene_texture_loads_total{result="error"} 1`))
	assert.Contains(t, string(body), "voxelscene_frame_seconds_count 2")
}
