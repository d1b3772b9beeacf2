package profiling

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame CPU timers. Totals accumulate until ResetFrame.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("scene.BuildFrame")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	return maps.Clone(frameTotals)
}

// TopN formats the n slowest timers of the current frame, slowest first.
// Example: "scene.Render:4.2ms, scene.BuildFrame:2.1ms"
func TopN(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	ss := Snapshot()
	list := make([]entry, 0, len(ss))
	for k, v := range ss {
		list = append(list, entry{k, v})
	}
	slices.SortFunc(list, func(a, b entry) int {
		if c := cmp.Compare(b.dur, a.dur); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	n = min(n, len(list))

	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, e.name+":"+formatMs(e.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs renders d in milliseconds with at most one decimal.
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	return strconv.FormatFloat(float64(int64(ms*10))/10, 'f', -1, 64) + "ms"
}
