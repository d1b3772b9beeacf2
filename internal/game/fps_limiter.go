package game

import (
	"time"

	"voxelscene/internal/config"
)

// idleFPS caps the frame rate while the window is in the background.
const idleFPS = 30

// spinWindow is the tail of each wait spent busy-waiting instead of sleeping.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces the render loop to config.GetFPSLimit frames per second.
// A limit of zero leaves pacing to V-Sync.
type FPSLimiter struct {
	next  time.Time
	limit func() int
}

// NewFPSLimiter creates a limiter reading the global FPS setting.
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{limit: config.GetFPSLimit}
}

// frameInterval returns the target frame period, or zero when unlimited.
func (f *FPSLimiter) frameInterval(idle bool) time.Duration {
	fps := f.limit()
	if idle && (fps <= 0 || fps > idleFPS) {
		fps = idleFPS
	}
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Wait blocks until the next frame is due. Sleeping stops spinWindow short
// of the deadline and the rest is spun.
func (f *FPSLimiter) Wait(idle bool) {
	target := f.frameInterval(idle)
	if target == 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// Resync after a hitch instead of rushing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
