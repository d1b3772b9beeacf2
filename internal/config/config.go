package config

import "sync"

// RenderSettings holds values that can change while the window is open.
type RenderSettings struct {
	mu               sync.RWMutex
	fpsLimit         int // 0 = unlimited
	mouseSensitivity float32
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:         0,
	mouseSensitivity: 0.2,
}

// GetFPSLimit returns the frame cap, 0 meaning unlimited.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values disable the cap.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}

// GetMouseSensitivity returns degrees of rotation per pixel of pointer motion.
func GetMouseSensitivity() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.mouseSensitivity
}

func SetMouseSensitivity(s float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if s <= 0 {
		s = 0.01
	}
	if s > 5 {
		s = 5
	}
	globalRenderSettings.mouseSensitivity = s
}
