package game

import (
	"log"
	"time"

	"voxelscene/internal/input"
	"voxelscene/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the processing time above which a frame is logged.
const slowFrame = 16 * time.Millisecond

type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	session      *Session

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

func NewApp(window *glfw.Window, im *input.InputManager, s *Session) *App {
	return &App{
		window:       window,
		inputManager: im,
		session:      s,
		fpsLimiter:   NewFPSLimiter(),
		lastTime:     time.Now(),
	}
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	glfw.PollEvents()

	a.session.Scene.Tick(dt)
	a.session.Renderer.Render()

	a.window.SwapBuffers()

	if d := time.Since(startTick); d > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags

	// Pace at a low rate while the window is not focused
	a.fpsLimiter.Wait(a.window.GetAttrib(glfw.Focused) == glfw.False)
}

// RefreshRender repaints during a live resize, when the main loop is
// blocked inside PollEvents.
func (a *App) RefreshRender() {
	a.session.Renderer.Render()
	a.window.SwapBuffers()
}
