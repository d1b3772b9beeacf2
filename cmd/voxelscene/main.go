package main

import (
	"errors"
	"flag"
	"log"
	"runtime"

	"voxelscene/internal/config"
	"voxelscene/internal/game"
	"voxelscene/internal/graphics"
	"voxelscene/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvPath+")")
	seed := flag.Int64("seed", 0, "terrain seed, overrides the config when non-zero")
	stones := flag.Int("stones", -1, "random stone count, overrides the config when >= 0")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		closer.Fatalln("config:", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if *stones >= 0 {
		cfg.World.Stones = *stones
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	cfg.Apply()

	if err := glfw.Init(); err != nil {
		closer.Fatalln("glfw:", err)
	}

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln("window:", err)
	}

	session, err := game.NewSession(window, cfg)
	if err != nil {
		glfw.Terminate()
		if errors.Is(err, graphics.ErrConfigurationMissing) {
			log.Printf("renderer not started: %v", err)
			closer.Close()
		}
		closer.Fatalln(err)
	}
	// Interrupts stop background work; GL teardown stays on this thread.
	closer.Bind(session.Close)

	app := game.NewApp(window, input.NewInputManager(), session)
	game.SetupInputHandlers(app)
	app.Run()

	session.Cleanup()
	glfw.Terminate()
	closer.Close()
}
