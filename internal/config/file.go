package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "VOXELSCENE_CONFIG"

// Config is the on-disk configuration. Every field has a default, so an
// empty or partial file is valid.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	World    WorldConfig   `yaml:"world"`
	Camera   CameraConfig  `yaml:"camera"`
	Light    LightConfig   `yaml:"light"`
	Textures TextureConfig `yaml:"textures"`

	ShaderDir   string `yaml:"shader_dir"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"`
}

type WorldConfig struct {
	Seed   int64 `yaml:"seed"`
	Stones int   `yaml:"stones"`
}

type CameraConfig struct {
	FOV         float32 `yaml:"fov"`
	Sensitivity float32 `yaml:"sensitivity"`
	MoveSpeed   float32 `yaml:"move_speed"`
	PanStep     float32 `yaml:"pan_step"`
}

type LightConfig struct {
	OrbitSpeed  float32 `yaml:"orbit_speed"`
	Color       string  `yaml:"color"`
	GlobalAngle float32 `yaml:"global_angle"`
}

type TextureConfig struct {
	Sky     string `yaml:"sky"`
	Grass   string `yaml:"grass"`
	Stone   string `yaml:"stone"`
	Workers int    `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  900,
			Height: 600,
			Title:  "voxelscene",
			VSync:  true,
		},
		World: WorldConfig{
			Seed:   1,
			Stones: 15,
		},
		Camera: CameraConfig{
			FOV:         60,
			Sensitivity: 0.2,
			MoveSpeed:   0.2,
			PanStep:     5,
		},
		Light: LightConfig{
			OrbitSpeed:  7.5,
			Color:       "#ffffff",
			GlobalAngle: 5,
		},
		Textures: TextureConfig{
			Sky:     "assets/textures/sky.jpg",
			Grass:   "assets/textures/grass.jpg",
			Stone:   "assets/textures/stone.png",
			Workers: 3,
		},
		ShaderDir: "assets/shaders/scene",
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// $VOXELSCENE_CONFIG; when both are empty the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvPath)
	}
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the renderer cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.World.Stones < 0 {
		errs = append(errs, fmt.Errorf("world.stones %d must not be negative", c.World.Stones))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov %v must be in (0, 180)", c.Camera.FOV))
	}
	if c.Textures.Workers < 1 {
		errs = append(errs, fmt.Errorf("textures.workers %d must be at least 1", c.Textures.Workers))
	}
	return errors.Join(errs...)
}

// Apply publishes the runtime-tunable values to the global settings.
func (c Config) Apply() {
	SetFPSLimit(c.Window.FPSLimit)
	SetMouseSensitivity(c.Camera.Sensitivity)
}
