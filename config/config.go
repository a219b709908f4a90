package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/maze-crawler/maze"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Config holds everything the maze renderers read at startup.
type Config struct {
	Maze     MazeConfig     `yaml:"maze"`
	Window   WindowConfig   `yaml:"window"`
	Controls ControlsConfig `yaml:"controls"`
	Assets   AssetsConfig   `yaml:"assets"`
	Audio    AudioConfig    `yaml:"audio"`
	Debug    bool           `yaml:"debug"`
}

type MazeConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Seed     int64   `yaml:"seed"` // 0 = time-based
	Braiding float64 `yaml:"braiding"`
	Entrance bool    `yaml:"entrance"`
}

type WindowConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Title     string  `yaml:"title"`
	FOV       float64 `yaml:"fov"` // degrees, vertical
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	Intensity float64 `yaml:"intensity"` // light intensity 0..1
	Wireframe bool    `yaml:"wireframe"`
}

type ControlsConfig struct {
	MoveSpeed float64 `yaml:"move_speed"` // world units per tick
	TurnSpeed float64 `yaml:"turn_speed"` // radians per tick
	Collide   bool    `yaml:"collide"`
}

type AssetsConfig struct {
	WallTexture  string `yaml:"wall_texture"`
	FloorTexture string `yaml:"floor_texture"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Width:    21,
			Height:   21,
			Entrance: true,
		},
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "maze-crawler",
			FOV:       60,
			Near:      0.1,
			Far:       1024,
			Intensity: 0.8,
		},
		Controls: ControlsConfig{
			MoveSpeed: 0.1,
			TurnSpeed: 0.1,
			Collide:   true,
		},
		Assets: AssetsConfig{
			WallTexture:  "assets/wall.png",
			FloorTexture: "assets/floor.png",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
	}
}

// Load reads a YAML file over the defaults.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := maze.ValidateDimensions(c.Maze.Width, c.Maze.Height); err != nil {
		return fmt.Errorf("%w: maze: %w", ErrInvalidConfig, err)
	}
	if c.Maze.Braiding < 0 || c.Maze.Braiding > 1 {
		return fmt.Errorf("%w: braiding %v outside [0, 1]", ErrInvalidConfig, c.Maze.Braiding)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.FOV <= 0 || c.Window.FOV >= 180 {
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidConfig, c.Window.FOV)
	}
	if c.Window.Near <= 0 || c.Window.Far <= c.Window.Near {
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalidConfig, c.Window.Near, c.Window.Far)
	}
	if c.Controls.MoveSpeed <= 0 || c.Controls.TurnSpeed <= 0 {
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidConfig)
	}
	return nil
}

// Marshal renders the config as YAML, e.g. for writing a starter file
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
