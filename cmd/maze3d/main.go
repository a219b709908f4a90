package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/maze-crawler/audio"
	"github.com/lixenwraith/maze-crawler/camera"
	"github.com/lixenwraith/maze-crawler/config"
	"github.com/lixenwraith/maze-crawler/logging"
	"github.com/lixenwraith/maze-crawler/maze"
	"github.com/lixenwraith/maze-crawler/scene"
)

var (
	configPath = flag.String("config", "maze.yaml", "YAML config file (missing file = defaults)")
	seedFlag   = flag.Int64("seed", 0, "Maze seed (0 = config value, then time-based)")
	widthFlag  = flag.Int("w", 0, "Maze width, odd (0 = config value)")
	heightFlag = flag.Int("h", 0, "Maze height, odd (0 = config value)")
	debugFlag  = flag.Bool("debug", false, "Write logs/maze-crawler.log")
	muteFlag   = flag.Bool("mute", false, "Disable audio")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nMAZE3D CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flags: %v\n", err)
		os.Exit(1)
	}

	if logFile := logging.Setup(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	seed := cfg.Maze.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m, err := maze.Generate(maze.Config{
		Width:    cfg.Maze.Width,
		Height:   cfg.Maze.Height,
		Entrance: cfg.Maze.Entrance,
		Braiding: cfg.Maze.Braiding,
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate maze: %v\n", err)
		os.Exit(1)
	}
	log.Printf("maze %dx%d seed=%d open=%d start=%v end=%v",
		m.Width(), m.Height(), seed, m.OpenCount(), m.Start(), m.End())

	wallTex := loadTexture(cfg.Assets.WallTexture, wallFallback)
	floorTex := loadTexture(cfg.Assets.FloorTexture, floorFallback)

	rm, err := scene.Build(m, wallTex, floorTex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		os.Exit(1)
	}
	log.Printf("scene: %d walls, %d floors", len(rm.Walls()), len(rm.Floors()))

	sounds := audio.NewSoundManager()
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(); err != nil {
			log.Printf("audio initialization failed: %v (continuing without audio)", err)
		} else {
			defer sounds.Cleanup()
		}
	}

	game := newGame(cfg, rm, camera.AtStart(m, camera.DefaultEyeHeight), sounds)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("%s (seed %d)", cfg.Window.Title, seed))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Renderer stopped: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides config values with explicitly set flags and
// validates the result
func applyFlags(cfg *config.Config) error {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Maze.Seed = *seedFlag
		case "w":
			cfg.Maze.Width = *widthFlag
		case "h":
			cfg.Maze.Height = *heightFlag
		case "debug":
			cfg.Debug = *debugFlag
		case "mute":
			cfg.Audio.Enabled = !*muteFlag
		}
	})
	return cfg.Validate()
}
