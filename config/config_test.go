package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-crawler/maze"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.8, cfg.Window.Intensity)
	assert.True(t, cfg.Maze.Entrance)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
maze:
  width: 31
  height: 15
  seed: 42
  braiding: 0.25
window:
  title: test
controls:
  collide: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 31, cfg.Maze.Width)
	assert.Equal(t, 15, cfg.Maze.Height)
	assert.Equal(t, int64(42), cfg.Maze.Seed)
	assert.Equal(t, 0.25, cfg.Maze.Braiding)
	assert.Equal(t, "test", cfg.Window.Title)
	assert.False(t, cfg.Controls.Collide)

	// Untouched keys keep defaults
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "assets/wall.png", cfg.Assets.WallTexture)
	assert.True(t, cfg.Maze.Entrance)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"even width", "maze:\n  width: 20\n"},
		{"too small", "maze:\n  height: 1\n"},
		{"braiding", "maze:\n  braiding: 1.5\n"},
		{"fov", "window:\n  fov: 0\n"},
		{"clip planes", "window:\n  near: 5\n  far: 1\n"},
		{"speed", "controls:\n  move_speed: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Load(writeConfig(t, "maze:\n  width: 20\n"))
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "maze: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Maze.Seed = 7
	data, err := cfg.Marshal()
	require.NoError(t, err)

	back, err := Load(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
