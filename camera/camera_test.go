package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-crawler/maze"
	"github.com/lixenwraith/maze-crawler/scene"
	"github.com/lixenwraith/maze-crawler/vmath"
)

const eps = 1e-9

// corridor: start at (1,1), open eastward to (3,1)
const corridor = `
#####
#S..#
#####
`

func corridorScene(t *testing.T) *scene.RenderableMap[int] {
	t.Helper()
	m, err := maze.Parse(corridor)
	require.NoError(t, err)
	rm, err := scene.Build(m, 0, 0)
	require.NoError(t, err)
	return rm
}

func TestAtStart_InsideOpenCell(t *testing.T) {
	rm := corridorScene(t)
	cam := AtStart(rm.Map(), DefaultEyeHeight)

	assert.Equal(t, rm.CameraStart(DefaultEyeHeight), cam.Position)
	assert.Equal(t, rm.Map().Start(), cam.Cell())
	assert.False(t, rm.Solid(cam.Position.X, cam.Position.Z))
	assert.True(t, free(rm, cam.Position.X, cam.Position.Z), "collision square overlaps a wall at spawn")
}

func TestDirections(t *testing.T) {
	var cam Camera
	assert.InDelta(t, 1, cam.Forward().Z, eps)
	assert.InDelta(t, -1, cam.Left().X, eps)

	// Quarter turn left faces -X; left then points to -Z
	cam.Rotation.Y = math.Pi / 2
	assert.InDelta(t, -1, cam.Forward().X, eps)
	assert.InDelta(t, -1, cam.Left().Z, eps)

	for _, yaw := range []float64{0, 0.3, 2, -4} {
		cam.Rotation = vmath.V3F(0.4, yaw, 0)
		assert.InDelta(t, 1, vmath.V3FMag(cam.Forward()), eps)
		assert.InDelta(t, 1, vmath.V3FMag(cam.Left()), eps)
		assert.InDelta(t, 0, vmath.V3FDot(cam.Left(), cam.Forward()), eps)
	}
}

func TestUpdate_FreeFlight(t *testing.T) {
	cam := AtCell(maze.Point{X: 1, Y: 1}, 0.5)
	cam.Update(Input{Forward: true}, DefaultSpeeds)
	assert.InDelta(t, 1.6, cam.Position.Z, eps)

	cam.Update(Input{Up: true, Right: true}, DefaultSpeeds)
	assert.InDelta(t, 0.6, cam.Position.Y, eps)
	assert.InDelta(t, 1.6, cam.Position.X, eps)

	cam.Update(Input{TurnLeft: true}, DefaultSpeeds)
	assert.InDelta(t, 0.1, cam.Rotation.Y, eps)
	cam.Update(Input{TurnRight: true}, Speeds{Turn: 0.3})
	assert.InDelta(t, -0.2, cam.Rotation.Y, eps)
}

func TestUpdate_PitchClamped(t *testing.T) {
	var cam Camera
	for i := 0; i < 100; i++ {
		cam.Update(Input{PitchUp: true}, DefaultSpeeds)
	}
	assert.Equal(t, maxPitch, cam.Rotation.X)
	for i := 0; i < 100; i++ {
		cam.Update(Input{PitchDown: true}, DefaultSpeeds)
	}
	assert.Equal(t, -maxPitch, cam.Rotation.X)
}

func TestUpdateBounded(t *testing.T) {
	rm := corridorScene(t)
	cam := AtStart(rm.Map(), DefaultEyeHeight)

	// Facing +Z (south) into the wall
	blocked := cam.UpdateBounded(Input{Forward: true}, Speeds{Move: 0.5}, rm)
	assert.True(t, blocked)
	assert.Equal(t, 1.5, cam.Position.Z)

	// Strafing right walks east along the corridor
	for i := 0; i < 50; i++ {
		blocked = cam.UpdateBounded(Input{Right: true}, DefaultSpeeds, rm)
		if blocked {
			break
		}
	}
	assert.True(t, blocked, "east wall never reached")
	assert.Greater(t, cam.Position.X, 3.0)
	assert.Less(t, cam.Position.X+collisionRadius, 4.0)
	assert.Equal(t, maze.Point{X: 3, Y: 1}, cam.Cell())

	// Unblocked motion reports false
	assert.False(t, cam.UpdateBounded(Input{Left: true}, DefaultSpeeds, rm))
	assert.False(t, cam.UpdateBounded(Input{}, DefaultSpeeds, rm))
}

func TestViewProjection(t *testing.T) {
	cam := AtCell(maze.Point{X: 2, Y: 2}, 0.5)

	v := vmath.Mat4Point(cam.View(), vmath.V3FArray(cam.Position))
	assert.InDelta(t, 0, v.X, 1e-6)
	assert.InDelta(t, 0, v.Z, 1e-6)

	// A point 3 units ahead projects to the screen center, inside the depth range
	clip := vmath.Mat4Point(cam.ViewProjection(16.0/9.0), [3]float32{2.5, 0.5, 5.5})
	require.Greater(t, clip.W, float32(0))
	assert.InDelta(t, 0, clip.X/clip.W, 1e-6)
	assert.InDelta(t, 0, clip.Y/clip.W, 1e-6)
	assert.Greater(t, clip.Z/clip.W, float32(-1))
	assert.Less(t, clip.Z/clip.W, float32(1))
}

func TestHeading_IgnoresPitch(t *testing.T) {
	cam := Camera{Rotation: vmath.V3F(1.2, -math.Pi/2, 0)}
	x, z := cam.Heading()
	assert.InDelta(t, 1, x, eps)
	assert.InDelta(t, 0, z, eps)

	f := cam.Forward()
	assert.InDelta(t, math.Cos(1.2), f.X, eps, "Forward keeps the pitch Heading drops")
}
