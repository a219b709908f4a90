package camera

import (
	"math"

	"github.com/lixenwraith/maze-crawler/maze"
	"github.com/lixenwraith/maze-crawler/scene"
	"github.com/lixenwraith/maze-crawler/vmath"
)

const (
	DefaultEyeHeight = 0.5
	DefaultFOV       = math.Pi / 3
	DefaultNear      = 0.1
	DefaultFar       = 1024.0

	// Pitch stays short of straight up/down so the look-at basis never degenerates
	maxPitch = 1.5

	// Keeps the eye this far from wall faces when moving bounded
	collisionRadius = 0.15
)

var up = vmath.V3F(0, 1, 0)

// Camera is a first-person viewpoint. Rotation.X is pitch (positive looks
// up), Rotation.Y is yaw (positive turns left); Rotation.Z is unused.
// Yaw 0 looks down +Z.
type Camera struct {
	Position vmath.Vec3F
	Rotation vmath.Vec3F
}

// Input is one frame's control state, sampled by the window layer
type Input struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool

	TurnLeft, TurnRight bool
	PitchUp, PitchDown  bool
}

// Speeds are per-update step sizes in world units and radians
type Speeds struct {
	Move float64
	Turn float64
	Lift float64
}

var DefaultSpeeds = Speeds{Move: 0.1, Turn: 0.1, Lift: 0.1}

// Solid answers whether a world x/z column is blocked
type Solid interface {
	Solid(x, z float64) bool
}

// AtCell places the camera at eye height in the middle of cell p, yaw 0
func AtCell(p maze.Point, eyeHeight float64) Camera {
	return Camera{Position: scene.CellCenter(p, eyeHeight)}
}

// AtStart places the camera in the maze's start cell
func AtStart(m *maze.Map, eyeHeight float64) Camera {
	return AtCell(m.Start(), eyeHeight)
}

// Forward is the unit view direction including pitch
func (c Camera) Forward() vmath.Vec3F {
	pitch, yaw := c.Rotation.X, c.Rotation.Y
	return vmath.V3F(
		-math.Sin(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw)*math.Cos(pitch),
	)
}

// Heading is the horizontal unit view direction on the x/z plane
func (c Camera) Heading() (x, z float64) {
	yaw := c.Rotation.Y
	return -math.Sin(yaw), math.Cos(yaw)
}

// Left is the horizontal unit vector to the camera's left
func (c Camera) Left() vmath.Vec3F {
	yaw := c.Rotation.Y
	return vmath.V3F(-math.Cos(yaw), 0, -math.Sin(yaw))
}

func (c Camera) View() vmath.Mat4 {
	return vmath.LookAtLH(c.Position, vmath.V3FAdd(c.Position, c.Forward()), up)
}

func (c Camera) Projection(aspect, fovY, near, far float64) vmath.Mat4 {
	return vmath.PerspectiveLH(aspect, fovY, near, far)
}

// ViewProjection is Projection × View for the default lens
func (c Camera) ViewProjection(aspect float64) vmath.Mat4 {
	return vmath.Mat4Mul(c.Projection(aspect, DefaultFOV, DefaultNear, DefaultFar), c.View())
}

// Update applies one frame of input with free flight
func (c *Camera) Update(in Input, s Speeds) {
	c.turn(in, s)
	c.Position = vmath.V3FAdd(c.Position, c.delta(in, s))
}

// UpdateBounded applies one frame of input but refuses horizontal motion
// into solid columns, sliding along walls axis by axis. It reports whether
// any motion was blocked.
func (c *Camera) UpdateBounded(in Input, s Speeds, solid Solid) bool {
	c.turn(in, s)
	d := c.delta(in, s)

	blocked := false
	p := c.Position
	p.Y += d.Y

	if d.X != 0 {
		if free(solid, p.X+d.X, p.Z) {
			p.X += d.X
		} else {
			blocked = true
		}
	}
	if d.Z != 0 {
		if free(solid, p.X, p.Z+d.Z) {
			p.Z += d.Z
		} else {
			blocked = true
		}
	}

	c.Position = p
	return blocked
}

// free checks the four corners of the collision square around x/z
func free(solid Solid, x, z float64) bool {
	r := collisionRadius
	return !solid.Solid(x-r, z-r) && !solid.Solid(x+r, z-r) &&
		!solid.Solid(x-r, z+r) && !solid.Solid(x+r, z+r)
}

func (c *Camera) turn(in Input, s Speeds) {
	if in.TurnLeft {
		c.Rotation.Y += s.Turn
	}
	if in.TurnRight {
		c.Rotation.Y -= s.Turn
	}
	if in.PitchUp {
		c.Rotation.X += s.Turn
	}
	if in.PitchDown {
		c.Rotation.X -= s.Turn
	}
	c.Rotation.X = math.Max(-maxPitch, math.Min(maxPitch, c.Rotation.X))
}

func (c Camera) delta(in Input, s Speeds) vmath.Vec3F {
	var d vmath.Vec3F
	fwd := vmath.V3FScale(vmath.V3FNormalize(c.Forward()), s.Move)
	left := vmath.V3FScale(c.Left(), s.Move)

	if in.Forward {
		d = vmath.V3FAdd(d, fwd)
	}
	if in.Backward {
		d = vmath.V3FSub(d, fwd)
	}
	if in.Left {
		d = vmath.V3FAdd(d, left)
	}
	if in.Right {
		d = vmath.V3FSub(d, left)
	}
	if in.Up {
		d.Y += s.Lift
	}
	if in.Down {
		d.Y -= s.Lift
	}
	return d
}

// Cell is the grid cell under the camera
func (c Camera) Cell() maze.Point {
	return scene.CellAt(c.Position.X, c.Position.Z)
}
