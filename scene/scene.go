// Package scene turns a generated maze into cube geometry.
//
// Coordinate convention, shared by walls, floors and the camera:
//
//	grid (gx, gy)  →  world (gx, 0, gy)
//
// +X is east, +Y is up, +Z is south (left-handed, Y-up). Cubes are
// corner-anchored: a wall occupies [gx,gx+1]×[0,1]×[gy,gy+1], and a floor
// tile sits one unit lower so its top face forms the y=0 ground plane.
// The center of a cell at eye height h is (gx+0.5, h, gy+0.5).
package scene

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/maze-crawler/cube"
	"github.com/lixenwraith/maze-crawler/geometry"
	"github.com/lixenwraith/maze-crawler/maze"
	"github.com/lixenwraith/maze-crawler/vmath"
)

var (
	ErrNilMap               = errors.New("scene: nil map")
	ErrEmptyMap             = errors.New("scene: map has no open cells")
	ErrInconsistentGeometry = errors.New("scene: inconsistent geometry")
)

// Rows per worker band; smaller maps build on a single goroutine
const minBandRows = 16

// WorldPosition maps a grid address to the world corner of its column
func WorldPosition(p maze.Point) vmath.Vec3F {
	return vmath.V3F(float64(p.X), 0, float64(p.Y))
}

// CellCenter is the world point at height y above the middle of cell p
func CellCenter(p maze.Point, y float64) vmath.Vec3F {
	return vmath.V3F(float64(p.X)+0.5, y, float64(p.Y)+0.5)
}

// CellAt maps world x/z back to the grid cell containing it
func CellAt(x, z float64) maze.Point {
	return maze.Point{X: int(math.Floor(x)), Y: int(math.Floor(z))}
}

// RenderableMap is the cube geometry of one maze plus the caller's texture
// handles. T is opaque here: handles are stored and handed back untouched.
type RenderableMap[T any] struct {
	m        *maze.Map
	walls    []cube.Cube
	floors   []cube.Cube
	wallTex  T
	floorTex T
}

// Build emits one wall cube per Wall cell and one floor cube per Open cell.
// The Map is only read.
func Build[T any](m *maze.Map, wallTex, floorTex T) (*RenderableMap[T], error) {
	if m == nil {
		return nil, ErrNilMap
	}
	open := m.OpenCount()
	if open == 0 {
		return nil, ErrEmptyMap
	}
	if !m.IsOpen(m.Start()) {
		return nil, fmt.Errorf("%w: start %v is a wall", ErrInconsistentGeometry, m.Start())
	}

	bands := splitRows(m.Height(), runtime.GOMAXPROCS(0))
	type part struct{ walls, floors []cube.Cube }
	parts := make([]part, len(bands))

	var g errgroup.Group
	for i, b := range bands {
		i, b := i, b
		g.Go(func() error {
			parts[i].walls, parts[i].floors = buildRows(m, b[0], b[1])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rm := &RenderableMap[T]{
		m:        m,
		walls:    make([]cube.Cube, 0, m.Width()*m.Height()-open),
		floors:   make([]cube.Cube, 0, open),
		wallTex:  wallTex,
		floorTex: floorTex,
	}
	for _, p := range parts {
		rm.walls = append(rm.walls, p.walls...)
		rm.floors = append(rm.floors, p.floors...)
	}

	if len(rm.floors) != open || len(rm.walls)+len(rm.floors) != m.Width()*m.Height() {
		return nil, fmt.Errorf("%w: %d walls + %d floors for %dx%d grid",
			ErrInconsistentGeometry, len(rm.walls), len(rm.floors), m.Width(), m.Height())
	}
	return rm, nil
}

// splitRows partitions [0, height) into at most workers contiguous bands
func splitRows(height, workers int) [][2]int {
	n := height / minBandRows
	if n > workers {
		n = workers
	}
	if n < 1 {
		n = 1
	}
	bands := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		bands = append(bands, [2]int{i * height / n, (i + 1) * height / n})
	}
	return bands
}

func buildRows(m *maze.Map, y0, y1 int) (walls, floors []cube.Cube) {
	for y := y0; y < y1; y++ {
		for x := 0; x < m.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			if m.At(p) == maze.Wall {
				walls = append(walls, cube.New(WorldPosition(p), WallFaces(m, p)))
				continue
			}
			pos := WorldPosition(p)
			pos.Y = -1
			floors = append(floors, cube.New(pos, FloorFaces))
		}
	}
	return walls, floors
}

// FloorFaces: only the top of a floor tile is ever visible
var FloorFaces = geometry.MaskOf(geometry.FaceTop)

// Side faces indexed to their grid neighbor
var sideNeighbors = [...]struct {
	face geometry.Face
	d    maze.Point
}{
	{geometry.FaceFront, maze.Point{X: 0, Y: -1}},
	{geometry.FaceBack, maze.Point{X: 0, Y: 1}},
	{geometry.FaceLeft, maze.Point{X: -1, Y: 0}},
	{geometry.FaceRight, maze.Point{X: 1, Y: 0}},
}

// WallFaces selects the faces of the wall at p: the top, plus every side not
// shared with another in-bounds wall. Walls rest on the floor plane, so the
// bottom is never emitted. Sides on the grid edge stay visible from outside.
func WallFaces(m *maze.Map, p maze.Point) geometry.FaceMask {
	mask := geometry.MaskOf(geometry.FaceTop)
	for _, sn := range sideNeighbors {
		n := p.Add(sn.d)
		if m.InBounds(n) && m.At(n) == maze.Wall {
			continue
		}
		mask = mask.With(sn.face)
	}
	return mask
}

func (r *RenderableMap[T]) Map() *maze.Map { return r.m }

// Walls returns the wall cubes in row-major grid order
func (r *RenderableMap[T]) Walls() []cube.Cube {
	out := make([]cube.Cube, len(r.walls))
	copy(out, r.walls)
	return out
}

// Floors returns the floor cubes in row-major grid order
func (r *RenderableMap[T]) Floors() []cube.Cube {
	out := make([]cube.Cube, len(r.floors))
	copy(out, r.floors)
	return out
}

func (r *RenderableMap[T]) WallTexture() T  { return r.wallTex }
func (r *RenderableMap[T]) FloorTexture() T { return r.floorTex }

// CameraStart is the eye position in the middle of the start cell
func (r *RenderableMap[T]) CameraStart(eyeHeight float64) vmath.Vec3F {
	return CellCenter(r.m.Start(), eyeHeight)
}

// Solid reports whether world x/z falls inside a wall column or off the grid
func (r *RenderableMap[T]) Solid(x, z float64) bool {
	return r.m.At(CellAt(x, z)) == maze.Wall
}

// CastRay walks the grid from world x/z along the unit direction dx/dz and
// returns the first wall cell within maxDist with the distance at which the
// ray enters it. A ray starting inside a wall hits at distance 0.
func (r *RenderableMap[T]) CastRay(x, z, dx, dz, maxDist float64) (maze.Point, float64, bool) {
	tr := vmath.NewGridTraverser(x, z, x+dx*maxDist, z+dz*maxDist)
	for tr.Next() {
		cx, cy := tr.Pos()
		p := maze.Point{X: cx, Y: cy}
		if r.m.At(p) == maze.Wall {
			return p, tr.T() * maxDist, true
		}
	}
	return maze.Point{}, maxDist, false
}
