package maze

import (
	"fmt"
	"math/rand"
)

type Config struct {
	Width, Height int

	// Logical cell carving begins from; odd coordinates inside the border.
	// nil = (1,1)
	Start *Point

	// Carve a border opening next to Start
	Entrance bool

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Higher values add cycles. Constraints (No Plazas/Pillars) take precedence.
	Braiding float64
}

// Generate carves a maze with a randomized depth-first backtracker on the
// doubled grid: logical cells sit at odd coordinates, the even positions
// between them are the walls or passages connecting them.
//
// All randomness is drawn from rng, so a fixed seed reproduces the grid.
func Generate(cfg Config, rng *rand.Rand) (*Map, error) {
	if err := ValidateDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	start := Point{1, 1}
	if cfg.Start != nil {
		start = *cfg.Start
	}
	if !isLogical(start, cfg.Width, cfg.Height) {
		return nil, fmt.Errorf("%w: (%d,%d) is not a logical cell of a %dx%d grid",
			ErrInvalidStart, start.X, start.Y, cfg.Width, cfg.Height)
	}

	// Initialize Grid (Filled with Walls)
	cells := make([]Cell, cfg.Width*cfg.Height)

	m := &Map{
		width:  cfg.Width,
		height: cfg.Height,
		cells:  cells,
		start:  start,
	}

	// Core Generation (Recursive Backtracker)
	m.backtrack(start, rng)

	// Introduces cycles while preventing Plazas and Pillars.
	if cfg.Braiding > 0 {
		m.braid(cfg.Braiding, rng)
	}

	if cfg.Entrance {
		m.set(entranceFor(start, cfg.Width, cfg.Height), Open)
	}

	m.finish()
	return m, nil
}

func isLogical(p Point, width, height int) bool {
	return p.X%2 == 1 && p.Y%2 == 1 && p.X > 0 && p.X < width-1 && p.Y > 0 && p.Y < height-1
}

// entranceFor picks the border cell next to start, checking N, W, S, E.
// An interior start gets the north opening of its column, which always
// touches the open logical cell (start.X, 1).
func entranceFor(start Point, width, height int) Point {
	switch {
	case start.Y == 1:
		return Point{start.X, 0}
	case start.X == 1:
		return Point{0, start.Y}
	case start.Y == height-2:
		return Point{start.X, height - 1}
	case start.X == width-2:
		return Point{width - 1, start.Y}
	}
	return Point{start.X, 0}
}

func (m *Map) set(p Point, c Cell) {
	m.cells[p.Y*m.width+p.X] = c
}

// --- Core Algorithms ---

func (m *Map) backtrack(start Point, rng *rand.Rand) {
	stack := []Point{start}
	m.set(start, Open)

	jumps := [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	candidates := make([]Point, 0, 4)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range jumps {
			next := curr.Add(d)
			// Leave 1 cell border for walls
			if next.X > 0 && next.X < m.width-1 && next.Y > 0 && next.Y < m.height-1 {
				if m.At(next) == Wall {
					candidates = append(candidates, d)
				}
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		m.set(Point{curr.X + d.X/2, curr.Y + d.Y/2}, Open)
		next := curr.Add(d)
		m.set(next, Open)
		stack = append(stack, next)
	}
}

func (m *Map) braid(probability float64, rng *rand.Rand) {
	jumps := [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	// Iterate over odd nodes (Rooms)
	for y := 1; y < m.height-1; y += 2 {
		for x := 1; x < m.width-1; x += 2 {
			p := Point{x, y}
			if m.At(p) == Wall {
				continue
			}

			// A node is a dead end if it has exactly 1 Open neighbor
			if len(m.Neighbors(p)) != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]Point, 0, 4)
			for _, jd := range jumps {
				n := p.Add(jd)
				w := Point{x + jd.X/2, y + jd.Y/2}
				if m.InBounds(n) && m.At(n) == Open && m.At(w) == Wall && m.canSafelyRemoveWall(w) {
					candidates = append(candidates, w)
				}
			}

			if len(candidates) > 0 {
				m.set(candidates[rng.Intn(len(candidates))], Open)
			}
		}
	}
}

// canSafelyRemoveWall checks if opening w creates prohibited topology:
// 1. Plazas (2x2 Open).
// 2. Pillars (Isolated Walls).
func (m *Map) canSafelyRemoveWall(w Point) bool {
	x, y := w.X, w.Y
	// Out of bounds reads as Wall
	isO := func(tx, ty int) bool { return m.At(Point{tx, ty}) == Open }

	// --- Check 1: No Plazas ---
	if isO(x-1, y-1) && isO(x, y-1) && isO(x-1, y) {
		return false
	}
	if isO(x, y-1) && isO(x+1, y-1) && isO(x+1, y) {
		return false
	}
	if isO(x-1, y) && isO(x-1, y+1) && isO(x, y+1) {
		return false
	}
	if isO(x+1, y) && isO(x, y+1) && isO(x+1, y+1) {
		return false
	}

	// --- Check 2: No Pillars ---
	// Every orthogonal Wall neighbor must keep another Wall connection once w opens.
	for _, d := range dirs {
		n := w.Add(d)
		if !m.InBounds(n) || m.At(n) != Wall {
			continue
		}
		connections := 0
		for _, d2 := range dirs {
			nn := n.Add(d2)
			if nn == w || !m.InBounds(nn) {
				continue
			}
			if m.At(nn) == Wall {
				connections++
			}
		}
		if connections == 0 {
			return false
		}
	}

	return true
}
