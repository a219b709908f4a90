package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is the state of one grid position
type Cell uint8

const (
	Wall Cell = iota
	Open
)

func (c Cell) String() string {
	if c == Open {
		return "open"
	}
	return "wall"
}

// Point is a grid address; comparable, usable as a map key
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

const (
	MinSize = 3
	maxArea = 1 << 24
)

var (
	ErrInvalidDimensions = errors.New("maze: invalid dimensions")
	ErrInvalidStart      = errors.New("maze: invalid start")
	ErrNilRand           = errors.New("maze: nil random source")
	ErrInvalidMap        = errors.New("maze: invalid map")
)

// Orthogonal unit steps in N, W, S, E order
var dirs = [4]Point{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}

// Map is a generated grid of Wall/Open cells. It is never mutated after
// construction; slice accessors return copies.
type Map struct {
	width, height int
	cells         []Cell

	start    Point
	entrance Point
	hasEntry bool
	end      Point
	solution []Point
}

// ValidateDimensions rejects grids that cannot host the doubled-grid layout:
// both axes odd and at least MinSize.
func ValidateDimensions(width, height int) error {
	if width < MinSize || height < MinSize {
		return fmt.Errorf("%w: %dx%d below minimum %d", ErrInvalidDimensions, width, height, MinSize)
	}
	if width%2 == 0 || height%2 == 0 {
		return fmt.Errorf("%w: %dx%d must be odd in both axes", ErrInvalidDimensions, width, height)
	}
	if width > maxArea/height {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimensions, width, height, maxArea)
	}
	return nil
}

// New builds a Map from an explicit row-major cell slice. The start cell must
// be Open, every Open cell must connect to it, and at most one border cell may
// be Open. Cycles are allowed. End is the Open cell farthest from start.
func New(width, height int, cells []Cell, start Point) (*Map, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d grid", ErrInvalidDimensions, len(cells), width, height)
	}

	m := &Map{
		width:  width,
		height: height,
		cells:  make([]Cell, len(cells)),
		start:  start,
	}
	copy(m.cells, cells)

	if !m.IsOpen(start) {
		return nil, fmt.Errorf("%w: (%d,%d) is not an open cell", ErrInvalidStart, start.X, start.Y)
	}
	if reached, open := m.Reachable(start), m.OpenCount(); reached != open {
		return nil, fmt.Errorf("%w: %d of %d open cells reachable from start", ErrInvalidMap, reached, open)
	}
	if n := len(m.borderOpenings()); n > 1 {
		return nil, fmt.Errorf("%w: %d border openings, at most one allowed", ErrInvalidMap, n)
	}
	m.finish()
	return m, nil
}

// Parse reads the text form produced by String: '#' for Wall, anything else
// Open; 'S' marks the start. Without 'S' the first Open cell is used.
func Parse(text string) (*Map, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	height := len(lines)
	width := len([]rune(strings.TrimRight(lines[0], "\r")))
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	cells := make([]Cell, 0, width*height)
	start := Point{-1, -1}
	for y, line := range lines {
		row := []rune(strings.TrimRight(line, "\r"))
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, y, len(row), width)
		}
		for x, r := range row {
			c := Open
			if r == '#' {
				c = Wall
			}
			if r == 'S' {
				start = Point{x, y}
			}
			if c == Open && start.X < 0 {
				start = Point{x, y}
			}
			cells = append(cells, c)
		}
	}
	if start.X < 0 {
		return nil, fmt.Errorf("%w: no open cell", ErrInvalidStart)
	}
	return New(width, height, cells, start)
}

// finish derives entrance, end and solution path from the carved grid
func (m *Map) finish() {
	for _, p := range m.borderOpenings() {
		m.entrance, m.hasEntry = p, true
		break
	}

	m.end = m.farthestFrom(m.start)
	m.solution = m.Solve(m.start, m.end)
}

func (m *Map) borderOpenings() []Point {
	var out []Point
	m.Each(func(p Point, c Cell) {
		if c == Open && m.onBorder(p) {
			out = append(out, p)
		}
	})
	return out
}

func (m *Map) onBorder(p Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == m.width-1 || p.Y == m.height-1
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// At returns the cell at p; out-of-bounds positions read as Wall
func (m *Map) At(p Point) Cell {
	if !m.InBounds(p) {
		return Wall
	}
	return m.cells[p.Y*m.width+p.X]
}

func (m *Map) IsOpen(p Point) bool { return m.At(p) == Open }

// Start is the logical cell carving began from; the camera spawns here
func (m *Map) Start() Point { return m.start }

// Entrance is the border opening next to Start, if one was carved
func (m *Map) Entrance() (Point, bool) { return m.entrance, m.hasEntry }

func (m *Map) HasEntrance() bool { return m.hasEntry }

// End is the Open cell with the greatest BFS distance from Start
func (m *Map) End() Point { return m.end }

// SolutionPath returns the shortest path Start→End, both inclusive, or nil
// when End is unreachable
func (m *Map) SolutionPath() []Point {
	if m.solution == nil {
		return nil
	}
	out := make([]Point, len(m.solution))
	copy(out, m.solution)
	return out
}

func (m *Map) OpenCount() int {
	n := 0
	for _, c := range m.cells {
		if c == Open {
			n++
		}
	}
	return n
}

// Cells returns a copy of the row-major cell grid
func (m *Map) Cells() []Cell {
	out := make([]Cell, len(m.cells))
	copy(out, m.cells)
	return out
}

// Each visits every grid position in row-major order
func (m *Map) Each(fn func(p Point, c Cell)) {
	for y := 0; y < m.height; y++ {
		row := m.cells[y*m.width : (y+1)*m.width]
		for x, c := range row {
			fn(Point{x, y}, c)
		}
	}
}

// Neighbors returns the in-bounds orthogonal neighbors of p that are Open
func (m *Map) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range dirs {
		n := p.Add(d)
		if m.IsOpen(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders the grid: '#' Wall, '.' Open, 'S' start, 'E' end
func (m *Map) String() string {
	var sb strings.Builder
	sb.Grow((m.width + 1) * m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			p := Point{x, y}
			switch {
			case p == m.start:
				sb.WriteByte('S')
			case p == m.end:
				sb.WriteByte('E')
			case m.At(p) == Wall:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
