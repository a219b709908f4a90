package vmath

import (
	"math"
)

// GridTraverser implements a zero-allocation iterator for supercover DDA
// grid traversal over unit cells.
type GridTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	// Segment parameter in [0, 1] where the current cell was entered
	t float64

	started bool
	done    bool
}

// NewGridTraverser creates a new iterator from (x1, y1) to (x2, y2).
// Cell (i, j) covers [i, i+1) × [j, j+1).
func NewGridTraverser(x1, y1, x2, y2 float64) GridTraverser {
	t := GridTraverser{
		currX: int(math.Floor(x1)), currY: int(math.Floor(y1)),
		targetX: int(math.Floor(x2)), targetY: int(math.Floor(y2)),
	}

	dx := x2 - x1
	dy := y2 - y1

	t.stepX, t.stepY = 1, 1
	if dx < 0 {
		t.stepX = -1
		dx = -dx
	}
	if dy < 0 {
		t.stepY = -1
		dy = -dy
	}

	if dx == 0 {
		t.tMaxX = math.Inf(1)
	} else {
		t.tDeltaX = 1 / dx
		frac := x1 - math.Floor(x1)
		if t.stepX > 0 {
			t.tMaxX = (1 - frac) * t.tDeltaX
		} else {
			t.tMaxX = frac * t.tDeltaX
		}
	}

	if dy == 0 {
		t.tMaxY = math.Inf(1)
	} else {
		t.tDeltaY = 1 / dy
		frac := y1 - math.Floor(y1)
		if t.stepY > 0 {
			t.tMaxY = (1 - frac) * t.tDeltaY
		} else {
			t.tMaxY = frac * t.tDeltaY
		}
	}

	return t
}

// Next advances the traverser to the next cell.
// Returns true if a valid cell is available via Pos().
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}

	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	if t.tMaxX < t.tMaxY {
		if t.currX != t.targetX {
			t.stepAlongX()
		} else {
			t.stepAlongY()
		}
	} else if t.tMaxX > t.tMaxY {
		if t.currY != t.targetY {
			t.stepAlongY()
		} else {
			t.stepAlongX()
		}
	} else {
		// Exact corner crossing moves diagonally
		t.t = t.tMaxX
		if t.currX != t.targetX {
			t.currX += t.stepX
			t.tMaxX += t.tDeltaX
		}
		if t.currY != t.targetY {
			t.currY += t.stepY
			t.tMaxY += t.tDeltaY
		}
	}

	t.t = math.Min(t.t, 1)
	return true
}

func (t *GridTraverser) stepAlongX() {
	t.t = t.tMaxX
	t.currX += t.stepX
	t.tMaxX += t.tDeltaX
}

func (t *GridTraverser) stepAlongY() {
	t.t = t.tMaxY
	t.currY += t.stepY
	t.tMaxY += t.tDeltaY
}

// Pos returns the current grid coordinates.
func (t *GridTraverser) Pos() (int, int) {
	return t.currX, t.currY
}

// T returns the segment parameter at which the current cell was entered,
// 0 for the starting cell.
func (t *GridTraverser) T() float64 {
	return t.t
}
