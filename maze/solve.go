package maze

// --- Breadth-first queries ---

// distances runs BFS over Open cells from origin. Unreached cells hold -1.
func (m *Map) distances(origin Point) []int {
	dist := make([]int, len(m.cells))
	for i := range dist {
		dist[i] = -1
	}
	if !m.IsOpen(origin) {
		return dist
	}

	queue := []Point{origin}
	dist[origin.Y*m.width+origin.X] = 0

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		d := dist[curr.Y*m.width+curr.X]

		for _, dir := range dirs {
			next := curr.Add(dir)
			if !m.IsOpen(next) {
				continue
			}
			idx := next.Y*m.width + next.X
			if dist[idx] >= 0 {
				continue
			}
			dist[idx] = d + 1
			queue = append(queue, next)
		}
	}
	return dist
}

// Reachable counts the Open cells connected to origin, origin included
func (m *Map) Reachable(origin Point) int {
	n := 0
	for _, d := range m.distances(origin) {
		if d >= 0 {
			n++
		}
	}
	return n
}

// farthestFrom returns the reachable interior Open cell with the greatest
// distance; ties resolve to the first in row-major order
func (m *Map) farthestFrom(origin Point) Point {
	best, bestDist := origin, 0
	for i, d := range m.distances(origin) {
		p := Point{i % m.width, i / m.width}
		if d > bestDist && !m.onBorder(p) {
			best, bestDist = p, d
		}
	}
	return best
}

// Solve returns the shortest Open path from start to end, both inclusive,
// or nil when either endpoint is a Wall or the two are disconnected.
func (m *Map) Solve(start, end Point) []Point {
	if !m.IsOpen(start) || !m.IsOpen(end) {
		return nil
	}

	queue := []Point{start}
	cameFrom := make(map[Point]Point)
	visited := map[Point]bool{start: true}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			path := []Point{}
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range dirs {
			next := curr.Add(d)
			if m.IsOpen(next) && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}
