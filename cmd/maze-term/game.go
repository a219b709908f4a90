package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/maze-crawler/audio"
	"github.com/lixenwraith/maze-crawler/camera"
	"github.com/lixenwraith/maze-crawler/maze"
	"github.com/lixenwraith/maze-crawler/scene"
	"github.com/lixenwraith/maze-crawler/vmath"
)

const (
	wallRune  = '█'
	floorRune = ' '

	// Terminal cells are about twice as tall as wide
	cellCols = 2
	hudRows  = 1

	frameMs    = 50
	sightRange = 32.0
)

// Key presses are discrete, so each one moves a quarter cell
var stepSpeeds = camera.Speeds{Move: 0.25, Turn: math.Pi / 8, Lift: 0}

// Clockwise from +X with screen Y growing downward
var headings = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	floorStyle  = tcell.StyleDefault
	pathStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	endStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	bumpStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	aheadStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Game is the top-down walker: the camera moves through the same scene
// the 3D renderer uses, drawn as a scrolling map
type Game struct {
	screen        tcell.Screen
	width, height int

	rm      *scene.RenderableMap[rune]
	cam     camera.Camera
	sounds  *audio.SoundManager
	collide bool

	onPath   map[maze.Point]bool
	showPath bool
	reached  bool
	bumpTime time.Time
	moves    int
}

func newGame(screen tcell.Screen, rm *scene.RenderableMap[rune], cam camera.Camera, sounds *audio.SoundManager, collide bool) *Game {
	onPath := make(map[maze.Point]bool)
	for _, p := range rm.Map().SolutionPath() {
		onPath[p] = true
	}

	g := &Game{
		screen:  screen,
		rm:      rm,
		cam:     cam,
		sounds:  sounds,
		collide: collide,
		onPath:  onPath,
	}
	g.width, g.height = screen.Size()
	return g
}

// headingRune picks the arrow closest to the camera's horizontal view direction
func headingRune(yaw float64) rune {
	x, z := camera.Camera{Rotation: vmath.V3F(0, yaw, 0)}.Heading()
	idx := int(math.Round(math.Atan2(z, x) / (math.Pi / 4)))
	return headings[((idx%8)+8)%8]
}

// gridAt maps a screen cell to the maze cell shown there, keeping center
// in the middle of a w×h viewport
func gridAt(sx, sy, w, h int, center maze.Point) maze.Point {
	return maze.Point{
		X: center.X + floorDiv(sx-w/2, cellCols),
		Y: center.Y + sy - h/2,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (g *Game) step(in camera.Input) {
	before := g.cam.Cell()
	if g.collide {
		if g.cam.UpdateBounded(in, stepSpeeds, g.rm) {
			g.bumpTime = time.Now()
			g.sounds.PlayBump()
		}
	} else {
		g.cam.Update(in, stepSpeeds)
	}
	if g.cam.Cell() != before {
		g.moves++
	}

	if !g.reached && g.cam.Cell() == g.rm.Map().End() {
		g.reached = true
		g.sounds.PlayGoal()
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.step(camera.Input{Forward: true})
		case tcell.KeyDown:
			g.step(camera.Input{Backward: true})
		case tcell.KeyLeft:
			g.step(camera.Input{TurnLeft: true})
		case tcell.KeyRight:
			g.step(camera.Input{TurnRight: true})
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'w':
				g.step(camera.Input{Forward: true})
			case 's':
				g.step(camera.Input{Backward: true})
			case 'a':
				g.step(camera.Input{Left: true})
			case 'd':
				g.step(camera.Input{Right: true})
			case 'p':
				g.showPath = !g.showPath
			}
		}

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.screen.Sync()

	case nil:
		// Screen finalized
		return false
	}

	return true
}

func (g *Game) draw() {
	g.screen.Clear()

	m := g.rm.Map()
	center := g.cam.Cell()
	viewH := g.height - hudRows

	hx, hz := g.cam.Heading()
	ahead, dist, seen := g.rm.CastRay(g.cam.Position.X, g.cam.Position.Z, hx, hz, sightRange)

	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < g.width; sx++ {
			p := gridAt(sx, sy, g.width, viewH, center)
			if !m.InBounds(p) {
				continue
			}

			r, style := floorRune, floorStyle
			switch {
			case p == center:
				r, style = headingRune(g.cam.Rotation.Y), playerStyle
				if time.Since(g.bumpTime) < 200*time.Millisecond {
					style = bumpStyle
				}
			case p == m.End():
				r, style = 'E', endStyle
			case seen && p == ahead:
				r, style = g.rm.WallTexture(), aheadStyle
			case m.At(p) == maze.Wall:
				r, style = g.rm.WallTexture(), wallStyle
			case g.showPath && g.onPath[p]:
				r, style = '•', pathStyle
			default:
				r = g.rm.FloorTexture()
			}
			g.screen.SetContent(sx, sy, r, nil, style)
		}
	}

	status := fmt.Sprintf(" cell %d,%d  end %d,%d  moves %d  wall %.1f  [wasd/arrows move  p path  q quit]",
		center.X, center.Y, m.End().X, m.End().Y, g.moves, dist)
	if g.reached {
		status = " END REACHED!" + status
	}
	for i, r := range []rune(status) {
		if i >= g.width {
			break
		}
		g.screen.SetContent(i, g.height-1, r, nil, hudStyle)
	}

	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(frameMs * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			eventChan <- ev
			if ev == nil {
				return
			}
		}
	}()

	g.draw()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
			g.draw()

		case <-ticker.C:
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	g.sounds.Cleanup()
	g.screen.Fini()
}
