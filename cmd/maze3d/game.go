package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/maze-crawler/audio"
	"github.com/lixenwraith/maze-crawler/camera"
	"github.com/lixenwraith/maze-crawler/config"
	"github.com/lixenwraith/maze-crawler/scene"
	"github.com/lixenwraith/maze-crawler/view"
)

var (
	clearColor = color.RGBA{R: 0x33, G: 0x4c, B: 0xcc, A: 0xff}
	wireColor  = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// Game drives one maze session for ebiten
type Game struct {
	cfg    config.Config
	rm     *scene.RenderableMap[*ebiten.Image]
	faces  []view.Face
	cam    camera.Camera
	speeds camera.Speeds
	sounds *audio.SoundManager

	polys     []view.Polygon
	batch     triangleBatch
	wireframe bool
	reached   bool
}

func newGame(cfg config.Config, rm *scene.RenderableMap[*ebiten.Image], cam camera.Camera, sounds *audio.SoundManager) *Game {
	return &Game{
		cfg:   cfg,
		rm:    rm,
		faces: view.WorldFaces(rm),
		cam:   cam,
		speeds: camera.Speeds{
			Move: cfg.Controls.MoveSpeed,
			Turn: cfg.Controls.TurnSpeed,
			Lift: cfg.Controls.MoveSpeed,
		},
		sounds:    sounds,
		wireframe: cfg.Window.Wireframe,
	}
}

func readInput() camera.Input {
	return camera.Input{
		Forward:   ebiten.IsKeyPressed(ebiten.KeyW),
		Backward:  ebiten.IsKeyPressed(ebiten.KeyS),
		Left:      ebiten.IsKeyPressed(ebiten.KeyA),
		Right:     ebiten.IsKeyPressed(ebiten.KeyD),
		Up:        ebiten.IsKeyPressed(ebiten.KeyE),
		Down:      ebiten.IsKeyPressed(ebiten.KeyQ),
		TurnLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		TurnRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		PitchUp:   ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		PitchDown: ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.wireframe = !g.wireframe
	}

	in := readInput()
	if g.cfg.Controls.Collide {
		if g.cam.UpdateBounded(in, g.speeds, g.rm) {
			g.sounds.PlayBump()
		}
	} else {
		g.cam.Update(in, g.speeds)
	}

	if !g.reached && g.cam.Cell() == g.rm.Map().End() {
		g.reached = true
		log.Printf("end %v reached", g.rm.Map().End())
		g.sounds.PlayGoal()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	win := g.cfg.Window
	p := view.New(g.cam, w, h, win.FOV*math.Pi/180, win.Near, win.Far, win.Intensity)
	g.polys = p.Project(g.faces, g.polys)

	if g.wireframe {
		for i := range g.polys {
			strokePolygon(screen, g.polys[i].Points())
		}
	} else {
		g.batch.reset(screen)
		for i := range g.polys {
			poly := &g.polys[i]
			tex := g.rm.FloorTexture()
			if poly.Wall {
				tex = g.rm.WallTexture()
			}
			g.batch.add(poly, tex)
		}
		g.batch.flush()
	}

	cell := g.cam.Cell()
	hx, hz := g.cam.Heading()
	_, ahead, _ := g.rm.CastRay(g.cam.Position.X, g.cam.Position.Z, hx, hz, win.Far)
	status := ""
	if g.reached {
		status = "  END REACHED"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"cell %d,%d  end %d,%d  wall %.2f  faces %d/%d  fps %.0f%s\nWASD move  Q/E down/up  arrows look  K wireframe  Esc quit",
		cell.X, cell.Y, g.rm.Map().End().X, g.rm.Map().End().Y, ahead,
		len(g.polys), len(g.faces), ebiten.ActualFPS(), status))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func strokePolygon(dst *ebiten.Image, pts []view.Vertex) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, a.X, a.Y, b.X, b.Y, 1, wireColor, false)
	}
}

// triangleBatch merges consecutive polygons sharing a texture into one
// DrawTriangles call
type triangleBatch struct {
	dst      *ebiten.Image
	tex      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// Keep well under the 16-bit index limit
const maxBatchVertices = 1 << 15

func (b *triangleBatch) reset(dst *ebiten.Image) {
	b.dst = dst
	b.tex = nil
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func (b *triangleBatch) add(poly *view.Polygon, tex *ebiten.Image) {
	if tex != b.tex || len(b.vertices)+poly.N > maxBatchVertices {
		b.flush()
		b.tex = tex
	}

	tw, th := float32(tex.Bounds().Dx()), float32(tex.Bounds().Dy())
	base := uint16(len(b.vertices))
	for _, v := range poly.Points() {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   v.U * tw,
			SrcY:   v.V * th,
			ColorR: poly.Shade,
			ColorG: poly.Shade,
			ColorB: poly.Shade,
			ColorA: 1,
		})
	}
	// Fan triangulation of a convex polygon
	for k := 2; k < poly.N; k++ {
		b.indices = append(b.indices, base, base+uint16(k-1), base+uint16(k))
	}
}

func (b *triangleBatch) flush() {
	if len(b.indices) > 0 && b.tex != nil {
		op := &ebiten.DrawTrianglesOptions{Address: ebiten.AddressRepeat, Filter: ebiten.FilterLinear}
		b.dst.DrawTriangles(b.vertices, b.indices, b.tex, op)
	}
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}
