// Package view turns a renderable maze into screen-space polygons for a
// camera. It does back-face culling, near-plane clipping and painter's
// ordering on the CPU so a 2D triangle API can draw the scene.
package view

import (
	"math"
	"sort"

	"github.com/lixenwraith/maze-crawler/camera"
	"github.com/lixenwraith/maze-crawler/cube"
	"github.com/lixenwraith/maze-crawler/scene"
	"github.com/lixenwraith/maze-crawler/vmath"
)

// A quad clipped by one plane has at most five corners
const maxVerts = 6

const ambient = 0.3

var lightDir = vmath.V3FNormalize(vmath.V3F(-0.3, 0.8, 0.5))

// Face is one world-space cube face
type Face struct {
	Corners [4][3]float32
	UV      [4][2]float32
	Normal  [3]float32
	Wall    bool
}

// Center is the average of the four corners
func (f *Face) Center() [3]float32 {
	var c [3]float32
	for _, p := range f.Corners {
		c[0] += p[0] / 4
		c[1] += p[1] / 4
		c[2] += p[2] / 4
	}
	return c
}

// WorldFaces flattens every emitted face of rm into world space, walls first
func WorldFaces[T any](rm *scene.RenderableMap[T]) []Face {
	walls, floors := rm.Walls(), rm.Floors()
	n := 0
	for _, c := range walls {
		n += c.Faces.Count()
	}
	for _, c := range floors {
		n += c.Faces.Count()
	}

	out := make([]Face, 0, n)
	out = appendFaces(out, walls, true)
	return appendFaces(out, floors, false)
}

func appendFaces(dst []Face, cubes []cube.Cube, wall bool) []Face {
	for _, c := range cubes {
		off := vmath.V3FArray(c.Position)
		for _, q := range c.Quads() {
			f := Face{Normal: q[0].Normal, Wall: wall}
			for i, v := range q {
				f.Corners[i] = [3]float32{
					v.Position[0] + off[0],
					v.Position[1] + off[1],
					v.Position[2] + off[2],
				}
				f.UV[i] = v.UV
			}
			dst = append(dst, f)
		}
	}
	return dst
}

// Vertex is a screen-space corner in pixels with its texture coordinate
type Vertex struct {
	X, Y float32
	U, V float32
}

// Polygon is a visible, clipped, convex face ready to fan-triangulate
type Polygon struct {
	Verts [maxVerts]Vertex
	N     int
	Depth float32 // squared eye distance to the face center
	Shade float32 // 0..1 light factor
	Wall  bool
}

// Points returns the used corners
func (p *Polygon) Points() []Vertex { return p.Verts[:p.N] }

// Projector holds one frame's camera state
type Projector struct {
	Eye           vmath.Vec3F
	View          vmath.Mat4
	Proj          vmath.Mat4
	Near, Far     float32
	Width, Height float32
	Intensity     float32
}

// New builds a projector for cam on a width×height target. fovY is in radians.
func New(cam camera.Camera, width, height int, fovY, near, far, intensity float64) Projector {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return Projector{
		Eye:       cam.Position,
		View:      cam.View(),
		Proj:      cam.Projection(aspect, fovY, near, far),
		Near:      float32(near),
		Far:       float32(far),
		Width:     float32(width),
		Height:    float32(height),
		Intensity: float32(intensity),
	}
}

type viewVertex struct {
	x, y, z float32
	u, v    float32
}

// Project appends the visible faces to dst[:0], sorted far to near
func (p *Projector) Project(faces []Face, dst []Polygon) []Polygon {
	dst = dst[:0]
	eye := vmath.V3FArray(p.Eye)

	for i := range faces {
		f := &faces[i]
		if !facing(f, eye) {
			continue
		}

		var in [maxVerts]viewVertex
		beyond := 0
		for k, c := range f.Corners {
			v := vmath.Mat4Point(p.View, c)
			in[k] = viewVertex{v.X, v.Y, v.Z, f.UV[k][0], f.UV[k][1]}
			if v.Z > p.Far {
				beyond++
			}
		}
		if beyond == 4 {
			continue
		}

		clipped, n := clipNear(in, 4, p.Near)
		if n < 3 {
			continue
		}

		poly := Polygon{N: n, Wall: f.Wall, Shade: p.shade(f.Normal)}
		minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
		maxX, maxY := -minX, -minY
		for k := 0; k < n; k++ {
			vv := clipped[k]
			c := vmath.Mat4MulV4(p.Proj, vmath.Vec4{X: vv.x, Y: vv.y, Z: vv.z, W: 1})
			sx := (c.X/c.W + 1) * 0.5 * p.Width
			sy := (1 - c.Y/c.W) * 0.5 * p.Height
			poly.Verts[k] = Vertex{X: sx, Y: sy, U: vv.u, V: vv.v}
			minX, maxX = min(minX, sx), max(maxX, sx)
			minY, maxY = min(minY, sy), max(maxY, sy)
		}
		if maxX < 0 || maxY < 0 || minX > p.Width || minY > p.Height {
			continue
		}

		center := f.Center()
		dx, dy, dz := center[0]-eye[0], center[1]-eye[1], center[2]-eye[2]
		poly.Depth = dx*dx + dy*dy + dz*dz
		dst = append(dst, poly)
	}

	sort.SliceStable(dst, func(a, b int) bool { return dst[a].Depth > dst[b].Depth })
	return dst
}

// facing reports whether the eye is on the outward side of f
func facing(f *Face, eye [3]float32) bool {
	c := f.Corners[0]
	n := f.Normal
	return n[0]*(eye[0]-c[0])+n[1]*(eye[1]-c[1])+n[2]*(eye[2]-c[2]) > 0
}

// clipNear clips a convex view-space polygon to z >= near
func clipNear(in [maxVerts]viewVertex, n int, near float32) ([maxVerts]viewVertex, int) {
	var out [maxVerts]viewVertex
	m := 0
	for i := 0; i < n; i++ {
		a, b := in[i], in[(i+1)%n]
		aIn, bIn := a.z >= near, b.z >= near
		if aIn {
			out[m] = a
			m++
		}
		if aIn != bIn && m < maxVerts {
			t := (near - a.z) / (b.z - a.z)
			out[m] = viewVertex{
				x: a.x + (b.x-a.x)*t,
				y: a.y + (b.y-a.y)*t,
				z: near,
				u: a.u + (b.u-a.u)*t,
				v: a.v + (b.v-a.v)*t,
			}
			m++
		}
	}
	return out, m
}

// shade is ambient plus Lambert against a fixed sky light, capped at 1
func (p *Projector) shade(n [3]float32) float32 {
	l := vmath.V3FArray(lightDir)
	lambert := max(0, n[0]*l[0]+n[1]*l[1]+n[2]*l[2])
	return min(1, ambient+p.Intensity*lambert)
}
