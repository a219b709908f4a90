package cube

import (
	"github.com/lixenwraith/maze-crawler/geometry"
	"github.com/lixenwraith/maze-crawler/vmath"
)

// Cube is a unit cube placed in the world. The cube spans
// [Position, Position+1] on every axis; only faces in Faces are emitted.
type Cube struct {
	Position vmath.Vec3F
	Faces    geometry.FaceMask
}

func New(pos vmath.Vec3F, faces geometry.FaceMask) Cube {
	return Cube{Position: pos, Faces: faces & geometry.AllFaces}
}

// Vertices returns a fresh model-space triangle list for the selected faces
func (c Cube) Vertices() []geometry.Vertex {
	return c.AppendVertices(make([]geometry.Vertex, 0, c.VertexCount()))
}

func (c Cube) AppendVertices(dst []geometry.Vertex) []geometry.Vertex {
	return geometry.AppendTriangles(dst, c.Faces)
}

func (c Cube) VertexCount() int {
	return c.Faces.Count() * geometry.VerticesPerFace
}

// Model translates the unit cube to Position; cubes never rotate or scale
func (c Cube) Model() vmath.Mat4 {
	return vmath.Mat4Translate(c.Position)
}

// Quads returns model-space quads for the selected faces, in Face order
func (c Cube) Quads() []geometry.Quad {
	faces := c.Faces.Faces()
	out := make([]geometry.Quad, len(faces))
	for i, f := range faces {
		out[i] = geometry.FaceQuad(f)
	}
	return out
}

// Bounds returns the world-space min and max corners
func (c Cube) Bounds() (lo, hi vmath.Vec3F) {
	return c.Position, vmath.V3FAdd(c.Position, vmath.V3F(1, 1, 1))
}

// Contains reports whether world point p lies inside the cube volume
func (c Cube) Contains(p vmath.Vec3F) bool {
	lo, hi := c.Bounds()
	return p.X >= lo.X && p.X < hi.X &&
		p.Y >= lo.Y && p.Y < hi.Y &&
		p.Z >= lo.Z && p.Z < hi.Z
}
