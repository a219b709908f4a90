// Package geometry holds the unit-cube face templates shared by every cube:
// per-face corners, normals and texture coordinates, and the triangle lists
// derived from them.
//
// Coordinates are left-handed with +Y up. The unit cube spans [0,1] on each
// axis; placing it in the world is the model matrix's job.
package geometry

import "strings"

// Face identifies one side of the unit cube by its outward normal
type Face uint8

const (
	FaceFront  Face = iota // -Z
	FaceBack               // +Z
	FaceLeft               // -X
	FaceRight              // +X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceCount
)

var faceNames = [FaceCount]string{"front", "back", "left", "right", "top", "bottom"}

func (f Face) String() string {
	if f >= FaceCount {
		return "invalid"
	}
	return faceNames[f]
}

// FaceMask selects which faces a cube emits
type FaceMask uint8

const (
	NoFaces   FaceMask = 0
	SideFaces FaceMask = 1<<FaceFront | 1<<FaceBack | 1<<FaceLeft | 1<<FaceRight
	AllFaces  FaceMask = SideFaces | 1<<FaceTop | 1<<FaceBottom
)

func MaskOf(faces ...Face) FaceMask {
	var m FaceMask
	for _, f := range faces {
		m = m.With(f)
	}
	return m
}

func (m FaceMask) Has(f Face) bool { return f < FaceCount && m&(1<<f) != 0 }

func (m FaceMask) With(f Face) FaceMask {
	if f >= FaceCount {
		return m
	}
	return m | 1<<f
}

func (m FaceMask) Without(f Face) FaceMask { return m &^ (1 << f) }

func (m FaceMask) Count() int {
	n := 0
	for f := Face(0); f < FaceCount; f++ {
		if m.Has(f) {
			n++
		}
	}
	return n
}

// Faces lists the selected faces in Face order
func (m FaceMask) Faces() []Face {
	out := make([]Face, 0, m.Count())
	for f := Face(0); f < FaceCount; f++ {
		if m.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (m FaceMask) String() string {
	if m&AllFaces == 0 {
		return "none"
	}
	names := make([]string, 0, FaceCount)
	for _, f := range m.Faces() {
		names = append(names, f.String())
	}
	return strings.Join(names, "|")
}
