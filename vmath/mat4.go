package vmath

import "math"

// Mat4 is a column-major 4x4 float32 matrix, m[col*4+row], matching the
// layout graphics APIs upload directly.
type Mat4 [16]float32

// Vec4 is a homogeneous coordinate
type Vec4 struct {
	X, Y, Z, W float32
}

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c
func (m Mat4) At(r, c int) float32 { return m[c*4+r] }

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row]*b[col*4+0] +
					a[1*4+row]*b[col*4+1] +
					a[2*4+row]*b[col*4+2] +
					a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Mat4Point transforms a position (w = 1)
func Mat4Point(m Mat4, p [3]float32) Vec4 {
	return Mat4MulV4(m, Vec4{p[0], p[1], p[2], 1})
}

func Mat4Translate(v Vec3F) Mat4 {
	m := Mat4Identity()
	m[12] = float32(v.X)
	m[13] = float32(v.Y)
	m[14] = float32(v.Z)
	return m
}

// LookAtLH builds a left-handed view matrix: +X right, +Y up, +Z into the screen
func LookAtLH(eye, target, up Vec3F) Mat4 {
	f := V3FNormalize(V3FSub(target, eye))
	s := V3FNormalize(V3FCross(up, f))
	u := V3FCross(f, s)

	return Mat4{
		float32(s.X), float32(u.X), float32(f.X), 0,
		float32(s.Y), float32(u.Y), float32(f.Y), 0,
		float32(s.Z), float32(u.Z), float32(f.Z), 0,
		float32(-V3FDot(s, eye)), float32(-V3FDot(u, eye)), float32(-V3FDot(f, eye)), 1,
	}
}

// PerspectiveLH builds a left-handed projection with clip depth in [-1, 1]
func PerspectiveLH(aspect, fovY, near, far float64) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	tanHalf := math.Tan(fovY / 2)
	var m Mat4
	m[0] = float32(1 / (aspect * tanHalf))
	m[5] = float32(1 / tanHalf)
	m[10] = float32((far + near) / (far - near))
	m[11] = 1
	m[14] = float32(-(2 * far * near) / (far - near))
	return m
}

// ToArray converts to nested columns, arr[col][row], the form shader
// uniform setters take
func (m Mat4) ToArray() [4][4]float32 {
	var out [4][4]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c][r] = m[c*4+r]
		}
	}
	return out
}

// Transpose swaps rows and columns
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}
