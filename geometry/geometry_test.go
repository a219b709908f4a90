package geometry

import "testing"

func sub(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func TestFaceQuad_WindingMatchesNormal(t *testing.T) {
	for f := Face(0); f < FaceCount; f++ {
		q := FaceQuad(f)
		n := cross(sub(q[1].Position, q[0].Position), sub(q[2].Position, q[0].Position))
		if n != FaceNormal(f) {
			t.Errorf("%v: winding normal %v, want %v", f, n, FaceNormal(f))
		}
		for i, v := range q {
			if v.Normal != FaceNormal(f) {
				t.Errorf("%v corner %d: normal %v", f, i, v.Normal)
			}
		}
	}
}

func TestFaceQuad_OnUnitCubeSurface(t *testing.T) {
	for f := Face(0); f < FaceCount; f++ {
		n := FaceNormal(f)
		for i, v := range FaceQuad(f) {
			for axis := 0; axis < 3; axis++ {
				c := v.Position[axis]
				if c != 0 && c != 1 {
					t.Fatalf("%v corner %d off the unit lattice: %v", f, i, v.Position)
				}
				// Coordinate along the normal axis is fixed to the face plane
				if n[axis] == 1 && c != 1 || n[axis] == -1 && c != 0 {
					t.Errorf("%v corner %d not on its plane: %v", f, i, v.Position)
				}
			}
		}
	}
}

func TestFaceQuad_SideUVs(t *testing.T) {
	for _, f := range SideFaces.Faces() {
		q := FaceQuad(f)
		for i, v := range q {
			// v=1 on the floor edge
			if (v.Position[1] == 0) != (v.UV[1] == 1) {
				t.Errorf("%v corner %d: uv %v at height %v", f, i, v.UV, v.Position[1])
			}
		}
	}
}

func TestFaceMask(t *testing.T) {
	m := MaskOf(FaceTop, FaceLeft)
	if !m.Has(FaceTop) || !m.Has(FaceLeft) || m.Has(FaceBottom) {
		t.Errorf("MaskOf(top, left) = %v", m)
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d", m.Count())
	}
	if got := m.Without(FaceTop); got != MaskOf(FaceLeft) {
		t.Errorf("Without(top) = %v", got)
	}
	if m.String() != "left|top" {
		t.Errorf("String() = %q", m.String())
	}
	if AllFaces.Count() != 6 || SideFaces.Count() != 4 || SideFaces.Has(FaceTop) {
		t.Error("predefined masks are wrong")
	}
	if NoFaces.String() != "none" || FaceCount.String() != "invalid" {
		t.Error("degenerate names")
	}
	if m.With(FaceCount) != m || m.Has(FaceCount) {
		t.Error("out-of-range face changed the mask")
	}
}

func TestTriangles(t *testing.T) {
	for m := NoFaces; m <= AllFaces; m++ {
		tris := Triangles(m)
		if len(tris) != m.Count()*VerticesPerFace {
			t.Fatalf("mask %v: %d vertices", m, len(tris))
		}
	}

	top := Triangles(MaskOf(FaceTop))
	q := FaceQuad(FaceTop)
	for i, idx := range QuadIndices {
		if top[i] != q[idx] {
			t.Errorf("top triangle vertex %d = %+v, want corner %d", i, top[i], idx)
		}
	}

	// Deterministic and copy-safe
	own := AppendTriangles(nil, AllFaces)
	own[0].Position[0] = 42
	if Triangles(AllFaces)[0].Position[0] == 42 {
		t.Error("AppendTriangles shares storage with the table")
	}
}
