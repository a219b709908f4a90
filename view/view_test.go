package view

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/maze-crawler/camera"
	"github.com/lixenwraith/maze-crawler/maze"
	"github.com/lixenwraith/maze-crawler/scene"
	"github.com/lixenwraith/maze-crawler/vmath"
)

const corridor = `
#####
#S..#
#####
`

func corridorScene(t *testing.T) *scene.RenderableMap[int] {
	t.Helper()
	m, err := maze.Parse(corridor)
	require.NoError(t, err)
	rm, err := scene.Build(m, 0, 0)
	require.NoError(t, err)
	return rm
}

func projector(pos vmath.Vec3F) Projector {
	return New(camera.Camera{Position: pos}, 640, 480, camera.DefaultFOV, 0.1, 1024, 0.8)
}

func TestWorldFaces_CountsAndOrder(t *testing.T) {
	rm := corridorScene(t)
	faces := WorldFaces(rm)

	walls := 0
	for _, c := range rm.Walls() {
		walls += c.Faces.Count()
	}
	require.Len(t, faces, walls+len(rm.Floors()))

	for i, f := range faces {
		assert.Equal(t, i < walls, f.Wall, "face %d ordering", i)
	}

	// Floor tops sit at y=0
	for _, f := range faces[walls:] {
		assert.Equal(t, [3]float32{0, 1, 0}, f.Normal)
		for _, c := range f.Corners {
			assert.Zero(t, c[1])
		}
	}
}

func TestFace_Center(t *testing.T) {
	f := Face{Corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}}
	assert.Equal(t, [3]float32{0.5, 0.5, 0}, f.Center())
}

func TestProject_CorridorSortedFarToNear(t *testing.T) {
	rm := corridorScene(t)
	p := New(camera.AtStart(rm.Map(), camera.DefaultEyeHeight), 640, 480, camera.DefaultFOV, 0.1, 1024, 0.8)

	polys := p.Project(WorldFaces(rm), nil)
	require.NotEmpty(t, polys)

	for i, poly := range polys {
		assert.GreaterOrEqual(t, poly.N, 3)
		assert.LessOrEqual(t, poly.N, maxVerts)
		assert.GreaterOrEqual(t, poly.Shade, float32(ambient))
		assert.LessOrEqual(t, poly.Shade, float32(1))
		if i > 0 {
			assert.GreaterOrEqual(t, polys[i-1].Depth, poly.Depth, "polygon %d out of order", i)
		}
	}
}

func TestProject_ReusesDestination(t *testing.T) {
	rm := corridorScene(t)
	p := New(camera.AtStart(rm.Map(), camera.DefaultEyeHeight), 320, 240, camera.DefaultFOV, 0.1, 1024, 0.8)
	faces := WorldFaces(rm)

	first := p.Project(faces, nil)
	second := p.Project(faces, first)
	assert.Equal(t, len(first), len(second))
}

func TestProject_BackFaceCulled(t *testing.T) {
	// Front face of a cube at z=2, normal -Z; eye behind it at z=3
	f := Face{
		Corners: [4][3]float32{{0, 0, 2}, {0, 1, 2}, {1, 1, 2}, {1, 0, 2}},
		Normal:  [3]float32{0, 0, -1},
	}
	p := projector(vmath.V3F(0.5, 0.5, 1))
	assert.Len(t, p.Project([]Face{f}, nil), 1, "face ahead and facing the eye")

	p = projector(vmath.V3F(0.5, 0.5, 3))
	assert.Empty(t, p.Project([]Face{f}, nil))
}

func TestProject_BehindCameraDropped(t *testing.T) {
	// Faces the eye but lies behind it
	f := Face{
		Corners: [4][3]float32{{1, 0, -5}, {1, 1, -5}, {0, 1, -5}, {0, 0, -5}},
		Normal:  [3]float32{0, 0, 1},
	}
	p := projector(vmath.V3F(0.5, 0.5, 0))
	assert.Empty(t, p.Project([]Face{f}, nil))
}

func TestProject_StraddlingFaceClipped(t *testing.T) {
	f := Face{
		Corners: [4][3]float32{{0, 0, -1}, {0, 0, 3}, {1, 0, 3}, {1, 0, -1}},
		Normal:  [3]float32{0, 1, 0},
	}
	p := projector(vmath.V3F(0.5, 0.5, 0))
	polys := p.Project([]Face{f}, nil)
	require.Len(t, polys, 1)
	assert.Equal(t, 4, polys[0].N)

	for _, v := range polys[0].Points() {
		for _, c := range []float32{v.X, v.Y, v.U, v.V} {
			assert.False(t, math.IsNaN(float64(c)) || math.IsInf(float64(c), 0), "non-finite vertex %+v", v)
		}
	}
}

func TestClipNear(t *testing.T) {
	square := func(z0, z1, z2, z3 float32) [maxVerts]viewVertex {
		return [maxVerts]viewVertex{{z: z0}, {x: 1, z: z1}, {x: 1, y: 1, z: z2}, {y: 1, z: z3}}
	}

	tests := []struct {
		name string
		in   [maxVerts]viewVertex
		want int
	}{
		{"all in front", square(1, 1, 1, 1), 4},
		{"all behind", square(-1, -1, -1, -1), 0},
		{"half behind", square(-1, -1, 1, 1), 4},
		{"one corner behind", square(-1, 1, 1, 1), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, n := clipNear(tt.in, 4, 0.1)
			assert.Equal(t, tt.want, n)
			for _, v := range out[:n] {
				assert.GreaterOrEqual(t, v.z, float32(0.1)-1e-6)
			}
		})
	}
}
