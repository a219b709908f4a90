package geometry

// Vertex is one corner as uploaded to a vertex buffer
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Quad is a face's four corners, ordered so (c1-c0)×(c2-c0) points along
// the outward normal. Side faces start at the bottom edge.
type Quad [4]Vertex

// VerticesPerFace is the triangle-list size of one face
const VerticesPerFace = 6

var faceNormals = [FaceCount][3]float32{
	FaceFront:  {0, 0, -1},
	FaceBack:   {0, 0, 1},
	FaceLeft:   {-1, 0, 0},
	FaceRight:  {1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

var faceCorners = [FaceCount][4][3]float32{
	FaceFront:  {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
	FaceBack:   {{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}},
	FaceLeft:   {{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}},
	FaceRight:  {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	FaceTop:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
}

// Image-style UVs: v grows downward, so side faces put v=1 on the floor edge
var (
	sideUV = [4][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 1}}
	capUV  = [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
)

// Two triangles per quad
var quadOrder = [VerticesPerFace]int{0, 1, 2, 0, 2, 3}

// QuadIndices indexes a Quad's corners as a triangle list
var QuadIndices = [VerticesPerFace]uint16{0, 1, 2, 0, 2, 3}

// FaceNormal returns the outward unit normal of f
func FaceNormal(f Face) [3]float32 { return faceNormals[f] }

// FaceQuad returns the unit-cube corners of f with normal and UVs
func FaceQuad(f Face) Quad {
	uv := sideUV
	if f == FaceTop || f == FaceBottom {
		uv = capUV
	}

	var q Quad
	for i := range q {
		q[i] = Vertex{
			Position: faceCorners[f][i],
			Normal:   faceNormals[f],
			UV:       uv[i],
		}
	}
	return q
}

// AppendFace appends the two triangles of f
func AppendFace(dst []Vertex, f Face) []Vertex {
	q := FaceQuad(f)
	for _, i := range quadOrder {
		dst = append(dst, q[i])
	}
	return dst
}

// Precomputed triangle lists for every mask; 6 faces give 64 masks
var triangleTable [AllFaces + 1][]Vertex

func init() {
	for m := NoFaces; m <= AllFaces; m++ {
		out := make([]Vertex, 0, m.Count()*VerticesPerFace)
		for _, f := range m.Faces() {
			out = AppendFace(out, f)
		}
		triangleTable[m] = out
	}
}

// Triangles returns the shared triangle list for mask. The slice is
// read-only; use AppendTriangles for a private copy.
func Triangles(mask FaceMask) []Vertex {
	return triangleTable[mask&AllFaces]
}

func AppendTriangles(dst []Vertex, mask FaceMask) []Vertex {
	return append(dst, Triangles(mask)...)
}
