package scene

import (
	"fmt"

	"softrender/core"
	"softrender/math"
)

// Face is a mesh triangle: three indices into the owning mesh's vertex
// buffer plus a cached face normal.
type Face struct {
	Vertices [3]int
	Normal   math.Vec3
}

// calculateNormal recomputes the cached normal from the untransformed
// vertex positions.
func (f *Face) calculateNormal(vertices []core.Vertex) {
	v0 := vertices[f.Vertices[0]].Position
	v1 := vertices[f.Vertices[1]].Position
	v2 := vertices[f.Vertices[2]].Position

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	f.Normal = edge1.Cross(edge2).Normalize()
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// Mesh owns a vertex buffer and a face list, plus one model transform that
// is applied at query time and never baked into the stored vertices.
type Mesh struct {
	Name      string
	Vertices  []core.Vertex
	Faces     []Face
	Transform math.Mat4
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]core.Vertex, 0),
		Faces:     make([]Face, 0),
		Transform: math.Mat4Identity(),
	}
}

// NewMeshWithCapacity pre-sizes the vertex and face buffers.
func NewMeshWithCapacity(name string, vertexCount, faceCount int) *Mesh {
	return &Mesh{
		Name:      name,
		Vertices:  make([]core.Vertex, 0, vertexCount),
		Faces:     make([]Face, 0, faceCount),
		Transform: math.Mat4Identity(),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v core.Vertex) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a triangle and caches its face normal. Indices outside
// the vertex buffer are rejected.
func (m *Mesh) AddFace(i0, i1, i2 int) error {
	for _, idx := range [3]int{i0, i1, i2} {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("mesh %q: invalid geometry: face index %d out of range [0,%d)",
				m.Name, idx, len(m.Vertices))
		}
	}

	face := Face{Vertices: [3]int{i0, i1, i2}}
	face.calculateNormal(m.Vertices)
	m.Faces = append(m.Faces, face)
	return nil
}

// ApplyTransform composes matrix onto the mesh's model transform.
func (m *Mesh) ApplyTransform(matrix math.Mat4) {
	m.Transform = matrix.Mul(m.Transform)
}

// TransformedVertices applies the model transform to every vertex and
// returns a fresh slice; the stored buffer is left untouched.
func (m *Mesh) TransformedVertices() []core.Vertex {
	out := make([]core.Vertex, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Transformed(m.Transform)
	}
	return out
}

// BoundingBox returns the axis-aligned bounds of the transformed vertices.
// An empty mesh yields a degenerate box at the origin.
func (m *Mesh) BoundingBox() AABB {
	if len(m.Vertices) == 0 {
		return AABB{}
	}

	transformed := m.TransformedVertices()
	box := AABB{Min: transformed[0].Position, Max: transformed[0].Position}
	for _, v := range transformed[1:] {
		p := v.Position
		if p.X < box.Min.X {
			box.Min.X = p.X
		}
		if p.Y < box.Min.Y {
			box.Min.Y = p.Y
		}
		if p.Z < box.Min.Z {
			box.Min.Z = p.Z
		}
		if p.X > box.Max.X {
			box.Max.X = p.X
		}
		if p.Y > box.Max.Y {
			box.Max.Y = p.Y
		}
		if p.Z > box.Max.Z {
			box.Max.Z = p.Z
		}
	}
	return box
}

// GenerateVertexNormals recomputes every vertex normal as the normalized
// average of the adjacent face normals. Meant to run once after the faces
// are built; it is not maintained incrementally.
func (m *Mesh) GenerateVertexNormals() {
	sums := make([]math.Vec3, len(m.Vertices))
	counts := make([]int, len(m.Vertices))

	for _, face := range m.Faces {
		for _, idx := range face.Vertices {
			sums[idx] = sums[idx].Add(face.Normal)
			counts[idx]++
		}
	}

	for i := range m.Vertices {
		if counts[i] == 0 {
			continue
		}
		m.Vertices[i].Normal = sums[i].Div(float64(counts[i])).Normalize()
	}
}
