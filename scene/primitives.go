package scene

import (
	stdmath "math"

	"softrender/core"
	"softrender/math"
)

// CreateCube builds an axis-aligned cube of the given edge length centered
// at the origin, with averaged vertex normals.
func CreateCube(size float64) *Mesh {
	mesh := NewMeshWithCapacity("Cube", 8, 12)
	half := size / 2

	corners := [8]struct {
		pos math.Vec3
		uv  math.Vec2
	}{
		// Front face
		{math.NewVec3(-half, -half, half), math.NewVec2(0, 0)},
		{math.NewVec3(half, -half, half), math.NewVec2(1, 0)},
		{math.NewVec3(half, half, half), math.NewVec2(1, 1)},
		{math.NewVec3(-half, half, half), math.NewVec2(0, 1)},
		// Back face
		{math.NewVec3(-half, -half, -half), math.NewVec2(1, 0)},
		{math.NewVec3(half, -half, -half), math.NewVec2(0, 0)},
		{math.NewVec3(half, half, -half), math.NewVec2(0, 1)},
		{math.NewVec3(-half, half, -half), math.NewVec2(1, 1)},
	}

	for _, c := range corners {
		// The corner direction doubles as a provisional normal until the
		// averaging pass below replaces it.
		mesh.AddVertex(core.NewVertex(c.pos, c.pos, c.uv))
	}

	faces := [12][3]int{
		{0, 1, 2}, {0, 2, 3}, // Front
		{5, 4, 7}, {5, 7, 6}, // Back
		{4, 0, 3}, {4, 3, 7}, // Left
		{1, 5, 6}, {1, 6, 2}, // Right
		{3, 2, 6}, {3, 6, 7}, // Top
		{4, 5, 1}, {4, 1, 0}, // Bottom
	}
	for _, f := range faces {
		// Indices are fixed and in range, so AddFace cannot fail here.
		_ = mesh.AddFace(f[0], f[1], f[2])
	}

	mesh.GenerateVertexNormals()
	return mesh
}

// CreateQuad builds a unit quad in the XY plane facing +Z.
func CreateQuad(size float64) *Mesh {
	mesh := NewMeshWithCapacity("Quad", 4, 2)
	half := size / 2

	normal := math.NewVec3(0, 0, 1)
	mesh.AddVertex(core.NewVertex(math.NewVec3(-half, -half, 0), normal, math.NewVec2(0, 0)))
	mesh.AddVertex(core.NewVertex(math.NewVec3(half, -half, 0), normal, math.NewVec2(1, 0)))
	mesh.AddVertex(core.NewVertex(math.NewVec3(half, half, 0), normal, math.NewVec2(1, 1)))
	mesh.AddVertex(core.NewVertex(math.NewVec3(-half, half, 0), normal, math.NewVec2(0, 1)))

	_ = mesh.AddFace(0, 1, 2)
	_ = mesh.AddFace(0, 2, 3)
	return mesh
}

// CreateSphere builds a UV sphere. Segments and rings are clamped to the
// minimum tessellation that still produces a closed surface.
func CreateSphere(radius float64, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	mesh := NewMeshWithCapacity("Sphere", (rings+1)*(segments+1), rings*segments*2)

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := stdmath.Sin(phi)
		cosPhi := stdmath.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * stdmath.Pi / float64(segments)
			normal := math.NewVec3(sinPhi*stdmath.Cos(theta), cosPhi, sinPhi*stdmath.Sin(theta))
			uv := math.NewVec2(float64(seg)/float64(segments), float64(ring)/float64(rings))
			mesh.AddVertex(core.NewVertex(normal.Mul(radius), normal, uv))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := ring*(segments+1) + seg
			next := current + segments + 1

			_ = mesh.AddFace(current, next, current+1)
			_ = mesh.AddFace(current+1, next, next+1)
		}
	}

	return mesh
}
