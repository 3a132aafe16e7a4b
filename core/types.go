package core

import (
	"softrender/math"
)

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	ColorWhite  = Color{255, 255, 255, 255}
	ColorBlack  = Color{0, 0, 0, 255}
	ColorRed    = Color{255, 0, 0, 255}
	ColorGreen  = Color{0, 255, 0, 255}
	ColorBlue   = Color{0, 0, 255, 255}
	ColorYellow = Color{255, 255, 0, 255}
)

func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Pack encodes the color as 0xAABBGGRR, i.e. RGBA byte order in memory on
// little-endian targets.
func (c Color) Pack() uint32 {
	return uint32(c.A)<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

// Vertex is a single mesh vertex. Normal is kept unit length.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// NewVertex normalizes the supplied normal so stored normals are always
// unit length.
func NewVertex(position, normal math.Vec3, uv math.Vec2) Vertex {
	return Vertex{
		Position: position,
		Normal:   normal.Normalize(),
		UV:       uv,
	}
}

// Transformed returns a copy with position and normal transformed by the
// matrix. The normal is re-normalized after the transform.
func (v Vertex) Transformed(m math.Mat4) Vertex {
	return Vertex{
		Position: m.MulVec3(v.Position),
		Normal:   m.MulVec3(v.Normal).Normalize(),
		UV:       v.UV,
	}
}

// Transform holds a node's local position, Euler rotation (radians) and
// scale, plus the cached local matrix. Setters only mark the cache dirty;
// recomputation happens in the scene's per-frame update pass.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3

	localMatrix math.Mat4
	dirty       bool
}

func NewTransform() Transform {
	return Transform{
		Position:    math.Vec3Zero,
		Rotation:    math.Vec3Zero,
		Scale:       math.Vec3One,
		localMatrix: math.Mat4Identity(),
		dirty:       true,
	}
}

func (t *Transform) SetPosition(position math.Vec3) {
	t.Position = position
	t.dirty = true
}

func (t *Transform) SetRotation(rotation math.Vec3) {
	t.Rotation = rotation
	t.dirty = true
}

func (t *Transform) SetScale(scale math.Vec3) {
	t.Scale = scale
	t.dirty = true
}

// Dirty reports whether the cached local matrix is stale.
func (t *Transform) Dirty() bool {
	return t.dirty
}

// LocalMatrix recomputes the cached matrix if dirty and returns it.
// Composition order is T * Rz * Ry * Rx * S.
func (t *Transform) LocalMatrix() math.Mat4 {
	if t.dirty {
		t.localMatrix = math.Mat4TRS(t.Position, t.Rotation, t.Scale)
		t.dirty = false
	}
	return t.localMatrix
}
