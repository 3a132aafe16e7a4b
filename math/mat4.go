package math

import "math"

// Mat4 is a 4x4 matrix with row-major semantics: translation lives in the
// last column, and points transform as rows-dot-column with an implicit w=1.
type Mat4 [4][4]float64

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func Mat4Zero() Mat4 {
	return Mat4{}
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[0][3] = translation.X
	m[1][3] = translation.Y
	m[2][3] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	m := Mat4Identity()
	m[1][1] = c
	m[1][2] = -s
	m[2][1] = s
	m[2][2] = c
	return m
}

func Mat4RotationY(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	m := Mat4Identity()
	m[0][0] = c
	m[0][2] = s
	m[2][0] = -s
	m[2][2] = c
	return m
}

func Mat4RotationZ(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	m := Mat4Identity()
	m[0][0] = c
	m[0][1] = -s
	m[1][0] = s
	m[1][1] = c
	return m
}

// Mat4Perspective builds a right-handed perspective projection. The last row
// is [0 0 -1 0], so the homogeneous divide in MulVec3 implements w = -z.
func Mat4Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovY/2.0)
	rangeInv := 1.0 / (near - far)

	m := Mat4Zero()
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) * rangeInv
	m[2][3] = 2 * far * near * rangeInv
	m[3][2] = -1
	return m
}

func (m Mat4) Mul(other Mat4) Mat4 {
	result := Mat4Zero()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// MulVec3 transforms a point using homogeneous coordinates (implicit w=1)
// and performs the perspective divide. If the resulting w is exactly zero
// the undivided point is returned so no NaN or Inf can escape.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	x := v.X*m[0][0] + v.Y*m[0][1] + v.Z*m[0][2] + m[0][3]
	y := v.X*m[1][0] + v.Y*m[1][1] + v.Z*m[1][2] + m[1][3]
	z := v.X*m[2][0] + v.Y*m[2][1] + v.Z*m[2][2] + m[2][3]
	w := v.X*m[3][0] + v.Y*m[3][1] + v.Z*m[3][2] + m[3][3]

	if w == 0 {
		return Vec3{X: x, Y: y, Z: z}
	}
	return Vec3{X: x / w, Y: y / w, Z: z / w}
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// Mat4TRS composes a local transform as T * Rz * Ry * Rx * S, i.e. the
// Euler angles are applied X first, then Y, then Z.
func Mat4TRS(translation, rotation, scale Vec3) Mat4 {
	return Mat4Translation(translation).
		Mul(Mat4RotationZ(rotation.Z)).
		Mul(Mat4RotationY(rotation.Y)).
		Mul(Mat4RotationX(rotation.X)).
		Mul(Mat4Scale(scale))
}
