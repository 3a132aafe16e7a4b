package math

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func TestVec2Operations(t *testing.T) {
	v1 := NewVec2(3, 4)
	v2 := NewVec2(1, 2)

	if v1.Length() != 5 {
		t.Errorf("Length: expected 5, got %v", v1.Length())
	}
	if v1.Dot(v2) != 11 {
		t.Errorf("Dot: expected 11, got %v", v1.Dot(v2))
	}

	normalized := v1.Normalize()
	if math.Abs(normalized.Length()-1) > tolerance {
		t.Errorf("Normalize: expected length 1, got %v", normalized.Length())
	}
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	// Scalar multiplication and division
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}
	result = expected.Div(2)
	if result != v1 {
		t.Errorf("Div: expected %v, got %v", v1, result)
	}

	// Dot product
	if dot := v1.Dot(v2); dot != 32 {
		t.Errorf("Dot: expected 32, got %v", dot)
	}

	// Cross product (right-handed: X x Y = Z)
	cross := Vec3Right.Cross(Vec3Up)
	if cross != NewVec3(0, 0, 1) {
		t.Errorf("Cross: expected (0,0,1), got %v", cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	if normalized != Vec3Right {
		t.Errorf("Normalize: expected %v, got %v", Vec3Right, normalized)
	}
	if math.Abs(normalized.Length()-1) > tolerance {
		t.Errorf("Normalize: expected length 1, got %v", normalized.Length())
	}

	v = NewVec3(1, -2, 2.5)
	if math.Abs(v.Normalize().Length()-1) > tolerance {
		t.Errorf("Normalize: expected length 1, got %v", v.Normalize().Length())
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	// A zero-length vector must come back unchanged, never NaN.
	normalized := Vec3Zero.Normalize()
	if normalized != Vec3Zero {
		t.Errorf("Normalize zero: expected %v, got %v", Vec3Zero, normalized)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float64(0)
			if i == j {
				expected = 1
			}
			if m[i][j] != expected {
				t.Errorf("Identity: expected [%d][%d] = %v, got %v", i, j, expected, m[i][j])
			}
		}
	}

	p := NewVec3(1, 2, 3)
	if got := m.MulVec3(p); got != p {
		t.Errorf("Identity transform: expected %v, got %v", p, got)
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	// Transforming the origin yields exactly the translation.
	result := m.MulVec3(Vec3Zero)
	if result != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result)
	}

	result = m.MulVec3(NewVec3(1, 1, 1))
	if result != NewVec3(2, 3, 4) {
		t.Errorf("Translation: expected (2,3,4), got %v", result)
	}
}

func TestMat4Scale(t *testing.T) {
	m := Mat4Scale(NewVec3(2, 3, 4))
	result := m.MulVec3(NewVec3(1, 1, 1))
	if result != NewVec3(2, 3, 4) {
		t.Errorf("Scale: expected (2,3,4), got %v", result)
	}
}

func TestMat4RotationY(t *testing.T) {
	m := Mat4RotationY(math.Pi / 2)
	rotated := m.MulVec3(Vec3Right)

	if math.Abs(rotated.X) > tolerance ||
		math.Abs(rotated.Y) > tolerance ||
		math.Abs(rotated.Z+1) > tolerance {
		t.Errorf("RotationY: expected approximately (0,0,-1), got %v", rotated)
	}
}

func TestMat4RotationX(t *testing.T) {
	m := Mat4RotationX(math.Pi / 2)
	rotated := m.MulVec3(Vec3Up)

	if math.Abs(rotated.X) > tolerance ||
		math.Abs(rotated.Y) > tolerance ||
		math.Abs(rotated.Z-1) > tolerance {
		t.Errorf("RotationX: expected approximately (0,0,1), got %v", rotated)
	}
}

func TestMat4Multiplication(t *testing.T) {
	m := Mat4Identity().Mul(Mat4Identity())
	if m != Mat4Identity() {
		t.Errorf("Mul: identity * identity should be identity, got %v", m)
	}

	// Translation then rotation must differ from rotation then translation.
	tr := Mat4Translation(NewVec3(1, 0, 0))
	rot := Mat4RotationY(math.Pi / 2)
	if tr.Mul(rot) == rot.Mul(tr) {
		t.Error("Mul: expected non-commutative composition")
	}

	// T * R applied to origin: rotation first, then translation.
	p := tr.Mul(rot).MulVec3(Vec3Zero)
	if math.Abs(p.X-1) > tolerance || math.Abs(p.Y) > tolerance || math.Abs(p.Z) > tolerance {
		t.Errorf("Mul: expected (1,0,0), got %v", p)
	}
}

func TestMulVec3ZeroW(t *testing.T) {
	// A matrix with an all-zero last row produces w=0; the undivided
	// point must come back instead of Inf/NaN.
	m := Mat4Identity()
	m[3] = [4]float64{0, 0, 0, 0}

	p := m.MulVec3(NewVec3(1, 2, 3))
	if p != NewVec3(1, 2, 3) {
		t.Errorf("MulVec3 w=0: expected (1,2,3), got %v", p)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(math.Pi/3, 4.0/3.0, 0.1, 100)

	if m[0][0] == 0 || m[1][1] == 0 {
		t.Error("Perspective: expected non-zero X/Y scale")
	}
	if m[3][2] != -1 || m[3][3] != 0 {
		t.Errorf("Perspective: expected w = -z row, got %v", m[3])
	}

	// A point on the near plane maps to NDC z = -1.
	p := m.MulVec3(NewVec3(0, 0, -0.1))
	if math.Abs(p.Z+1) > 1e-9 {
		t.Errorf("Perspective: near plane should map to z=-1, got %v", p.Z)
	}
}

func TestMat4TRS(t *testing.T) {
	// Pure translation TRS moves the origin to the position.
	m := Mat4TRS(NewVec3(1, 2, 3), Vec3Zero, Vec3One)
	if got := m.MulVec3(Vec3Zero); got != NewVec3(1, 2, 3) {
		t.Errorf("TRS: expected (1,2,3), got %v", got)
	}

	// Scale is applied before rotation: a point on X scaled by 2 then
	// rotated 90 degrees about Y lands on -Z at distance 2.
	m = Mat4TRS(Vec3Zero, NewVec3(0, math.Pi/2, 0), NewVec3(2, 2, 2))
	got := m.MulVec3(Vec3Right)
	if math.Abs(got.X) > tolerance || math.Abs(got.Z+2) > tolerance {
		t.Errorf("TRS: expected approximately (0,0,-2), got %v", got)
	}
}

func TestMat4Transpose(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	tr := m.Transpose()
	if tr[3][0] != 1 || tr[3][1] != 2 || tr[3][2] != 3 {
		t.Errorf("Transpose: expected translation in last row, got %v", tr[3])
	}
	if tr.Transpose() != m {
		t.Error("Transpose: double transpose should restore the matrix")
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4TRS(NewVec3(1, 2, 3), NewVec3(0.1, 0.2, 0.3), Vec3One)
	m2 := Mat4RotationY(0.5)

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMulVec3(b *testing.B) {
	m := Mat4TRS(NewVec3(1, 2, 3), NewVec3(0.1, 0.2, 0.3), Vec3One)
	v := NewVec3(1, 2, 3)

	for i := 0; i < b.N; i++ {
		_ = m.MulVec3(v)
	}
}
