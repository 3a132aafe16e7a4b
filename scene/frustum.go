package scene

import (
	"softrender/math"
)

// Plane is a half-space ax + by + cz + d = 0. The normal points into the
// inside of the frustum.
type Plane struct {
	Normal math.Vec3
	D      float64
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means the point is on the inside.
func (p Plane) DistanceTo(pt math.Vec3) float64 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum in the order
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlanes extracts the six frustum planes from the camera's combined
// view-projection matrix using the Gribb-Hartmann row method: each plane is
// the last matrix row plus or minus one of the first three rows, normalized
// by the magnitude of its (x,y,z) part.
func (c *Camera) FrustumPlanes() Frustum {
	vp := c.ViewProjectionMatrix()
	r0 := vp[0]
	r1 := vp[1]
	r2 := vp[2]
	r3 := vp[3]

	var f Frustum
	f.Planes[0] = normalizePlane(r3[0]+r0[0], r3[1]+r0[1], r3[2]+r0[2], r3[3]+r0[3]) // left
	f.Planes[1] = normalizePlane(r3[0]-r0[0], r3[1]-r0[1], r3[2]-r0[2], r3[3]-r0[3]) // right
	f.Planes[2] = normalizePlane(r3[0]+r1[0], r3[1]+r1[1], r3[2]+r1[2], r3[3]+r1[3]) // bottom
	f.Planes[3] = normalizePlane(r3[0]-r1[0], r3[1]-r1[1], r3[2]-r1[2], r3[3]-r1[3]) // top
	f.Planes[4] = normalizePlane(r3[0]+r2[0], r3[1]+r2[1], r3[2]+r2[2], r3[3]+r2[3]) // near
	f.Planes[5] = normalizePlane(r3[0]-r2[0], r3[1]-r2[1], r3[2]-r2[2], r3[3]-r2[3]) // far
	return f
}

func normalizePlane(a, b, c, d float64) Plane {
	l := math.NewVec3(a, b, c).Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: math.NewVec3(a/l, b/l, c/l), D: d / l}
}

// IntersectsFrustum returns false if the box is completely outside the
// frustum. Uses the positive-vertex test: for each plane, only the corner
// most aligned with the plane normal needs checking.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for i := 0; i < 6; i++ {
		p := f.Planes[i]
		px := box.Max.X
		if p.Normal.X < 0 {
			px = box.Min.X
		}
		py := box.Max.Y
		if p.Normal.Y < 0 {
			py = box.Min.Y
		}
		pz := box.Max.Z
		if p.Normal.Z < 0 {
			pz = box.Min.Z
		}
		if p.DistanceTo(math.NewVec3(px, py, pz)) < 0 {
			return false
		}
	}
	return true
}
