package scene

import (
	stdmath "math"

	"softrender/math"
)

// Camera looks from Position toward Target with the given up hint, and
// projects through a perspective frustum. View and projection matrices are
// recomputed eagerly whenever any input changes, so they are never stale.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FOV         float64 // vertical field of view, radians
	AspectRatio float64
	Near        float64
	Far         float64

	MovementSpeed float64
	RotationSpeed float64

	viewMatrix       math.Mat4
	projectionMatrix math.Mat4
}

func NewCamera(width, height float64) *Camera {
	c := &Camera{
		Position:      math.NewVec3(0, 0, -5),
		Target:        math.Vec3Zero,
		Up:            math.Vec3Up,
		FOV:           60 * stdmath.Pi / 180,
		AspectRatio:   width / height,
		Near:          0.1,
		Far:           100,
		MovementSpeed: 5,
		RotationSpeed: 2,
	}
	c.UpdateMatrices()
	return c
}

// UpdateMatrices recomputes the cached view and projection matrices from
// the current camera state.
func (c *Camera) UpdateMatrices() {
	c.updateViewMatrix()
	c.projectionMatrix = math.Mat4Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) updateViewMatrix() {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	rotation := math.Mat4Identity()
	rotation[0][0], rotation[0][1], rotation[0][2] = right.X, right.Y, right.Z
	rotation[1][0], rotation[1][1], rotation[1][2] = up.X, up.Y, up.Z
	rotation[2][0], rotation[2][1], rotation[2][2] = -forward.X, -forward.Y, -forward.Z

	translation := math.Mat4Translation(c.Position.Negate())
	c.viewMatrix = rotation.Mul(translation)
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return c.viewMatrix
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return c.projectionMatrix
}

func (c *Camera) ViewProjectionMatrix() math.Mat4 {
	return c.projectionMatrix.Mul(c.viewMatrix)
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.UpdateMatrices()
}

// LookAt points the camera at the given world-space target.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
	c.UpdateMatrices()
}

// SetAspect updates the aspect ratio, typically after a window resize.
func (c *Camera) SetAspect(width, height float64) {
	if height > 0 {
		c.AspectRatio = width / height
		c.UpdateMatrices()
	}
}

// MoveForward translates position and target together along the view
// direction, preserving where the camera looks.
func (c *Camera) MoveForward(amount float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	offset := forward.Mul(amount * c.MovementSpeed)
	c.Position = c.Position.Add(offset)
	c.Target = c.Target.Add(offset)
	c.UpdateMatrices()
}

// MoveRight strafes position and target along the camera's right axis.
func (c *Camera) MoveRight(amount float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	offset := right.Mul(amount * c.MovementSpeed)
	c.Position = c.Position.Add(offset)
	c.Target = c.Target.Add(offset)
	c.UpdateMatrices()
}

// MoveUp translates position and target along the up hint.
func (c *Camera) MoveUp(amount float64) {
	offset := c.Up.Normalize().Mul(amount * c.MovementSpeed)
	c.Position = c.Position.Add(offset)
	c.Target = c.Target.Add(offset)
	c.UpdateMatrices()
}

// RotateHorizontal swings the look direction about the world Y axis. The
// eye stays fixed; the target orbits around it.
func (c *Camera) RotateHorizontal(angle float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	rotated := math.Mat4RotationY(angle * c.RotationSpeed).MulVec3(forward)
	c.Target = c.Position.Add(rotated)
	c.UpdateMatrices()
}

// RotateVertical tilts the look direction about the X axis, eye fixed.
func (c *Camera) RotateVertical(angle float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	rotated := math.Mat4RotationX(angle * c.RotationSpeed).MulVec3(forward)
	c.Target = c.Position.Add(rotated)
	c.UpdateMatrices()
}
