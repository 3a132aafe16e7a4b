// Package renderer orchestrates the per-frame draw pass: it composes
// model-view-projection matrices, projects mesh vertices to screen space,
// and feeds triangles to the rasterizer.
package renderer

import (
	gomath "math"

	"softrender/core"
	"softrender/math"
	"softrender/raster"
	"softrender/scene"
)

// Threshold under which a projected z is treated as degenerate and the
// screen mapping collapses to the origin instead of producing garbage
// coordinates. Vertices behind the camera render incorrectly but never
// crash; there is no near-plane clipping.
const zEpsilon = 1e-3

// FrameStats counts what the last frame actually drew.
type FrameStats struct {
	Meshes    int
	Vertices  int
	Triangles int
}

// Renderer draws meshes through a rasterizer-owned pixel buffer.
type Renderer struct {
	rasterizer *raster.Rasterizer
	width      int
	height     int

	clearColor    core.Color
	fillColor     core.Color
	wireColor     core.Color
	wireframeMode bool

	stats FrameStats
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		rasterizer: raster.NewRasterizer(width, height),
		width:      width,
		height:     height,
		clearColor: core.ColorBlack,
		fillColor:  core.ColorWhite,
		wireColor:  core.ColorWhite,
	}
}

func (r *Renderer) Width() int {
	return r.width
}

func (r *Renderer) Height() int {
	return r.height
}

// Buffer exposes the finished frame as row-major packed RGBA pixels.
func (r *Renderer) Buffer() []uint32 {
	return r.rasterizer.ColorBuffer()
}

// Clear resets both buffers and the frame stats. Call once per frame
// before drawing.
func (r *Renderer) Clear() {
	r.rasterizer.Clear(r.clearColor)
	r.stats = FrameStats{}
}

func (r *Renderer) SetClearColor(color core.Color) {
	r.clearColor = color
}

func (r *Renderer) SetFillColor(color core.Color) {
	r.fillColor = color
}

func (r *Renderer) ToggleWireframe() {
	r.wireframeMode = !r.wireframeMode
}

func (r *Renderer) WireframeMode() bool {
	return r.wireframeMode
}

// Stats returns the draw counters accumulated since the last Clear.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// RenderMesh projects every vertex of the mesh through
// viewProjection * worldMatrix and rasterizes each face, filled or as an
// outline depending on the wireframe mode.
func (r *Renderer) RenderMesh(mesh *scene.Mesh, worldMatrix math.Mat4, camera *scene.Camera) {
	mvp := camera.ViewProjectionMatrix().Mul(worldMatrix)

	screen := make([]screenVertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		// MulVec3 performs the perspective divide (unless w is zero).
		ndc := mvp.MulVec3(v.Position)
		screen[i] = screenVertex{pos: r.toScreenSpace(ndc), depth: ndc.Z}
	}

	for _, face := range mesh.Faces {
		s0 := screen[face.Vertices[0]]
		s1 := screen[face.Vertices[1]]
		s2 := screen[face.Vertices[2]]

		if r.wireframeMode {
			r.rasterizer.DrawTriangleWireframe(s0.pos, s1.pos, s2.pos, r.wireColor)
		} else {
			r.rasterizer.DrawTriangle(s0.pos, s1.pos, s2.pos, s0.depth, s1.depth, s2.depth, r.fillColor)
		}
	}

	r.stats.Meshes++
	r.stats.Vertices += len(mesh.Vertices)
	r.stats.Triangles += len(mesh.Faces)
}

// RenderScene walks the visible scene graph and draws every mesh node
// using the world matrices from the last transform update pass.
func (r *Renderer) RenderScene(s *scene.Scene, camera *scene.Camera) {
	s.TraverseVisible(func(n *scene.SceneNode) {
		if n.Mesh != nil {
			r.RenderMesh(n.Mesh, n.WorldMatrix(), camera)
		}
	})
}

type screenVertex struct {
	pos   math.Vec2
	depth float64
}

// toScreenSpace maps a normalized-device-coordinate point to pixel
// coordinates. Y flips because screen-space Y grows downward. Points whose
// z collapsed to (near) zero fall back to the origin.
func (r *Renderer) toScreenSpace(v math.Vec3) math.Vec2 {
	if gomath.Abs(v.Z) < zEpsilon {
		return math.NewVec2(0, 0)
	}

	x := (v.X + 1) * 0.5 * float64(r.width)
	y := (1 - v.Y) * 0.5 * float64(r.height)
	return math.NewVec2(x, y)
}
