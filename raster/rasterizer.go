// Package raster implements software scan conversion into a CPU-side
// color buffer with a companion depth buffer.
package raster

import (
	gomath "math"

	"softrender/core"
	"softrender/math"
)

// signed-area threshold below which a triangle is considered degenerate
const areaEpsilon = 1e-8

// Rasterizer owns a packed-RGBA color buffer and a float depth buffer of
// width*height, both row-major.
type Rasterizer struct {
	width       int
	height      int
	colorBuffer []uint32
	depthBuffer []float64
}

func NewRasterizer(width, height int) *Rasterizer {
	r := &Rasterizer{
		width:       width,
		height:      height,
		colorBuffer: make([]uint32, width*height),
		depthBuffer: make([]float64, width*height),
	}
	r.Clear(core.ColorBlack)
	return r
}

func (r *Rasterizer) Width() int {
	return r.width
}

func (r *Rasterizer) Height() int {
	return r.height
}

// ColorBuffer exposes the packed pixels for presentation. Row-major,
// width*height entries.
func (r *Rasterizer) ColorBuffer() []uint32 {
	return r.colorBuffer
}

// Clear fills the color buffer with the given color and resets every depth
// entry to +Inf.
func (r *Rasterizer) Clear(color core.Color) {
	packed := color.Pack()
	for i := range r.colorBuffer {
		r.colorBuffer[i] = packed
	}
	inf := gomath.Inf(1)
	for i := range r.depthBuffer {
		r.depthBuffer[i] = inf
	}
}

// SetPixel writes color at (x,y) if the coordinate is in bounds and z wins
// the depth test. Ties (z equal to the stored depth) do not overwrite.
func (r *Rasterizer) SetPixel(x, y int, z float64, color core.Color) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}

	index := y*r.width + x
	if z < r.depthBuffer[index] {
		r.depthBuffer[index] = z
		r.colorBuffer[index] = color.Pack()
	}
}

// DepthAt returns the current depth value at (x,y), or +Inf out of bounds.
func (r *Rasterizer) DepthAt(x, y int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return gomath.Inf(1)
	}
	return r.depthBuffer[y*r.width+x]
}

// DrawLine steps an integer Bresenham line between the two points, drawing
// at depth 0 so wireframe strokes always pass the depth test.
func (r *Rasterizer) DrawLine(start, end math.Vec2, color core.Color) {
	x0, y0 := int(start.X), int(start.Y)
	x1, y1 := int(end.X), int(end.Y)

	// Coarse reject: both endpoints off the same side of the buffer.
	if (x0 < 0 && x1 < 0) || (x0 >= r.width && x1 >= r.width) ||
		(y0 < 0 && y1 < 0) || (y0 >= r.height && y1 >= r.height) {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		if x >= 0 && x < r.width && y >= 0 && y < r.height {
			r.SetPixel(x, y, 0, color)
		}

		if x == x1 && y == y1 {
			break
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// edge is the signed-area edge function: positive when c lies to one
// consistent side of the a->b edge.
func edge(a, b, c math.Vec2) float64 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

// DrawTriangle fills the triangle given by three screen-space points and
// their depths. Pixels whose centers yield non-negative weights for all
// three edge functions are inside; depth is interpolated barycentrically.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 math.Vec2, z0, z1, z2 float64, color core.Color) {
	area := edge(v0, v1, v2)
	if gomath.Abs(area) < areaEpsilon {
		return
	}

	minX := int(gomath.Max(gomath.Min(gomath.Min(v0.X, v1.X), v2.X), 0))
	minY := int(gomath.Max(gomath.Min(gomath.Min(v0.Y, v1.Y), v2.Y), 0))
	maxX := int(gomath.Min(gomath.Max(gomath.Max(v0.X, v1.X), v2.X), float64(r.width-1)))
	maxY := int(gomath.Min(gomath.Max(gomath.Max(v0.Y, v1.Y), v2.Y), float64(r.height-1)))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math.NewVec2(float64(x)+0.5, float64(y)+0.5)

			w0 := edge(v1, v2, p)
			w1 := edge(v2, v0, p)
			w2 := edge(v0, v1, p)

			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				b0 := w0 / area
				b1 := w1 / area
				b2 := w2 / area

				z := b0*z0 + b1*z1 + b2*z2
				r.SetPixel(x, y, z, color)
			}
		}
	}
}

// DrawTriangleWireframe strokes the three edges of the triangle.
func (r *Rasterizer) DrawTriangleWireframe(v0, v1, v2 math.Vec2, color core.Color) {
	r.DrawLine(v0, v1, color)
	r.DrawLine(v1, v2, color)
	r.DrawLine(v2, v0, color)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
