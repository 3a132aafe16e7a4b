package raster

import (
	gomath "math"
	"testing"

	"softrender/core"
	"softrender/math"
)

func TestNewRasterizer(t *testing.T) {
	r := NewRasterizer(80, 60)
	if len(r.ColorBuffer()) != 80*60 {
		t.Errorf("expected %d pixels, got %d", 80*60, len(r.ColorBuffer()))
	}
	if !gomath.IsInf(r.DepthAt(0, 0), 1) {
		t.Errorf("expected +Inf initial depth, got %v", r.DepthAt(0, 0))
	}
}

func TestClear(t *testing.T) {
	r := NewRasterizer(4, 4)
	r.SetPixel(1, 1, 0.5, core.ColorWhite)

	r.Clear(core.ColorRed)
	packed := core.ColorRed.Pack()
	for i, c := range r.ColorBuffer() {
		if c != packed {
			t.Fatalf("pixel %d: expected clear color %#x, got %#x", i, packed, c)
		}
	}
	if !gomath.IsInf(r.DepthAt(1, 1), 1) {
		t.Errorf("expected depth reset to +Inf, got %v", r.DepthAt(1, 1))
	}
}

func TestSetPixelDepthTest(t *testing.T) {
	r := NewRasterizer(10, 10)

	r.SetPixel(5, 5, 5.0, core.ColorRed)
	if r.ColorBuffer()[5*10+5] != core.ColorRed.Pack() {
		t.Fatal("expected first write to land")
	}

	// Nearer write overwrites.
	r.SetPixel(5, 5, 2.0, core.ColorGreen)
	if r.ColorBuffer()[5*10+5] != core.ColorGreen.Pack() {
		t.Error("expected nearer write to overwrite")
	}

	// Farther write does not.
	r.SetPixel(5, 5, 8.0, core.ColorBlue)
	if r.ColorBuffer()[5*10+5] != core.ColorGreen.Pack() {
		t.Error("expected farther write to be rejected")
	}

	// Equal depth ties do not overwrite either.
	r.SetPixel(5, 5, 2.0, core.ColorYellow)
	if r.ColorBuffer()[5*10+5] != core.ColorGreen.Pack() {
		t.Error("expected equal-depth write to be rejected")
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	r := NewRasterizer(10, 10)
	// Must be silent no-ops.
	r.SetPixel(-1, 5, 0, core.ColorWhite)
	r.SetPixel(10, 5, 0, core.ColorWhite)
	r.SetPixel(5, -1, 0, core.ColorWhite)
	r.SetPixel(5, 10, 0, core.ColorWhite)

	clear := core.ColorBlack.Pack()
	for i, c := range r.ColorBuffer() {
		if c != clear {
			t.Fatalf("pixel %d: expected untouched buffer, got %#x", i, c)
		}
	}
}

func countDrawn(r *Rasterizer) int {
	clear := core.ColorBlack.Pack()
	n := 0
	for _, c := range r.ColorBuffer() {
		if c != clear {
			n++
		}
	}
	return n
}

func TestDrawLine(t *testing.T) {
	r := NewRasterizer(20, 20)
	r.DrawLine(math.NewVec2(0, 0), math.NewVec2(19, 19), core.ColorWhite)

	// The diagonal visits every row once.
	if got := countDrawn(r); got != 20 {
		t.Errorf("expected 20 pixels on the diagonal, got %d", got)
	}
	if r.ColorBuffer()[0] != core.ColorWhite.Pack() {
		t.Error("expected start pixel drawn")
	}
	if r.ColorBuffer()[19*20+19] != core.ColorWhite.Pack() {
		t.Error("expected end pixel drawn")
	}
}

func TestDrawLineOffscreenReject(t *testing.T) {
	r := NewRasterizer(10, 10)
	r.DrawLine(math.NewVec2(-50, -5), math.NewVec2(-20, -1), core.ColorWhite)
	if got := countDrawn(r); got != 0 {
		t.Errorf("expected no pixels for fully offscreen line, got %d", got)
	}
}

func TestDrawLineClipsAtEdges(t *testing.T) {
	r := NewRasterizer(10, 10)
	// Crosses the buffer; only in-bounds steps may write.
	r.DrawLine(math.NewVec2(-5, 5), math.NewVec2(14, 5), core.ColorWhite)
	if got := countDrawn(r); got != 10 {
		t.Errorf("expected exactly one full row, got %d pixels", got)
	}
}

func TestDrawLineWinsDepthTest(t *testing.T) {
	r := NewRasterizer(10, 10)
	r.SetPixel(3, 3, 0.5, core.ColorRed)

	// Lines draw at depth 0 and beat any previously filled geometry.
	r.DrawLine(math.NewVec2(3, 3), math.NewVec2(3, 3), core.ColorWhite)
	if r.ColorBuffer()[3*10+3] != core.ColorWhite.Pack() {
		t.Error("expected wireframe stroke to win the depth test")
	}
}

func TestDrawTriangleFill(t *testing.T) {
	r := NewRasterizer(20, 20)
	r.DrawTriangle(
		math.NewVec2(2, 2),
		math.NewVec2(2, 17),
		math.NewVec2(17, 17),
		0.5, 0.5, 0.5,
		core.ColorGreen,
	)

	drawn := countDrawn(r)
	if drawn == 0 {
		t.Fatal("expected the triangle to produce pixel writes")
	}

	// Every drawn pixel carries the interpolated depth.
	if d := r.DepthAt(3, 16); gomath.Abs(d-0.5) > 1e-9 {
		t.Errorf("expected interpolated depth 0.5, got %v", d)
	}
}

func TestDrawTriangleDegenerate(t *testing.T) {
	r := NewRasterizer(20, 20)

	// Collinear points.
	r.DrawTriangle(
		math.NewVec2(1, 1), math.NewVec2(5, 5), math.NewVec2(9, 9),
		0, 0, 0, core.ColorWhite,
	)
	// Coincident points.
	r.DrawTriangle(
		math.NewVec2(4, 4), math.NewVec2(4, 4), math.NewVec2(4, 4),
		0, 0, 0, core.ColorWhite,
	)

	if got := countDrawn(r); got != 0 {
		t.Errorf("expected no writes for degenerate triangles, got %d", got)
	}
}

func TestDrawTriangleWindingOrder(t *testing.T) {
	r := NewRasterizer(20, 20)
	// Opposite winding yields negative weights everywhere; the consistent
	// >= 0 rule rejects the whole triangle.
	r.DrawTriangle(
		math.NewVec2(2, 2),
		math.NewVec2(17, 17),
		math.NewVec2(2, 17),
		0, 0, 0, core.ColorWhite,
	)
	if got := countDrawn(r); got != 0 {
		t.Errorf("expected reverse-wound triangle to be rejected, got %d pixels", got)
	}
}

func TestDrawTriangleDepthInterpolation(t *testing.T) {
	r := NewRasterizer(11, 11)
	// Depth ramps from 0 at x=0 to 1 at x=10 across a band.
	r.DrawTriangle(
		math.NewVec2(0, 0),
		math.NewVec2(0, 10),
		math.NewVec2(10, 10),
		0, 0, 1,
		core.ColorWhite,
	)

	dLeft := r.DepthAt(1, 9)
	dRight := r.DepthAt(9, 9)
	if !(dLeft < dRight) {
		t.Errorf("expected depth to increase toward the far vertex, got %v vs %v", dLeft, dRight)
	}
}

func TestDrawTriangleWireframe(t *testing.T) {
	r := NewRasterizer(20, 20)
	r.DrawTriangleWireframe(
		math.NewVec2(2, 2),
		math.NewVec2(2, 17),
		math.NewVec2(17, 17),
		core.ColorWhite,
	)

	if got := countDrawn(r); got == 0 {
		t.Fatal("expected wireframe strokes")
	}
	// Interior stays untouched: (10, 12) is inside but off all edges.
	if r.ColorBuffer()[12*20+10] != core.ColorBlack.Pack() {
		t.Error("expected interior pixel untouched in wireframe mode")
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	r := NewRasterizer(256, 256)
	for i := 0; i < b.N; i++ {
		r.DrawTriangle(
			math.NewVec2(10, 10),
			math.NewVec2(10, 250),
			math.NewVec2(250, 250),
			0.1, 0.5, 0.9,
			core.ColorWhite,
		)
	}
}
