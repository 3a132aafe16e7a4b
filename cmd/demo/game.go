package main

import (
	stdmath "math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"softrender/internal/config"
	"softrender/internal/logger"
	"softrender/math"
	"softrender/renderer"
	"softrender/scene"
)

// Game drives the scene, camera and software renderer and presents the
// resulting framebuffer each frame.
type Game struct {
	world    *scene.Scene
	camera   *scene.Camera
	renderer *renderer.Renderer
	overlay  DebugOverlay

	spinner  scene.NodeID
	lastTick time.Time

	width, height int
	pix           []byte
	frame         *ebiten.Image
}

func newGame(cfg *config.Config, modelPath string) (*Game, error) {
	world := scene.NewScene()
	spinner, err := buildScene(world, modelPath)
	if err != nil {
		return nil, err
	}

	camera := scene.NewCamera(float64(cfg.Window.Width), float64(cfg.Window.Height))
	camera.FOV = cfg.Camera.FOVDegrees * stdmath.Pi / 180
	camera.Near = cfg.Camera.Near
	camera.Far = cfg.Camera.Far
	camera.MovementSpeed = cfg.Camera.MovementSpeed
	camera.RotationSpeed = cfg.Camera.RotationSpeed
	camera.SetPosition(math.NewVec3(0, 1, -6))
	camera.LookAt(math.Vec3Zero)

	return &Game{
		world:    world,
		camera:   camera,
		renderer: newRenderer(cfg),
		spinner:  spinner,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		pix:      make([]byte, cfg.Window.Width*cfg.Window.Height*4),
	}, nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := 0.0
	if !g.lastTick.IsZero() {
		dt = now.Sub(g.lastTick).Seconds()
	}
	g.lastTick = now
	if dt > 0.1 {
		dt = 0.1
	}

	g.handleInput(dt)
	g.animate(dt)
	g.world.UpdateTransforms()
	return nil
}

func (g *Game) handleInput(dt float64) {
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		g.camera.MoveForward(dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		g.camera.MoveForward(-dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.camera.MoveRight(dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		g.camera.MoveRight(-dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.camera.MoveUp(dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.camera.MoveUp(-dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.camera.RotateHorizontal(dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.camera.RotateHorizontal(-dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.camera.RotateVertical(dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.camera.RotateVertical(-dt)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.renderer.ToggleWireframe()
		logger.Debug("wireframe toggled", zap.Bool("on", g.renderer.WireframeMode()))
	}
}

func (g *Game) animate(dt float64) {
	n, ok := g.world.Node(g.spinner)
	if !ok {
		return
	}
	rot := n.Transform.Rotation
	rot.Y += dt * 0.8
	n.Transform.SetRotation(rot)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Clear()
	g.renderer.RenderScene(g.world, g.camera)

	if g.frame == nil {
		g.frame = ebiten.NewImage(g.width, g.height)
	}

	// Color buffer pixels are packed A|B|G|R high to low, which is
	// exactly the byte order WritePixels expects.
	buf := g.renderer.Buffer()
	for i, p := range buf {
		j := i * 4
		g.pix[j+0] = byte(p)
		g.pix[j+1] = byte(p >> 8)
		g.pix[j+2] = byte(p >> 16)
		g.pix[j+3] = byte(p >> 24)
	}
	g.frame.WritePixels(g.pix)
	screen.DrawImage(g.frame, nil)

	g.drawOverlay(screen)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	stats := g.renderer.Stats()
	g.overlay.Clear()
	g.overlay.AddLine("fps %.1f  tps %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	g.overlay.AddLine("meshes %d  verts %d  tris %d", stats.Meshes, stats.Vertices, stats.Triangles)
	if g.renderer.WireframeMode() {
		g.overlay.AddLine("wireframe [O]")
	}
	ebitenutil.DebugPrint(screen, g.overlay.Text())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
