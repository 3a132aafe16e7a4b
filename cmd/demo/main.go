// Demo renders a small scene with the software rasterizer and presents
// the framebuffer in a desktop window.
package main

import (
	"flag"
	"fmt"
	stdmath "math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"softrender/core"
	"softrender/internal/config"
	"softrender/internal/logger"
	"softrender/io"
	"softrender/math"
	"softrender/renderer"
	"softrender/scene"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	modelPath := flag.String("model", "", "optional .obj or .gltf/.glb model to load")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	game, err := newGame(cfg, *modelPath)
	if err != nil {
		logger.Fatal("setup failed", zap.Error(err))
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(60)

	logger.Info("starting",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("nodes", game.world.NodeCount()))

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

// buildScene populates the world with demo geometry, or with the model at
// modelPath when one is given.
func buildScene(world *scene.Scene, modelPath string) (scene.NodeID, error) {
	if modelPath != "" {
		return loadModel(world, modelPath)
	}

	cube := world.CreateMeshNode("cube", scene.CreateCube(1))
	if n, ok := world.Node(cube); ok {
		n.Transform.SetPosition(math.NewVec3(0, 0.5, 0))
	}

	ground := world.CreateMeshNode("ground", scene.CreateQuad(8))
	if n, ok := world.Node(ground); ok {
		n.Transform.SetRotation(math.NewVec3(-stdmath.Pi/2, 0, 0))
		n.Transform.SetPosition(math.NewVec3(0, -0.5, 0))
	}

	sphere := world.CreateMeshNode("sphere", scene.CreateSphere(0.5, 16, 12))
	if n, ok := world.Node(sphere); ok {
		n.Transform.SetPosition(math.NewVec3(2, 0.5, 1))
	}
	if err := world.SetParent(sphere, cube); err != nil {
		return scene.InvalidNode, err
	}

	return cube, nil
}

func loadModel(world *scene.Scene, path string) (scene.NodeID, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		mesh, err := io.LoadOBJ(path)
		if err != nil {
			return scene.InvalidNode, err
		}
		return world.CreateMeshNode(mesh.Name, mesh), nil

	case ".gltf", ".glb":
		roots, err := io.LoadGLTF(path, world)
		if err != nil {
			return scene.InvalidNode, err
		}
		if len(roots) == 0 {
			return scene.InvalidNode, fmt.Errorf("gltf: %s: no nodes", path)
		}
		return roots[0], nil

	default:
		return scene.InvalidNode, fmt.Errorf("unsupported model format: %s", path)
	}
}

func colorFrom(rgba [4]uint8) core.Color {
	return core.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
}

func newRenderer(cfg *config.Config) *renderer.Renderer {
	r := renderer.NewRenderer(cfg.Window.Width, cfg.Window.Height)
	r.SetClearColor(colorFrom(cfg.Renderer.ClearColor))
	r.SetFillColor(colorFrom(cfg.Renderer.FillColor))
	if cfg.Renderer.Wireframe {
		r.ToggleWireframe()
	}
	return r
}
