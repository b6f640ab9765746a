package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"konstructs/internal/chunk"
	"konstructs/internal/config"
	"konstructs/internal/game"
	"konstructs/internal/graphics"
	"konstructs/internal/graphics/renderables/chunks"
	"konstructs/internal/graphics/renderables/crosshair"
	"konstructs/internal/graphics/renderables/cube"
	renderer "konstructs/internal/graphics/renderer"
	"konstructs/internal/input"
	"konstructs/internal/logger"
	"konstructs/internal/player"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

func init() {
	// GL calls must all come from the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "konstructs.toml", "path to a TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logger.Log.Error("fatal error", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Caught a fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Render.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	config.Apply(cfg)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := graphics.NewGLDevice(cfg.Render.Debug)
	if err != nil {
		return err
	}
	logger.Log.Info("gl context ready", zap.String("version", dev.Version()))

	atlas, err := graphics.LoadAtlas(dev, cfg.Render.Atlas)
	if err != nil {
		return err
	}
	defer atlas.Delete()
	atlas.Bind(chunks.AtlasUnit)

	lens := graphics.Lens{FOV: cfg.Render.FOV, NearPlane: cfg.Render.Near, FarPlane: cfg.Render.Far}
	chunkRenderer := chunks.New(lens)
	renderables := []renderer.Renderable{chunkRenderer}
	var cubeRenderer *cube.Cube
	if cfg.Render.DemoCubes {
		cubeRenderer = cube.NewCube()
		renderables = append(renderables, cubeRenderer)
	}
	renderables = append(renderables, crosshair.NewCrosshair())

	fbWidth, fbHeight := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(dev, fbWidth, fbHeight, renderables...)
	if err != nil {
		return err
	}
	defer r.Dispose()

	registry := chunk.NewRegistry()
	defer registry.Clear()
	if err := seedChunks(chunkRenderer, registry); err != nil {
		return err
	}
	if cubeRenderer != nil {
		if err := seedCubes(cubeRenderer); err != nil {
			return err
		}
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.SetViewport(width, height)
	})

	im := input.NewInputManager()
	im.Attach(window)

	p := player.New(cfg.StartPosition(), 0, 0, 0)
	logger.Log.Info("viewer started",
		zap.Int("chunks", registry.Len()),
		zap.Int("width", fbWidth),
		zap.Int("height", fbHeight))

	return game.NewApp(window, im, p, r, registry).Run()
}

func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}
