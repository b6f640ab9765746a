package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Config is the viewer's startup configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Input  InputConfig  `toml:"input"`
	Render RenderConfig `toml:"render"`
	Player PlayerConfig `toml:"player"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type InputConfig struct {
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
}

type RenderConfig struct {
	FOV       float32 `toml:"fov"`
	Near      float32 `toml:"near"`
	Far       float32 `toml:"far"`
	FPSLimit  int     `toml:"fps_limit"`
	Atlas     string  `toml:"atlas"`
	DemoCubes bool    `toml:"demo_cubes"`
	Debug     bool    `toml:"debug"`
}

type PlayerConfig struct {
	Position [3]float32 `toml:"position"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			Title:  "Konstructs",
			VSync:  true,
		},
		Input: InputConfig{
			MouseSensitivity: 0.0025,
		},
		Render: RenderConfig{
			FOV:   65.0,
			Near:  0.125,
			Far:   1024.0,
			Atlas: "textures/atlas.png",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.clamp()
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func (c *Config) clamp() {
	if c.Window.Width < 1 {
		c.Window.Width = 1
	}
	if c.Window.Height < 1 {
		c.Window.Height = 1
	}
	if c.Render.FOV < 10 {
		c.Render.FOV = 10
	}
	if c.Render.FOV > 170 {
		c.Render.FOV = 170
	}
	if c.Render.Near <= 0 {
		c.Render.Near = Default().Render.Near
	}
	if c.Render.Far <= c.Render.Near {
		c.Render.Far = c.Render.Near * 2
	}
	c.Render.FPSLimit = clampFPS(c.Render.FPSLimit)
	if c.Input.MouseSensitivity <= 0 {
		c.Input.MouseSensitivity = Default().Input.MouseSensitivity
	}
}

// StartPosition returns the configured initial player position.
func (c Config) StartPosition() mgl32.Vec3 {
	return mgl32.Vec3(c.Player.Position)
}
