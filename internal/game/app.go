package game

import (
	"time"

	"konstructs/internal/chunk"
	"konstructs/internal/config"
	renderer "konstructs/internal/graphics/renderer"
	"konstructs/internal/input"
	"konstructs/internal/logger"
	"konstructs/internal/player"
	"konstructs/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// slowFrame is the frame time above which the loop logs the top costs.
const slowFrame = 16 * time.Millisecond

// Window is the part of *glfw.Window the app drives.
type Window interface {
	GetCursorPos() (x, y float64)
	GetInputMode(mode glfw.InputMode) int
	SetInputMode(mode glfw.InputMode, value int)
	SetShouldClose(value bool)
	ShouldClose() bool
	SwapBuffers()
}

// App owns the per-frame sequence: input, camera, world pass, overlays.
type App struct {
	window   Window
	input    *input.InputManager
	cursor   input.Cursor
	player   *player.Player
	renderer *renderer.Renderer
	chunks   *chunk.Registry

	// reused every frame so building the draw list does not allocate
	drawList []*chunk.Geometry

	pollEvents func()
	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

func NewApp(window Window, im *input.InputManager, p *player.Player, r *renderer.Renderer, chunks *chunk.Registry) *App {
	return &App{
		window:     window,
		input:      im,
		player:     p,
		renderer:   r,
		chunks:     chunks,
		pollEvents: glfw.PollEvents,
		fpsLimiter: NewFPSLimiter(),
		lastTime:   time.Now(),
	}
}

// Run drives frames until the window is asked to close or a frame fails.
func (a *App) Run() error {
	for !a.window.ShouldClose() {
		start := time.Now()
		a.pollEvents()

		if err := a.Frame(); err != nil {
			return err
		}
		a.window.SwapBuffers()

		if d := time.Since(start); d > slowFrame {
			logger.Log.Warn("slow frame",
				zap.Duration("took", d),
				zap.Duration("chunks", profiling.SumWithPrefix("chunks.")),
				zap.String("top", profiling.TopN(5)))
		}
		a.fpsLimiter.Wait()
	}
	return nil
}

// Frame is the render hook, called once per frame on the GL thread.
func (a *App) Frame() error {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	a.handleKeys()
	a.handleMouse()
	a.player.Tick(float32(dt))

	a.drawList = a.chunks.AppendTo(a.drawList[:0])
	err := a.renderer.Render(renderer.Frame{
		Player: a.player,
		Chunks: a.drawList,
	})
	clear(a.drawList)

	a.input.PostUpdate()
	return err
}

// Captured reports whether mouse look is active.
func (a *App) Captured() bool {
	return a.window.GetInputMode(glfw.CursorMode) == glfw.CursorDisabled
}

func (a *App) handleKeys() {
	if a.input.JustPressed(input.ActionRelease) {
		if a.Captured() {
			a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			a.cursor.Reset()
		} else {
			a.window.SetShouldClose(true)
		}
	}
	if a.input.JustPressed(input.ActionCapture) && !a.Captured() {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.cursor.Reset()
	}

	a.player.UpdatePosition(a.input.Strafe())
}

func (a *App) handleMouse() {
	x, y := a.window.GetCursorPos()
	if dx, dy, ok := a.cursor.Update(a.Captured(), x, y); ok {
		a.player.Look(float32(dx), float32(dy), config.GetMouseSensitivity())
	}
}
