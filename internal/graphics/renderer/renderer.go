package renderer

import (
	"fmt"

	"konstructs/internal/graphics"
	"konstructs/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// SkyColor is the clear colour.
var SkyColor = mgl32.Vec4{0.53, 0.81, 0.92, 1.0}

// Renderer runs the registered renderables in order each frame.
type Renderer struct {
	dev         graphics.Device
	renderables []Renderable
	width       int
	height      int
}

// NewRenderer configures fixed pipeline state and initializes every
// renderable. If one fails, those already initialized are disposed.
func NewRenderer(dev graphics.Device, width, height int, rs ...Renderable) (*Renderer, error) {
	dev.Configure()

	r := &Renderer{dev: dev}
	for i, rb := range rs {
		if err := rb.Init(dev); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init %T: %w", rb, err)
		}
	}
	r.renderables = rs
	r.SetViewport(width, height)
	return r, nil
}

// Render clears the frame and draws every renderable. The first error stops
// the frame; GPU errors raised by the frame's draws are checked once at the end.
func (r *Renderer) Render(f Frame) error {
	defer profiling.Track("renderer.Render")()

	f.Width, f.Height = r.width, r.height
	r.dev.Clear(SkyColor)
	for _, rb := range r.renderables {
		if err := rb.Render(f); err != nil {
			return err
		}
	}
	return r.dev.CheckError("frame")
}

// SetViewport updates the framebuffer size used for projection.
func (r *Renderer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		// minimized
		return
	}
	r.width, r.height = width, height
	r.dev.Viewport(width, height)
}

// Viewport returns the current framebuffer size.
func (r *Renderer) Viewport() (int, int) {
	return r.width, r.height
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}
