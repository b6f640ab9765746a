package renderer

import (
	"konstructs/internal/chunk"
	"konstructs/internal/graphics"
	"konstructs/internal/player"
)

// Frame carries what every renderable may need for one frame.
type Frame struct {
	Player *player.Player
	Chunks []*chunk.Geometry // draw order
	Width  int               // viewport, pixels
	Height int
}

// Renderable is one feature drawn each frame. Init runs once on the GL
// thread, Render once per frame in registration order, Dispose in reverse.
type Renderable interface {
	Init(dev graphics.Device) error
	Render(f Frame) error
	Dispose()
}
