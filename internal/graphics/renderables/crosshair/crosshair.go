package crosshair

import (
	_ "embed"

	"konstructs/internal/graphics"
	renderer "konstructs/internal/graphics/renderer"
	"konstructs/internal/profiling"
)

var (
	//go:embed shaders/crosshair.vert
	vertexSource string
	//go:embed shaders/crosshair.frag
	fragmentSource string
)

// Size is the half-length of each line in pixels.
const Size = 10

// Vertices are two lines through the screen centre, in pixels.
var Vertices = []float32{
	-Size, 0,
	Size, 0,
	0, -Size,
	0, Size,
}

// Crosshair implements crosshair rendering
type Crosshair struct {
	program    *graphics.Program
	lines      *graphics.AttributeBuffer
	projection graphics.UniformID
}

// NewCrosshair creates a new crosshair renderable
func NewCrosshair() *Crosshair {
	return &Crosshair{}
}

// Init compiles the program and uploads the line geometry
func (c *Crosshair) Init(dev graphics.Device) error {
	program, err := graphics.NewProgram(dev, "crosshair", vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	lines, err := graphics.NewAttributeBuffer(dev, "position", program.AttributeID("position"), 2, Vertices)
	if err != nil {
		program.Delete()
		return err
	}
	c.program = program
	c.lines = lines
	c.projection = program.UniformID("projection")
	return nil
}

// Render draws the crosshair over whatever is already in the frame
func (c *Crosshair) Render(f renderer.Frame) error {
	defer profiling.Track("crosshair.Render")()
	return c.Draw(f.Width, f.Height)
}

// Draw renders the crosshair for a viewport size in pixels
func (c *Crosshair) Draw(width, height int) error {
	proj := graphics.ProjectionCentered(width, height)
	return c.program.Bind(func(ctx *graphics.RenderContext) error {
		ctx.SetMatrix4(c.projection, proj)
		return ctx.RenderLines(0, c.lines.Len(), c.lines)
	})
}

// Dispose cleans up GPU resources
func (c *Crosshair) Dispose() {
	if c.lines != nil {
		c.lines.Delete()
	}
	if c.program != nil {
		c.program.Delete()
	}
}
