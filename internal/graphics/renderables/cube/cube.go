// Package cube is the flat-shaded demo cube drawn in screen space.
package cube

import (
	_ "embed"

	"konstructs/internal/graphics"
	renderer "konstructs/internal/graphics/renderer"
)

var (
	//go:embed shaders/cube.vert
	vertexSource string
	//go:embed shaders/cube.frag
	fragmentSource string
)

// Data is one cube to draw: its positions (pixels) and a grey level.
type Data struct {
	Buffer    *graphics.AttributeBuffer
	Intensity float32
}

// Cube draws Data with a 2D projection.
type Cube struct {
	dev     graphics.Device
	program *graphics.Program

	position      graphics.AttributeID
	modelViewProj graphics.UniformID
	intensity     graphics.UniformID

	cubes []Data
}

func NewCube() *Cube {
	return &Cube{}
}

func (c *Cube) Init(dev graphics.Device) error {
	program, err := graphics.NewProgram(dev, "cube", vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	c.dev = dev
	c.program = program
	c.position = program.AttributeID("position")
	c.modelViewProj = program.UniformID("modelViewProj")
	c.intensity = program.UniformID("intensity")
	return nil
}

// Add uploads positions (3 floats per vertex) as a cube drawn every frame.
func (c *Cube) Add(positions []float32, intensity float32) error {
	b, err := graphics.NewAttributeBuffer(c.dev, "position", c.position, 3, positions)
	if err != nil {
		return err
	}
	c.cubes = append(c.cubes, Data{Buffer: b, Intensity: intensity})
	return nil
}

// Draw renders cubes under one bind: the projection once, then intensity and
// a draw per cube.
func (c *Cube) Draw(cubes []Data, width, height int) error {
	mvp := graphics.Projection2D(width, height)
	return c.program.Bind(func(ctx *graphics.RenderContext) error {
		ctx.SetMatrix4(c.modelViewProj, mvp)
		for _, d := range cubes {
			ctx.SetFloat(c.intensity, d.Intensity)
			if err := ctx.RenderRange(0, d.Buffer.Len(), d.Buffer); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *Cube) Render(f renderer.Frame) error {
	if len(c.cubes) == 0 {
		return nil
	}
	return c.Draw(c.cubes, f.Width, f.Height)
}

func (c *Cube) Dispose() {
	for _, d := range c.cubes {
		d.Buffer.Delete()
	}
	c.cubes = nil
	if c.program != nil {
		c.program.Delete()
	}
}
