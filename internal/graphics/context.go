package graphics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext is handed out by Program.Bind and is the only way to set
// uniforms or draw. It stops working as soon as the Bind call returns.
type RenderContext struct {
	dev     Device
	program *Program

	// uploads go through here so the matrix does not escape per call
	scratch mgl32.Mat4
}

func (c *RenderContext) check() {
	if c.program == nil {
		panic("graphics: render context used outside Bind")
	}
}

func (c *RenderContext) SetFloat(id UniformID, v float32) {
	c.check()
	c.dev.Uniform1f(int32(id), v)
}

// SetMatrix4 uploads m as-is; mgl32 matrices are column-major, which is what
// the shaders expect.
func (c *RenderContext) SetMatrix4(id UniformID, m mgl32.Mat4) {
	c.check()
	c.scratch = m
	c.dev.UniformMatrix4(int32(id), &c.scratch)
}

// SetSampler points a sampler uniform at a texture unit.
func (c *RenderContext) SetSampler(id UniformID, unit int32) {
	c.check()
	c.dev.Uniform1i(int32(id), unit)
}

// RenderRange draws count triangle vertices starting at start. Each buffer is
// enabled at its own attribute location for the draw and disabled afterwards.
func (c *RenderContext) RenderRange(start, count int, buffers ...*AttributeBuffer) error {
	return c.draw(Triangles, start, count, buffers)
}

// RenderLines is RenderRange for line lists.
func (c *RenderContext) RenderLines(start, count int, buffers ...*AttributeBuffer) error {
	return c.draw(Lines, start, count, buffers)
}

func (c *RenderContext) draw(mode Primitive, start, count int, buffers []*AttributeBuffer) error {
	c.check()
	if len(buffers) == 0 {
		panic(fmt.Sprintf("graphics: program %q draw without attribute buffers", c.program.name))
	}
	for _, b := range buffers {
		if start+count > b.count {
			panic(fmt.Sprintf("graphics: draw [%d,%d) past end of %q (%d vertices)", start, start+count, b.name, b.count))
		}
		c.dev.EnableAttribute(uint32(b.location), b.vbo, int32(b.components))
	}
	err := c.dev.DrawArrays(mode, int32(start), int32(count))
	for _, b := range buffers {
		c.dev.DisableAttribute(uint32(b.location))
	}
	return err
}
