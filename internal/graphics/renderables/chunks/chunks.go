// Package chunks draws chunk geometry with the lit, textured block shader.
package chunks

import (
	_ "embed"
	"fmt"

	"konstructs/internal/chunk"
	"konstructs/internal/graphics"
	renderer "konstructs/internal/graphics/renderer"
	"konstructs/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed shaders/chunk.vert
	vertexSource string
	//go:embed shaders/chunk.frag
	fragmentSource string
)

// AtlasUnit is the texture unit the block atlas must be bound to.
const AtlasUnit = 0

// Viewer supplies the world-to-camera transform.
type Viewer interface {
	View() mgl32.Mat4
}

// Renderer is the chunk shader program and the locations it draws with.
type Renderer struct {
	dev     graphics.Device
	lens    graphics.Lens
	program *graphics.Program

	position graphics.AttributeID
	normal   graphics.AttributeID
	uv       graphics.AttributeID
	matrix   graphics.UniformID
	sampler  graphics.UniformID
}

// New returns a chunk renderer using lens for projection. Init must run
// before it can draw or build chunks.
func New(lens graphics.Lens) *Renderer {
	return &Renderer{lens: lens}
}

func (r *Renderer) Init(dev graphics.Device) error {
	program, err := graphics.NewProgram(dev, "chunk", vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	r.dev = dev
	r.program = program
	r.position = program.AttributeID("position")
	r.normal = program.AttributeID("normal")
	r.uv = program.AttributeID("uv")
	r.matrix = program.UniformID("matrix")
	r.sampler = program.UniformID("sampler")
	return nil
}

// NewChunk uploads mesher output (3 floats per position and normal, 2 per uv)
// as a chunk bound to this program's attribute locations.
func (r *Renderer) NewChunk(offset mgl32.Vec3, positions, normals, uvs []float32) (*chunk.Geometry, error) {
	var made []*graphics.AttributeBuffer
	fail := func(err error) (*chunk.Geometry, error) {
		for _, b := range made {
			b.Delete()
		}
		return nil, err
	}

	streams := []struct {
		name       string
		location   graphics.AttributeID
		components int
		data       []float32
	}{
		{"position", r.position, 3, positions},
		{"normal", r.normal, 3, normals},
		{"uv", r.uv, 2, uvs},
	}
	for _, s := range streams {
		b, err := graphics.NewAttributeBuffer(r.dev, s.name, s.location, s.components, s.data)
		if err != nil {
			return fail(err)
		}
		made = append(made, b)
	}

	g, err := chunk.New(offset, made[0], made[1], made[2])
	if err != nil {
		return fail(err)
	}
	return g, nil
}

// Draw renders chunks in the given order: one bind for the whole list, then
// per chunk one matrix upload and one draw.
func (r *Renderer) Draw(chunks []*chunk.Geometry, cam Viewer, viewportHeight, viewportWidth int) error {
	if len(chunks) == 0 {
		return nil
	}
	defer profiling.Track("chunks.Draw")()

	viewProj := r.lens.Projection(viewportWidth, viewportHeight).Mul4(cam.View())
	return r.program.Bind(func(c *graphics.RenderContext) error {
		c.SetSampler(r.sampler, AtlasUnit)
		for _, g := range chunks {
			c.SetMatrix4(r.matrix, viewProj.Mul4(mgl32.Translate3D(g.Offset[0], g.Offset[1], g.Offset[2])))
			if err := c.RenderRange(0, g.VertexCount, g.Position, g.Normal, g.UV); err != nil {
				return fmt.Errorf("chunk at %v: %w", g.Offset, err)
			}
		}
		return nil
	})
}

// Render implements renderer.Renderable.
func (r *Renderer) Render(f renderer.Frame) error {
	return r.Draw(f.Chunks, f.Player, f.Height, f.Width)
}

func (r *Renderer) Dispose() {
	if r.program != nil {
		r.program.Delete()
	}
}
