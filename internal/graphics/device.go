package graphics

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Primitive selects how DrawArrays assembles vertices.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// Device is the single funnel for GPU calls. Everything that touches the
// graphics API goes through it, and only Program, RenderContext, the buffer
// and texture constructors and the frame renderer hold one.
//
// Implementations are not safe for concurrent use: all calls must come from the
// thread that owns the GL context.
type Device interface {
	// Programs
	CompileShader(stage Stage, source string) (uint32, error)
	DeleteShader(shader uint32)
	LinkProgram(vertex, fragment uint32) (uint32, error)
	DeleteProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	UseProgram(program uint32)

	// Vertex state
	CreateVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	CreateBuffer(data []float32) (uint32, error)
	DeleteBuffer(vbo uint32)
	EnableAttribute(location, vbo uint32, components int32)
	DisableAttribute(location uint32)

	// Uniforms
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	UniformMatrix4(location int32, m *mgl32.Mat4)

	// Textures
	CreateTexture(img *image.RGBA) (uint32, error)
	DeleteTexture(tex uint32)
	BindTexture(unit int32, tex uint32)

	// Frame
	Configure()
	Viewport(width, height int)
	Clear(color mgl32.Vec4)
	DrawArrays(mode Primitive, first, count int32) error
	// CheckError reports any GPU error raised since the last check.
	CheckError(op string) error
}
