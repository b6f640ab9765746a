package graphics

import (
	"errors"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice implements Device on top of an OpenGL 4.1 core context. The
// context must be current on the calling thread.
type GLDevice struct {
	// checkDraws polls glGetError after every draw instead of once per frame.
	checkDraws bool
}

// NewGLDevice loads the GL function pointers for the current context. With
// debug set every draw is checked for errors; otherwise errors surface from
// CheckError.
func NewGLDevice(debug bool) (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, &ResourceError{Resource: "gl context", Err: err}
	}
	return &GLDevice{checkDraws: debug}, nil
}

// Version returns the driver's GL version string.
func (d *GLDevice) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *GLDevice) CompileShader(stage Stage, source string) (uint32, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == FragmentStage {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, &ShaderCompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

func (d *GLDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GLDevice) LinkProgram(vertex, fragment uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	// shaders are owned by the program from here on
	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, &ShaderLinkError{Log: log}
	}
	return program, nil
}

func (d *GLDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GLDevice) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *GLDevice) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GLDevice) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *GLDevice) CreateBuffer(data []float32) (uint32, error) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, errors.New("glGenBuffers returned no name")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &vbo)
		return 0, &RenderError{Op: "glBufferData", Code: code}
	}
	return vbo, nil
}

func (d *GLDevice) DeleteBuffer(vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
}

func (d *GLDevice) EnableAttribute(location, vbo uint32, components int32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointerWithOffset(location, components, gl.FLOAT, false, components*4, 0)
}

func (d *GLDevice) DisableAttribute(location uint32) {
	gl.DisableVertexAttribArray(location)
}

func (d *GLDevice) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *GLDevice) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *GLDevice) UniformMatrix4(location int32, m *mgl32.Mat4) {
	// mgl32 matrices are column-major already
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *GLDevice) CreateTexture(img *image.RGBA) (uint32, error) {
	var texture uint32
	gl.GenTextures(1, &texture)
	if texture == 0 {
		return 0, errors.New("glGenTextures returned no name")
	}
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	size := img.Rect.Size()
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &texture)
		return 0, &RenderError{Op: "glTexImage2D", Code: code}
	}
	return texture, nil
}

func (d *GLDevice) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (d *GLDevice) BindTexture(unit int32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *GLDevice) Configure() {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
}

func (d *GLDevice) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *GLDevice) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GLDevice) DrawArrays(mode Primitive, first, count int32) error {
	glMode := uint32(gl.TRIANGLES)
	if mode == Lines {
		glMode = gl.LINES
	}
	gl.DrawArrays(glMode, first, count)
	if !d.checkDraws {
		return nil
	}
	return d.CheckError("glDrawArrays")
}

func (d *GLDevice) CheckError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return &RenderError{Op: op, Code: code}
	}
	return nil
}
