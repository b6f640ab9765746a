// Package gputest provides a graphics.Device that records calls instead of
// talking to a GPU, for tests that need to check draw sequences.
package gputest

import (
	"errors"
	"image"
	"regexp"

	"konstructs/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded device call. Only the fields relevant to Op are set.
type Call struct {
	Op       string
	Handle   uint32 // program, buffer, vertex array or texture
	Location int32
	Float    float32
	Int      int32
	Matrix   mgl32.Mat4
	Mode     graphics.Primitive
	First    int32
	Count    int32
}

var (
	attribRe  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+\w+\s+(\w+)\s*;`)
	uniformRe = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
)

type program struct {
	attributes map[string]int32
	uniforms   map[string]int32
}

// Recorder implements graphics.Device. Attribute and uniform locations are
// derived from the declarations in the compiled sources, numbered in order of
// appearance, so lookups of undeclared names return -1 like a real driver.
type Recorder struct {
	Calls []Call

	// Discard drops calls instead of appending them, for allocation tests.
	Discard bool

	// Failure injection.
	CompileLog map[graphics.Stage]string // non-empty log fails that stage
	LinkLog    string
	BufferErr  error
	DrawCode   uint32 // non-zero fails every draw with this code
	FrameCode  uint32 // non-zero is reported by the next CheckError

	// Lookup counters, to check memoization.
	AttribLookups  int
	UniformLookups int

	next     uint32
	shaders  map[uint32]string
	programs map[uint32]*program
	buffers  map[uint32]int
	textures map[uint32]bool
	vaos     map[uint32]bool
	current  uint32
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		shaders:  make(map[uint32]string),
		programs: make(map[uint32]*program),
		buffers:  make(map[uint32]int),
		textures: make(map[uint32]bool),
		vaos:     make(map[uint32]bool),
	}
}

var _ graphics.Device = (*Recorder)(nil)

func (r *Recorder) name() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) record(c Call) {
	if r.Discard {
		return
	}
	r.Calls = append(r.Calls, c)
}

// Reset drops recorded calls but keeps resources.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Ops returns the recorded op names in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the calls of the given ops, in order.
func (r *Recorder) Filter(ops ...string) []Call {
	var out []Call
	for _, c := range r.Calls {
		for _, op := range ops {
			if c.Op == op {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// LiveBuffers returns the number of buffers created and not yet deleted.
func (r *Recorder) LiveBuffers() int { return len(r.buffers) }

// LiveShaders returns the number of compiled shaders not yet linked or deleted.
func (r *Recorder) LiveShaders() int { return len(r.shaders) }

// LivePrograms returns the number of linked programs not yet deleted.
func (r *Recorder) LivePrograms() int { return len(r.programs) }

// BufferLen returns the float count uploaded to vbo, or -1 if it is not live.
func (r *Recorder) BufferLen(vbo uint32) int {
	n, ok := r.buffers[vbo]
	if !ok {
		return -1
	}
	return n
}

// CurrentProgram is the program most recently passed to UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.current }

func (r *Recorder) CompileShader(stage graphics.Stage, source string) (uint32, error) {
	if log := r.CompileLog[stage]; log != "" {
		return 0, &graphics.ShaderCompileError{Stage: stage, Log: log}
	}
	id := r.name()
	r.shaders[id] = source
	r.record(Call{Op: "CompileShader", Handle: id})
	return id, nil
}

func (r *Recorder) DeleteShader(shader uint32) {
	delete(r.shaders, shader)
	r.record(Call{Op: "DeleteShader", Handle: shader})
}

func (r *Recorder) LinkProgram(vertex, fragment uint32) (uint32, error) {
	vs, fs := r.shaders[vertex], r.shaders[fragment]
	delete(r.shaders, vertex)
	delete(r.shaders, fragment)
	if r.LinkLog != "" {
		return 0, &graphics.ShaderLinkError{Log: r.LinkLog}
	}

	p := &program{
		attributes: make(map[string]int32),
		uniforms:   make(map[string]int32),
	}
	for _, m := range attribRe.FindAllStringSubmatch(vs, -1) {
		p.attributes[m[1]] = int32(len(p.attributes))
	}
	for _, src := range []string{vs, fs} {
		for _, m := range uniformRe.FindAllStringSubmatch(src, -1) {
			if _, ok := p.uniforms[m[1]]; !ok {
				p.uniforms[m[1]] = int32(len(p.uniforms))
			}
		}
	}

	id := r.name()
	r.programs[id] = p
	r.record(Call{Op: "LinkProgram", Handle: id})
	return id, nil
}

func (r *Recorder) DeleteProgram(id uint32) {
	delete(r.programs, id)
	r.record(Call{Op: "DeleteProgram", Handle: id})
}

func (r *Recorder) AttribLocation(id uint32, name string) int32 {
	r.AttribLookups++
	if p, ok := r.programs[id]; ok {
		if loc, ok := p.attributes[name]; ok {
			return loc
		}
	}
	return -1
}

func (r *Recorder) UniformLocation(id uint32, name string) int32 {
	r.UniformLookups++
	if p, ok := r.programs[id]; ok {
		if loc, ok := p.uniforms[name]; ok {
			return loc
		}
	}
	return -1
}

func (r *Recorder) UseProgram(id uint32) {
	r.current = id
	r.record(Call{Op: "UseProgram", Handle: id})
}

func (r *Recorder) CreateVertexArray() uint32 {
	id := r.name()
	r.vaos[id] = true
	return id
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	delete(r.vaos, vao)
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record(Call{Op: "BindVertexArray", Handle: vao})
}

func (r *Recorder) CreateBuffer(data []float32) (uint32, error) {
	if r.BufferErr != nil {
		return 0, r.BufferErr
	}
	id := r.name()
	r.buffers[id] = len(data)
	r.record(Call{Op: "CreateBuffer", Handle: id, Count: int32(len(data))})
	return id, nil
}

func (r *Recorder) DeleteBuffer(vbo uint32) {
	delete(r.buffers, vbo)
	r.record(Call{Op: "DeleteBuffer", Handle: vbo})
}

func (r *Recorder) EnableAttribute(location, vbo uint32, components int32) {
	r.record(Call{Op: "EnableAttribute", Handle: vbo, Location: int32(location), Int: components})
}

func (r *Recorder) DisableAttribute(location uint32) {
	r.record(Call{Op: "DisableAttribute", Location: int32(location)})
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.record(Call{Op: "Uniform1f", Handle: r.current, Location: location, Float: v})
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.record(Call{Op: "Uniform1i", Handle: r.current, Location: location, Int: v})
}

func (r *Recorder) UniformMatrix4(location int32, m *mgl32.Mat4) {
	r.record(Call{Op: "UniformMatrix4", Handle: r.current, Location: location, Matrix: *m})
}

func (r *Recorder) CreateTexture(img *image.RGBA) (uint32, error) {
	if img == nil || img.Rect.Empty() {
		return 0, errors.New("empty image")
	}
	id := r.name()
	r.textures[id] = true
	r.record(Call{Op: "CreateTexture", Handle: id})
	return id, nil
}

func (r *Recorder) DeleteTexture(tex uint32) {
	delete(r.textures, tex)
	r.record(Call{Op: "DeleteTexture", Handle: tex})
}

func (r *Recorder) BindTexture(unit int32, tex uint32) {
	r.record(Call{Op: "BindTexture", Handle: tex, Int: unit})
}

func (r *Recorder) Configure() {
	r.record(Call{Op: "Configure"})
}

func (r *Recorder) Viewport(width, height int) {
	r.record(Call{Op: "Viewport", First: int32(width), Count: int32(height)})
}

func (r *Recorder) Clear(color mgl32.Vec4) {
	r.record(Call{Op: "Clear"})
}

func (r *Recorder) DrawArrays(mode graphics.Primitive, first, count int32) error {
	r.record(Call{Op: "DrawArrays", Handle: r.current, Mode: mode, First: first, Count: count})
	if r.DrawCode != 0 {
		return &graphics.RenderError{Op: "glDrawArrays", Code: r.DrawCode}
	}
	return nil
}

func (r *Recorder) CheckError(op string) error {
	r.record(Call{Op: "CheckError"})
	if code := r.FrameCode; code != 0 {
		r.FrameCode = 0
		return &graphics.RenderError{Op: op, Code: code}
	}
	return nil
}
