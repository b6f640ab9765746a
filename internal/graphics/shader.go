package graphics

import (
	"fmt"

	"konstructs/internal/logger"

	"go.uber.org/zap"
)

// AttributeID is a resolved vertex attribute location.
type AttributeID uint32

// UniformID is a resolved uniform location.
type UniformID int32

// Program is a linked shader program plus the locations resolved against it.
// Locations are looked up once and memoized, so repeated lookups of the same
// name always return the same id.
type Program struct {
	dev    Device
	name   string
	handle uint32
	vao    uint32

	attributes map[string]AttributeID
	uniforms   map[string]UniformID

	bound bool
	ctx   RenderContext
}

// NewProgram compiles and links a vertex/fragment pair. It fails with a
// *ShaderCompileError or *ShaderLinkError carrying the driver log.
func NewProgram(dev Device, name, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := dev.CompileShader(VertexStage, vertexSrc)
	if err != nil {
		return nil, nameProgram(err, name)
	}
	fs, err := dev.CompileShader(FragmentStage, fragmentSrc)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, nameProgram(err, name)
	}
	handle, err := dev.LinkProgram(vs, fs)
	if err != nil {
		return nil, nameProgram(err, name)
	}

	logger.Log.Debug("shader program linked", zap.String("program", name), zap.Uint32("handle", handle))

	return &Program{
		dev:        dev,
		name:       name,
		handle:     handle,
		vao:        dev.CreateVertexArray(),
		attributes: make(map[string]AttributeID),
		uniforms:   make(map[string]UniformID),
	}, nil
}

func nameProgram(err error, name string) error {
	switch e := err.(type) {
	case *ShaderCompileError:
		e.Program = name
	case *ShaderLinkError:
		e.Program = name
	default:
		return fmt.Errorf("program %q: %w", name, err)
	}
	return err
}

func (p *Program) Name() string { return p.name }

// AttributeID resolves a vertex attribute by name. An unknown name panics:
// the shader source is fixed by the caller, so it is a programming error.
func (p *Program) AttributeID(name string) AttributeID {
	if id, ok := p.attributes[name]; ok {
		return id
	}
	loc := p.dev.AttribLocation(p.handle, name)
	if loc < 0 {
		panic(fmt.Sprintf("graphics: program %q has no attribute %q", p.name, name))
	}
	id := AttributeID(loc)
	p.attributes[name] = id
	return id
}

// UniformID resolves a uniform by name. An unknown name panics.
func (p *Program) UniformID(name string) UniformID {
	if id, ok := p.uniforms[name]; ok {
		return id
	}
	loc := p.dev.UniformLocation(p.handle, name)
	if loc < 0 {
		panic(fmt.Sprintf("graphics: program %q has no uniform %q", p.name, name))
	}
	id := UniformID(loc)
	p.uniforms[name] = id
	return id
}

// Bind activates the program, runs fn with a context bound to it and
// deactivates the program again however fn exits. Binding a program that is
// already bound panics.
func (p *Program) Bind(fn func(c *RenderContext) error) error {
	if p.bound {
		panic(fmt.Sprintf("graphics: program %q bound twice", p.name))
	}
	p.bound = true
	p.dev.UseProgram(p.handle)
	p.dev.BindVertexArray(p.vao)

	p.ctx = RenderContext{dev: p.dev, program: p}
	defer func() {
		p.ctx.program = nil
		p.dev.BindVertexArray(0)
		p.dev.UseProgram(0)
		p.bound = false
	}()

	return fn(&p.ctx)
}

// Delete frees the program and its vertex array.
func (p *Program) Delete() {
	if p.handle == 0 {
		return
	}
	p.dev.DeleteVertexArray(p.vao)
	p.dev.DeleteProgram(p.handle)
	p.handle, p.vao = 0, 0
}
