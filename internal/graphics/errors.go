package graphics

import (
	"fmt"
	"strings"
)

// Stage names a shader stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ShaderCompileError reports a stage that failed to compile. Log holds the
// driver's info log.
type ShaderCompileError struct {
	Program string
	Stage   Stage
	Log     string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("program %q: failed to compile %s shader: %s", e.Program, e.Stage, trimLog(e.Log))
}

// ShaderLinkError reports a program that compiled but failed to link.
type ShaderLinkError struct {
	Program string
	Log     string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("program %q: failed to link: %s", e.Program, trimLog(e.Log))
}

// ResourceError reports a GPU allocation that could not be satisfied.
type ResourceError struct {
	Resource string
	Err      error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("allocate %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// RenderError reports a failed draw call. It means the context is no longer
// usable.
type RenderError struct {
	Op   string
	Code uint32
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: gl error 0x%x", e.Op, e.Code)
}

// info logs come back NUL padded
func trimLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}
