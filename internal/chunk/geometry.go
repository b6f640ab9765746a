package chunk

import (
	"fmt"
	"sync/atomic"

	"konstructs/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is one meshed chunk ready to draw: a world offset and three
// attribute streams of equal length. It is read-only once built and may be
// shared by several owners (registry, render lists, passes); the GPU buffers
// are freed when the last owner calls Release.
type Geometry struct {
	Offset      mgl32.Vec3
	Position    *graphics.AttributeBuffer
	Normal      *graphics.AttributeBuffer
	UV          *graphics.AttributeBuffer
	VertexCount int

	refs   atomic.Int32
	parent *Geometry // buffers borrowed from parent, see WithOffset
}

// New takes ownership of the three buffers. It fails, without freeing them,
// when their vertex counts differ; nothing is truncated.
func New(offset mgl32.Vec3, position, normal, uv *graphics.AttributeBuffer) (*Geometry, error) {
	if position == nil || normal == nil || uv == nil {
		return nil, fmt.Errorf("chunk at %v: missing attribute buffer", offset)
	}
	n := position.Len()
	if normal.Len() != n || uv.Len() != n {
		return nil, fmt.Errorf("chunk at %v: vertex count mismatch (position %d, normal %d, uv %d)",
			offset, n, normal.Len(), uv.Len())
	}
	g := &Geometry{
		Offset:      offset,
		Position:    position,
		Normal:      normal,
		UV:          uv,
		VertexCount: n,
	}
	g.refs.Store(1)
	return g, nil
}

// Retain adds an owner and returns g for chaining.
func (g *Geometry) Retain() *Geometry {
	if g.refs.Add(1) <= 1 {
		panic("chunk: Retain on released geometry")
	}
	return g
}

// Release drops an owner. The last release deletes the GPU buffers.
func (g *Geometry) Release() {
	switch n := g.refs.Add(-1); {
	case n == 0 && g.parent != nil:
		g.parent.Release()
	case n == 0:
		g.Position.Delete()
		g.Normal.Delete()
		g.UV.Delete()
	case n < 0:
		panic("chunk: geometry released more times than retained")
	}
}

// Refs reports the current owner count.
func (g *Geometry) Refs() int { return int(g.refs.Load()) }

// WithOffset returns a second chunk that draws the same buffers at another
// offset. The buffers are freed only after both chunks are released.
func (g *Geometry) WithOffset(offset mgl32.Vec3) *Geometry {
	g.Retain()
	inst := &Geometry{
		Offset:      offset,
		Position:    g.Position,
		Normal:      g.Normal,
		UV:          g.UV,
		VertexCount: g.VertexCount,
	}
	inst.refs.Store(1)
	inst.parent = g
	return inst
}
