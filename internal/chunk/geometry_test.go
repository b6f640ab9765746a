package chunk

import (
	"testing"

	"konstructs/internal/graphics"
	"konstructs/internal/graphics/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buffers(t *testing.T, dev graphics.Device, vertices, uvVertices int) (pos, norm, uv *graphics.AttributeBuffer) {
	t.Helper()
	var err error
	pos, err = graphics.NewAttributeBuffer(dev, "position", 0, 3, make([]float32, 3*vertices))
	require.NoError(t, err)
	norm, err = graphics.NewAttributeBuffer(dev, "normal", 1, 3, make([]float32, 3*vertices))
	require.NoError(t, err)
	uv, err = graphics.NewAttributeBuffer(dev, "uv", 2, 2, make([]float32, 2*uvVertices))
	require.NoError(t, err)
	return pos, norm, uv
}

func newGeometry(t *testing.T, dev graphics.Device, offset mgl32.Vec3) *Geometry {
	t.Helper()
	pos, norm, uv := buffers(t, dev, 36, 36)
	g, err := New(offset, pos, norm, uv)
	require.NoError(t, err)
	return g
}

func TestNewRejectsMismatchedCounts(t *testing.T) {
	dev := gputest.NewRecorder()
	pos, norm, uv := buffers(t, dev, 36, 30)

	_, err := New(mgl32.Vec3{}, pos, norm, uv)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
	// caller still owns the buffers
	assert.Equal(t, 3, dev.LiveBuffers())
}

func TestNewRejectsMissingBuffer(t *testing.T) {
	dev := gputest.NewRecorder()
	pos, norm, _ := buffers(t, dev, 3, 3)

	_, err := New(mgl32.Vec3{}, pos, norm, nil)

	assert.Error(t, err)
}

func TestReleaseFreesOnLastOwner(t *testing.T) {
	dev := gputest.NewRecorder()
	g := newGeometry(t, dev, mgl32.Vec3{1, 2, 3})
	assert.Equal(t, 36, g.VertexCount)
	assert.Equal(t, 1, g.Refs())

	g.Retain()
	g.Release()
	assert.Equal(t, 3, dev.LiveBuffers())

	g.Release()
	assert.Equal(t, 0, dev.LiveBuffers())
	assert.Panics(t, func() { g.Release() })
}

func TestRetainAfterReleasePanics(t *testing.T) {
	dev := gputest.NewRecorder()
	g := newGeometry(t, dev, mgl32.Vec3{})
	g.Release()

	assert.Panics(t, func() { g.Retain() })
}

func TestWithOffsetSharesBuffers(t *testing.T) {
	dev := gputest.NewRecorder()
	g := newGeometry(t, dev, mgl32.Vec3{})

	inst := g.WithOffset(mgl32.Vec3{0, 0, -100})
	assert.Same(t, g.Position, inst.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, -100}, inst.Offset)
	assert.Equal(t, 2, g.Refs())

	g.Release()
	assert.Equal(t, 3, dev.LiveBuffers())

	inst.Release()
	assert.Equal(t, 0, dev.LiveBuffers())
}
