package cube

import (
	"testing"

	"konstructs/internal/geometry"
	"konstructs/internal/graphics"
	"konstructs/internal/graphics/gputest"
	"konstructs/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSkipsWithoutCubes(t *testing.T) {
	dev := gputest.NewRecorder()
	c := NewCube()
	require.NoError(t, c.Init(dev))
	dev.Reset()

	require.NoError(t, c.Render(renderer.Frame{Width: 800, Height: 600}))

	assert.Empty(t, dev.Calls)
}

func TestDrawSetsProjectionOnce(t *testing.T) {
	dev := gputest.NewRecorder()
	c := NewCube()
	require.NoError(t, c.Init(dev))
	require.NoError(t, c.Add(geometry.Box(mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{10, 10, 0.9}), 0.25))
	require.NoError(t, c.Add(geometry.Box(mgl32.Vec3{20, 0, 0.5}, mgl32.Vec3{30, 10, 0.9}), 0.75))
	dev.Reset()

	require.NoError(t, c.Render(renderer.Frame{Width: 800, Height: 600}))

	m := dev.Filter("UniformMatrix4")
	require.Len(t, m, 1)
	assert.Equal(t, graphics.Projection2D(800, 600), m[0].Matrix)

	calls := dev.Filter("Uniform1f", "DrawArrays")
	require.Len(t, calls, 4)
	assert.Equal(t, float32(0.25), calls[0].Float)
	assert.Equal(t, int32(geometry.VerticesPerBlock), calls[1].Count)
	assert.Equal(t, float32(0.75), calls[2].Float)

	c.Dispose()
	assert.Equal(t, 0, dev.LiveBuffers())
	assert.Equal(t, 0, dev.LivePrograms())
}
