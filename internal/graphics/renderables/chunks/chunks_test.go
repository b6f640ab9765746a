package chunks

import (
	"errors"
	"testing"

	"konstructs/internal/chunk"
	"konstructs/internal/graphics"
	"konstructs/internal/graphics/gputest"
	"konstructs/internal/graphics/renderer"
	"konstructs/internal/player"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) (*gputest.Recorder, *Renderer) {
	t.Helper()
	dev := gputest.NewRecorder()
	r := New(graphics.DefaultLens())
	require.NoError(t, r.Init(dev))
	return dev, r
}

func triangle(t testing.TB, r *Renderer, offset mgl32.Vec3) *chunk.Geometry {
	t.Helper()
	g, err := r.NewChunk(offset,
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		[]float32{0, 0, 1, 0, 0, 1},
	)
	require.NoError(t, err)
	return g
}

func TestDrawOneMatrixPerChunk(t *testing.T) {
	dev, r := setup(t)
	list := []*chunk.Geometry{
		triangle(t, r, mgl32.Vec3{3, -2, -15}),
		triangle(t, r, mgl32.Vec3{0, -2, -100}),
		triangle(t, r, mgl32.Vec3{16, 0, 0}),
	}
	dev.Reset()

	require.NoError(t, r.Draw(list, player.New(mgl32.Vec3{}, 0, 0, 0), 600, 800))

	// one bind for the whole list, plus the unbind
	assert.Equal(t, 2, dev.Count("UseProgram"))
	assert.Equal(t, 1, dev.Count("Uniform1i"))

	calls := dev.Filter("UniformMatrix4", "DrawArrays")
	require.Len(t, calls, 2*len(list))
	for i := 0; i < len(list); i++ {
		assert.Equal(t, "UniformMatrix4", calls[2*i].Op)
		assert.Equal(t, "DrawArrays", calls[2*i+1].Op)
		assert.Equal(t, int32(3), calls[2*i+1].Count)
	}
}

func TestDrawMatrixIsViewProjTimesOffset(t *testing.T) {
	dev, r := setup(t)
	cam := player.New(mgl32.Vec3{1, 2, 3}, 0.2, 0.9, 0)
	offset := mgl32.Vec3{3, -2, -15}
	list := []*chunk.Geometry{triangle(t, r, offset)}
	dev.Reset()

	require.NoError(t, r.Draw(list, cam, 600, 800))

	want := graphics.DefaultLens().Projection(800, 600).
		Mul4(cam.View()).
		Mul4(mgl32.Translate3D(3, -2, -15))
	m := dev.Filter("UniformMatrix4")
	require.Len(t, m, 1)
	assert.True(t, m[0].Matrix.ApproxEqualThreshold(want, 1e-5))
}

func TestDrawKeepsListOrder(t *testing.T) {
	dev, r := setup(t)
	a := triangle(t, r, mgl32.Vec3{0, 0, -1})
	b := triangle(t, r, mgl32.Vec3{0, 0, -50})
	created := dev.Filter("CreateBuffer")
	require.Len(t, created, 6)
	dev.Reset()

	require.NoError(t, r.Draw([]*chunk.Geometry{b, a}, player.New(mgl32.Vec3{}, 0, 0, 0), 600, 800))

	// no depth sorting: b's buffers go first even though it is farther away
	enables := dev.Filter("EnableAttribute")
	require.Len(t, enables, 6)
	assert.Equal(t, created[3].Handle, enables[0].Handle)
	assert.Equal(t, created[0].Handle, enables[3].Handle)
	assert.Equal(t, int32(a.Position.Location()), enables[3].Location)
}

func TestDrawEmptyListBindsNothing(t *testing.T) {
	dev, r := setup(t)
	dev.Reset()

	require.NoError(t, r.Draw(nil, player.New(mgl32.Vec3{}, 0, 0, 0), 600, 800))

	assert.Empty(t, dev.Calls)
}

func TestDrawFailureNamesChunk(t *testing.T) {
	dev, r := setup(t)
	list := []*chunk.Geometry{triangle(t, r, mgl32.Vec3{7, 8, 9})}
	dev.DrawCode = 0x0505

	err := r.Draw(list, player.New(mgl32.Vec3{}, 0, 0, 0), 600, 800)

	var renderErr *graphics.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, err.Error(), "[7 8 9]")
	assert.Equal(t, uint32(0), dev.CurrentProgram())
}

func TestNewChunkMismatchFreesBuffers(t *testing.T) {
	dev, r := setup(t)

	_, err := r.NewChunk(mgl32.Vec3{},
		make([]float32, 9),
		make([]float32, 9),
		make([]float32, 4),
	)

	require.Error(t, err)
	assert.Equal(t, 0, dev.LiveBuffers())
}

func TestNewChunkAllocationFailureFreesBuffers(t *testing.T) {
	dev, r := setup(t)
	dev.BufferErr = errors.New("no memory")

	_, err := r.NewChunk(mgl32.Vec3{}, make([]float32, 9), make([]float32, 9), make([]float32, 6))

	require.Error(t, err)
	assert.Equal(t, 0, dev.LiveBuffers())
}

func TestRenderUsesFrame(t *testing.T) {
	dev, r := setup(t)
	g := triangle(t, r, mgl32.Vec3{})
	dev.Reset()

	err := r.Render(renderer.Frame{
		Player: player.New(mgl32.Vec3{}, 0, 0, 0),
		Chunks: []*chunk.Geometry{g, g},
		Width:  1024,
		Height: 768,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, dev.Count("DrawArrays"))
}

func TestDispose(t *testing.T) {
	dev, r := setup(t)
	r.Dispose()
	assert.Equal(t, 0, dev.LivePrograms())
}

func TestDrawAllocationsDoNotGrowWithChunks(t *testing.T) {
	dev, r := setup(t)
	cam := player.New(mgl32.Vec3{}, 0, 0, 0)
	one := []*chunk.Geometry{triangle(t, r, mgl32.Vec3{})}
	many := make([]*chunk.Geometry, 100)
	for i := range many {
		many[i] = triangle(t, r, mgl32.Vec3{float32(i), 0, 0})
	}
	dev.Discard = true

	allocs := func(list []*chunk.Geometry) float64 {
		return testing.AllocsPerRun(50, func() {
			if err := r.Draw(list, cam, 768, 1024); err != nil {
				t.Fatal(err)
			}
		})
	}

	assert.LessOrEqual(t, allocs(many), allocs(one))
}

func BenchmarkDraw(b *testing.B) {
	dev, r := setup(b)
	list := make([]*chunk.Geometry, 64)
	for i := range list {
		list[i] = triangle(b, r, mgl32.Vec3{float32(i), 0, 0})
	}
	cam := player.New(mgl32.Vec3{}, 0, 0, 0)

	dev.Discard = true

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Draw(list, cam, 768, 1024); err != nil {
			b.Fatal(err)
		}
	}
}
