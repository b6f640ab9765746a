package renderer_test

import (
	"errors"
	"testing"

	"konstructs/internal/graphics"
	"konstructs/internal/graphics/gputest"
	"konstructs/internal/graphics/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderable struct {
	name    string
	initErr error
	log     *[]string
	frames  []renderer.Frame
}

func (f *fakeRenderable) Init(graphics.Device) error {
	*f.log = append(*f.log, "init "+f.name)
	return f.initErr
}

func (f *fakeRenderable) Render(frame renderer.Frame) error {
	*f.log = append(*f.log, "render "+f.name)
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeRenderable) Dispose() {
	*f.log = append(*f.log, "dispose "+f.name)
}

func TestNewRendererInitFailureDisposesEarlier(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	a := &fakeRenderable{name: "a", log: &log}
	b := &fakeRenderable{name: "b", log: &log}
	c := &fakeRenderable{name: "c", log: &log, initErr: boom}
	d := &fakeRenderable{name: "d", log: &log}

	_, err := renderer.NewRenderer(gputest.NewRecorder(), 800, 600, a, b, c, d)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"init a", "init b", "init c", "dispose b", "dispose a"}, log)
}

func TestRenderClearsThenDrawsInOrder(t *testing.T) {
	var log []string
	dev := gputest.NewRecorder()
	a := &fakeRenderable{name: "a", log: &log}
	b := &fakeRenderable{name: "b", log: &log}

	r, err := renderer.NewRenderer(dev, 800, 600, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"Configure", "Viewport"}, dev.Ops())

	log = log[:0]
	dev.Reset()
	require.NoError(t, r.Render(renderer.Frame{Width: 1, Height: 1}))

	assert.Equal(t, []string{"Clear", "CheckError"}, dev.Ops())
	assert.Equal(t, []string{"render a", "render b"}, log)
	require.Len(t, a.frames, 1)
	// the renderer's viewport wins over the frame's
	assert.Equal(t, 800, a.frames[0].Width)
	assert.Equal(t, 600, a.frames[0].Height)

	r.Dispose()
	assert.Equal(t, []string{"render a", "render b", "dispose b", "dispose a"}, log)
}

func TestRenderReportsGPUErrorOncePerFrame(t *testing.T) {
	var log []string
	dev := gputest.NewRecorder()
	r, err := renderer.NewRenderer(dev, 800, 600,
		&fakeRenderable{name: "a", log: &log},
		&fakeRenderable{name: "b", log: &log})
	require.NoError(t, err)
	dev.Reset()
	dev.FrameCode = 0x0505

	err = r.Render(renderer.Frame{})

	var renderErr *graphics.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "frame", renderErr.Op)
	assert.Equal(t, uint32(0x0505), renderErr.Code)
	assert.Equal(t, 1, dev.Count("CheckError"))

	// the error is consumed by the check
	assert.NoError(t, r.Render(renderer.Frame{}))
}

func TestSetViewportIgnoresMinimized(t *testing.T) {
	dev := gputest.NewRecorder()
	r, err := renderer.NewRenderer(dev, 800, 600)
	require.NoError(t, err)

	r.SetViewport(0, 0)
	w, h := r.Viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	r.SetViewport(1024, 768)
	w, h = r.Viewport()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	vp := dev.Filter("Viewport")
	require.Len(t, vp, 2)
	assert.Equal(t, int32(1024), vp[1].First)
	assert.Equal(t, int32(768), vp[1].Count)
}
