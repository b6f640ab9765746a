package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopN(t *testing.T) {
	ResetFrame()
	defer ResetFrame()

	Add("chunks.Draw", 4200*time.Microsecond)
	Add("crosshair.Render", 100*time.Microsecond)
	Add("cube.Render", 100*time.Microsecond)
	Add("renderer.Render", 5*time.Millisecond)
	Add("chunks.Draw", 100*time.Microsecond)

	assert.Equal(t, "renderer.Render:5.0ms, chunks.Draw:4.3ms, crosshair.Render:0.1ms", TopN(3))
	assert.Equal(t, "", TopN(0))
	assert.Len(t, Snapshot(), 4)
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	defer ResetFrame()

	Add("chunks.Draw", time.Millisecond)
	Add("chunks.Upload", 2*time.Millisecond)
	Add("crosshair.Render", 5*time.Millisecond)

	assert.Equal(t, 3*time.Millisecond, SumWithPrefix("chunks."))
	assert.Equal(t, time.Duration(0), SumWithPrefix("hud."))
}

func TestTrack(t *testing.T) {
	ResetFrame()
	defer ResetFrame()

	stop := Track("work")
	time.Sleep(time.Millisecond)
	stop()

	assert.GreaterOrEqual(t, Snapshot()["work"], time.Millisecond)

	ResetFrame()
	assert.Empty(t, Snapshot())
}
