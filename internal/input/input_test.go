package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestStrafe(t *testing.T) {
	tests := []struct {
		name  string
		keys  []glfw.Key
		wantZ int
		wantX int
	}{
		{"idle", nil, 0, 0},
		{"forward", []glfw.Key{glfw.KeyW}, -1, 0},
		{"backward arrow", []glfw.Key{glfw.KeyDown}, 1, 0},
		{"left", []glfw.Key{glfw.KeyA}, 0, -1},
		{"diagonal", []glfw.Key{glfw.KeyW, glfw.KeyD}, -1, 1},
		{"opposites cancel", []glfw.Key{glfw.KeyW, glfw.KeyS, glfw.KeyLeft}, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := NewInputManager()
			for _, k := range tt.keys {
				im.HandleKeyEvent(k, glfw.Press)
			}

			z, x := im.Strafe()
			assert.Equal(t, tt.wantZ, z)
			assert.Equal(t, tt.wantX, x)
		})
	}
}

func TestEdgesLastOneFrame(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	assert.True(t, im.JustPressed(ActionRelease))
	assert.True(t, im.IsActive(ActionRelease))

	im.PostUpdate()
	assert.False(t, im.JustPressed(ActionRelease))
	assert.True(t, im.IsActive(ActionRelease))

	// key repeat is not a new press
	im.HandleKeyEvent(glfw.KeyEscape, glfw.Repeat)
	assert.False(t, im.JustPressed(ActionRelease))

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Release)
	assert.False(t, im.IsActive(ActionRelease))

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	assert.True(t, im.JustPressed(ActionRelease))
}

func TestSharedActionHeldUntilLastKeyReleased(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	im.HandleKeyEvent(glfw.KeyUp, glfw.Release)

	assert.True(t, im.IsActive(ActionMoveForward))
	z, x := im.Strafe()
	assert.Equal(t, -1, z)
	assert.Equal(t, 0, x)

	// a stray release of a key that is not down changes nothing
	im.HandleKeyEvent(glfw.KeyUp, glfw.Release)
	assert.True(t, im.IsActive(ActionMoveForward))

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, im.IsActive(ActionMoveForward))
}

func TestSecondKeyIsNotANewPress(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)

	assert.False(t, im.JustPressed(ActionMoveForward))
}

func TestMouseCapture(t *testing.T) {
	im := NewInputManager()

	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	assert.True(t, im.JustPressed(ActionCapture))

	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	assert.False(t, im.IsActive(ActionRelease))
}

func TestBindExtraKey(t *testing.T) {
	im := NewInputManager()
	im.BindKey(glfw.KeyI, ActionMoveForward)
	im.BindKey(glfw.KeyI, ActionCount) // ignored

	im.HandleKeyEvent(glfw.KeyI, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.IsActive(ActionCount))
}
