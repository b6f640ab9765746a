package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionRelease // let go of the cursor, or quit when it is already free
	ActionCapture // grab the cursor for mouse look
	ActionCount   // Sentinel value for array sizing
)

// InputManager maps physical keys and buttons to actions and tracks their
// held and edge state between frames. An action stays active while any key
// or button bound to it is held.
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	heldKeys    map[glfw.Key]bool
	heldButtons map[glfw.MouseButton]bool
	holders     [ActionCount]int

	justPressed [ActionCount]bool
}

// NewInputManager creates an InputManager with WASD and arrow-key movement
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
		heldKeys:             make(map[glfw.Key]bool),
		heldButtons:          make(map[glfw.MouseButton]bool),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeyEscape, ActionRelease)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionCapture)

	return im
}

// BindKey binds a physical key to a logical action.
// Several keys may drive the same action.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent feeds a GLFW key event into the action state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	pressed := action == glfw.Press || action == glfw.Repeat

	im.mu.Lock()
	defer im.mu.Unlock()
	if im.heldKeys[key] == pressed {
		return
	}
	if pressed {
		im.heldKeys[key] = true
	} else {
		delete(im.heldKeys, key)
	}
	im.apply(im.keyToActions[key], pressed)
}

// HandleMouseButtonEvent feeds a GLFW mouse button event into the action state
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	pressed := action == glfw.Press

	im.mu.Lock()
	defer im.mu.Unlock()
	if im.heldButtons[button] == pressed {
		return
	}
	if pressed {
		im.heldButtons[button] = true
	} else {
		delete(im.heldButtons, button)
	}
	im.apply(im.mouseButtonToActions[button], pressed)
}

// apply counts one key or button going down or up. Caller holds mu.
func (im *InputManager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed {
			im.holders[act]++
			if im.holders[act] == 1 {
				im.justPressed[act] = true
			}
		} else if im.holders[act] > 0 {
			im.holders[act]--
		}
	}
}

// Attach installs key and mouse button callbacks on window
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
}

// PostUpdate clears edge flags. Call once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.justPressed = [ActionCount]bool{}
}

// IsActive returns true while the action is held
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.holders[action] > 0
}

// JustPressed returns true only in the frame the action went down
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// Strafe folds the movement actions into the -1/0/1 pair the camera takes:
// forward is -z, right is +x. Opposite keys cancel.
func (im *InputManager) Strafe() (strafeZ, strafeX int) {
	if im.IsActive(ActionMoveForward) {
		strafeZ--
	}
	if im.IsActive(ActionMoveBackward) {
		strafeZ++
	}
	if im.IsActive(ActionMoveLeft) {
		strafeX--
	}
	if im.IsActive(ActionMoveRight) {
		strafeX++
	}
	return strafeZ, strafeX
}
