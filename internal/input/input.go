package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical scene action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionPanLeft
	ActionPanRight
	ActionRaiseBlock
	ActionLowerBlock
	ActionToggleLighting
	ActionToggleSpotlight
	ActionToggleNormals
	ActionLightOrbitBack
	ActionLightOrbitForward
	ActionRotateWorldLeft
	ActionRotateWorldRight
	ActionReleasePointer
	ActionCapturePointer
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and buttons to logical actions and keeps
// per-action held state with edge detection.
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates an InputManager with the default key map
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyQ, ActionPanLeft)
	im.BindKey(glfw.KeyE, ActionPanRight)
	im.BindKey(glfw.KeyP, ActionRaiseBlock)
	im.BindKey(glfw.KeyO, ActionLowerBlock)
	im.BindKey(glfw.KeyL, ActionToggleLighting)
	im.BindKey(glfw.KeyK, ActionToggleSpotlight)
	im.BindKey(glfw.KeyN, ActionToggleNormals)
	im.BindKey(glfw.KeyLeft, ActionLightOrbitBack)
	im.BindKey(glfw.KeyRight, ActionLightOrbitForward)
	im.BindKey(glfw.KeyLeftBracket, ActionRotateWorldLeft)
	im.BindKey(glfw.KeyRightBracket, ActionRotateWorldRight)
	im.BindKey(glfw.KeyEscape, ActionReleasePointer)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionCapturePointer)

	return im
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent updates held state for the key's actions and returns the
// actions that fire now: on press and on every auto-repeat.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) []Action {
	im.mu.RLock()
	actions := im.keyToActions[key]
	im.mu.RUnlock()

	return im.update(actions, action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent is HandleKeyEvent for mouse buttons.
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) []Action {
	im.mu.RLock()
	actions := im.mouseButtonToActions[button]
	im.mu.RUnlock()

	return im.update(actions, action == glfw.Press)
}

func (im *InputManager) update(actions []Action, isPressed bool) []Action {
	if len(actions) == 0 {
		return nil
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	var fired []Action
	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
		if isPressed {
			fired = append(fired, act)
		}
	}
	return fired
}

// PostUpdate must be called at the end of each frame to reset edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}
