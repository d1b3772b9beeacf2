package game

import (
	"voxelscene/internal/input"
	"voxelscene/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// sceneCommands maps input actions onto scene commands. Pointer capture
// actions are handled by the session instead.
var sceneCommands = map[input.Action]scene.Command{
	input.ActionMoveForward:       scene.CmdMoveForward,
	input.ActionMoveBackward:      scene.CmdMoveBackward,
	input.ActionMoveLeft:          scene.CmdMoveLeft,
	input.ActionMoveRight:         scene.CmdMoveRight,
	input.ActionPanLeft:           scene.CmdPanLeft,
	input.ActionPanRight:          scene.CmdPanRight,
	input.ActionRaiseBlock:        scene.CmdRaiseBlock,
	input.ActionLowerBlock:        scene.CmdLowerBlock,
	input.ActionToggleLighting:    scene.CmdToggleLighting,
	input.ActionToggleSpotlight:   scene.CmdToggleSpotlight,
	input.ActionToggleNormals:     scene.CmdToggleNormals,
	input.ActionLightOrbitBack:    scene.CmdLightOrbitBack,
	input.ActionLightOrbitForward: scene.CmdLightOrbitForward,
	input.ActionRotateWorldLeft:   scene.CmdRotateWorldLeft,
	input.ActionRotateWorldRight:  scene.CmdRotateWorldRight,
}

// CommandFor returns the scene command bound to an action, or CmdNone.
func CommandFor(a input.Action) scene.Command {
	if cmd, ok := sceneCommands[a]; ok {
		return cmd
	}
	return scene.CmdNone
}

// dispatch applies fired actions to the session in order.
func dispatch(s *Session, im *input.InputManager, fired []input.Action) {
	for _, a := range fired {
		switch a {
		case input.ActionReleasePointer:
			s.SetCaptured(false)
		case input.ActionCapturePointer:
			if !s.Captured() {
				s.SetCaptured(true)
			}
		default:
			s.Scene.Apply(CommandFor(a))
		}
	}
	// Holding an orbit key suspends the automatic light animation.
	s.Scene.SetLightDragging(im.IsActive(input.ActionLightOrbitBack) || im.IsActive(input.ActionLightOrbitForward))
}

// SetupInputHandlers installs the window callbacks. Key and button events
// are applied to the scene as they arrive.
func SetupInputHandlers(app *App) {
	window := app.window
	im := app.inputManager
	s := app.session

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		dispatch(s, im, im.HandleKeyEvent(key, action))
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		dispatch(s, im, im.HandleMouseButtonEvent(button, action))
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if dx, dy, ok := s.pointerMoved(xpos, ypos); ok {
			s.Scene.PointerDelta(dx, dy)
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		s.Renderer.UpdateViewport(fbWidth, fbHeight)
	})

	// Losing focus releases the pointer so the cursor is usable elsewhere.
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			s.SetCaptured(false)
		}
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		app.RefreshRender()
	})
}
