package main

// InputHandler handles all keyboard input processing.
// Pointer input goes through the GestureRecognizer instead.
type InputHandler struct {
	inputActions      InputActions
	inputState        InputState
	keybindingManager *KeybindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager) *InputHandler {
	return &InputHandler{
		inputActions:      inputActions,
		inputState:        inputState,
		keybindingManager: keybindingManager,
	}
}

// Actions in the order they are checked each frame; navigation comes last so
// a close in the same frame wins
var keyboardActionOrder = []string{
	"close",
	"help",
	"info",
	"fullscreen",
	"toggle_controls",
	"toggle_zoom",
	"toggle_favorite",
	"clear_favorites",
	"delete",
	"next",
	"previous",
	"jump_first",
	"jump_last",
}

// HandleInput processes all keyboard input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	if h.inputActions.GetTotalPhotosCount() == 0 {
		return false
	}

	// With help open, help and close both just dismiss it
	if h.inputState.IsShowingHelp() {
		if h.keybindingManager.CheckAction("help") || h.keybindingManager.CheckAction("close") {
			h.inputActions.ToggleHelp()
			return true
		}
		return false
	}

	inputProcessed := false
	for _, action := range keyboardActionOrder {
		inputProcessed = h.keybindingManager.ExecuteAction(action, h.inputActions, h.inputState) || inputProcessed
	}
	return inputProcessed
}
