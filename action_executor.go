package main

// ExecuteAction executes the given action using the InputActions interface.
// This is the single source of truth for all keyboard action execution logic.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "close":
		inputActions.Close()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpToPhoto(1)
	case "jump_last":
		total := inputActions.GetTotalPhotosCount()
		if total > 0 {
			inputActions.JumpToPhoto(total)
		}
	case "toggle_favorite":
		inputActions.ToggleFavorite()
	case "clear_favorites":
		inputActions.ClearFavorites()
	case "delete":
		// Deleting while the instructions cover the photo would act on an unseen photo
		if inputState.IsShowingInstructions() {
			return false
		}
		inputActions.DeleteCurrent()
	case "toggle_zoom":
		inputActions.ToggleZoom()
	case "toggle_controls":
		inputActions.ToggleControls()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	default:
		return false
	}

	return true
}
