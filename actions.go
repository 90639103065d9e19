package main

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Gestures    []string // pointer gestures bound to the same behaviour, for the help screen
	Description string
}

// actionDefinitions contains all action definitions with default keybindings and descriptions
var actionDefinitions = []ActionDefinition{
	{"close", []string{"Escape", "KeyQ"}, []string{}, "Back to the grid"},
	{"help", []string{"Shift+Slash"}, []string{}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide photo info"},
	{"next", []string{"ArrowRight", "Space", "KeyN"}, []string{"SwipeLeft"}, "Next photo (wraps to the first)"},
	{"previous", []string{"ArrowLeft", "Backspace", "KeyP"}, []string{"SwipeRight"}, "Previous photo (wraps to the last)"},
	{"jump_first", []string{"Home", "Shift+Comma"}, []string{}, "Jump to first photo"},
	{"jump_last", []string{"End", "Shift+Period"}, []string{}, "Jump to last photo"},
	{"toggle_favorite", []string{"KeyF"}, []string{}, "Add/remove favorite"},
	{"clear_favorites", []string{"Shift+KeyF"}, []string{}, "Clear all favorites"},
	{"delete", []string{"Delete", "Shift+KeyD"}, []string{}, "Delete photo"},
	{"toggle_zoom", []string{"KeyZ", "Key0"}, []string{"DoubleTap", "Pinch", "Wheel"}, "Toggle zoom (1x / 2.5x)"},
	{"toggle_controls", []string{"KeyC"}, []string{"Tap"}, "Show/hide controls"},
	{"fullscreen", []string{"Enter"}, []string{}, "Toggle fullscreen"},
}

// ActionExecutor provides centralized action execution logic
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keys := make([]string, len(action.Keys))
		copy(keys, action.Keys)
		keybindings[action.Name] = keys
	}
	return keybindings
}

// GetGestureBindings returns a map of action names to the gestures that trigger them
func GetGestureBindings() map[string][]string {
	gestures := make(map[string][]string)
	for _, action := range actionDefinitions {
		if len(action.Gestures) > 0 {
			gestures[action.Name] = action.Gestures
		}
	}
	return gestures
}
