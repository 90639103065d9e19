package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyTable maps config key names to Ebiten keys. It is also the set of
// names the config validator accepts.
var keyTable = buildKeyTable()

func buildKeyTable() map[string]ebiten.Key {
	table := map[string]ebiten.Key{
		"Space":      ebiten.KeySpace,
		"Backspace":  ebiten.KeyBackspace,
		"Delete":     ebiten.KeyDelete,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"Home":       ebiten.KeyHome,
		"End":        ebiten.KeyEnd,
		"PageUp":     ebiten.KeyPageUp,
		"PageDown":   ebiten.KeyPageDown,
		"ArrowUp":    ebiten.KeyArrowUp,
		"ArrowDown":  ebiten.KeyArrowDown,
		"ArrowLeft":  ebiten.KeyArrowLeft,
		"ArrowRight": ebiten.KeyArrowRight,

		"Comma":     ebiten.KeyComma,
		"Period":    ebiten.KeyPeriod,
		"Slash":     ebiten.KeySlash,
		"Semicolon": ebiten.KeySemicolon,
		"Quote":     ebiten.KeyQuote,
		"Minus":     ebiten.KeyMinus,
		"Equal":     ebiten.KeyEqual,

		"NumpadEnter": ebiten.KeyNumpadEnter,
	}

	letters := []ebiten.Key{
		ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
		ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
		ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
		ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
		ebiten.KeyY, ebiten.KeyZ,
	}
	for i, k := range letters {
		table["Key"+string(rune('A'+i))] = k
	}

	digits := []ebiten.Key{
		ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
		ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
	}
	numpad := []ebiten.Key{
		ebiten.KeyNumpad0, ebiten.KeyNumpad1, ebiten.KeyNumpad2, ebiten.KeyNumpad3, ebiten.KeyNumpad4,
		ebiten.KeyNumpad5, ebiten.KeyNumpad6, ebiten.KeyNumpad7, ebiten.KeyNumpad8, ebiten.KeyNumpad9,
	}
	for i := range digits {
		table[fmt.Sprintf("Key%d", i)] = digits[i]
		table[fmt.Sprintf("Numpad%d", i)] = numpad[i]
	}

	return table
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseKeyString parses a key string like "Shift+KeyD" into a KeyCombination
func parseKeyString(keyStr string) (KeyCombination, error) {
	var combination KeyCombination
	if keyStr == "" {
		return combination, fmt.Errorf("empty key string")
	}

	parts := strings.Split(keyStr, "+")
	keyName := parts[len(parts)-1]
	key, ok := keyTable[keyName]
	if !ok {
		return combination, fmt.Errorf("unknown key: %s", keyName)
	}
	combination.Key = key

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return combination, fmt.Errorf("unknown modifier: %s", modifier)
		}
	}

	return combination, nil
}

// modifiersMatch requires the pressed modifiers to be exactly the bound ones
func modifiersMatch(c KeyCombination) bool {
	return c.Shift == ebiten.IsKeyPressed(ebiten.KeyShift) &&
		c.Ctrl == ebiten.IsKeyPressed(ebiten.KeyControl) &&
		c.Alt == ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// KeybindingManager handles dynamic keybinding processing
type KeybindingManager struct {
	keybindings map[string][]string
	parsed      map[string][]KeyCombination
}

// NewKeybindingManager creates a new KeybindingManager
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.UpdateKeybindings(keybindings)
	return km
}

// UpdateKeybindings replaces the bindings; unparsable entries are skipped
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	km.keybindings = keybindings
	km.parsed = make(map[string][]KeyCombination, len(keybindings))
	for action, keys := range keybindings {
		for _, keyStr := range keys {
			combination, err := parseKeyString(keyStr)
			if err != nil {
				debugLog("Skipping keybinding %q for %s: %v", keyStr, action, err)
				continue
			}
			km.parsed[action] = append(km.parsed[action], combination)
		}
	}
}

// CheckAction checks if any keybinding for the given action was just pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, combination := range km.parsed[action] {
		if inpututil.IsKeyJustPressed(combination.Key) && modifiersMatch(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !km.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}
