package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 768
	minWidth      = 320
	minHeight     = 240
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., img1, img2, img10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Keep the order photos were found in
)

const (
	defaultCacheSize    = 16
	maxCacheSize        = 64
	defaultPreloadCount = 2
	maxPreloadCount     = 8
	defaultHelpFontSize = 20.0
	minHelpFontSize     = 12.0
)

// validateKeybindings rejects unknown keys and keys bound to two actions
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if _, err := parseKeyString(keyStr); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth      int                 `json:"window_width"`
	WindowHeight     int                 `json:"window_height"`
	Fullscreen       bool                `json:"fullscreen"`
	SortMethod       int                 `json:"sort_method"`
	CacheSize        int                 `json:"cache_size"`
	PreloadEnabled   bool                `json:"preload_enabled"`
	PreloadCount     int                 `json:"preload_count"`
	HelpFontSize     float64             `json:"help_font_size"`
	ShowInstructions bool                `json:"show_instructions"`
	Keybindings      map[string][]string `json:"keybindings"`
	Pointer          PointerSettings     `json:"pointer"`
}

// defaultConfig returns the configuration used when no file exists
func defaultConfig() Config {
	return Config{
		WindowWidth:      defaultWidth,
		WindowHeight:     defaultHeight,
		Fullscreen:       false,
		SortMethod:       SortNatural,
		CacheSize:        defaultCacheSize,
		PreloadEnabled:   true,
		PreloadCount:     defaultPreloadCount,
		HelpFontSize:     defaultHelpFontSize,
		ShowInstructions: true, // first run explains the gestures
		Keybindings:      GetDefaultKeybindings(),
		Pointer:          GetDefaultPointerSettings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "photoview.json"
	}
	return filepath.Join(homeDir, ".photoview.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	if !isKnownSortMethod(config.SortMethod) {
		config.SortMethod = SortNatural
	}

	if config.CacheSize < 1 {
		config.CacheSize = defaultCacheSize
	} else if config.CacheSize > maxCacheSize {
		config.CacheSize = maxCacheSize
	}

	if config.PreloadCount < 1 {
		config.PreloadCount = defaultPreloadCount
	} else if config.PreloadCount > maxPreloadCount {
		config.PreloadCount = maxPreloadCount
	}

	if config.HelpFontSize < minHelpFontSize {
		config.HelpFontSize = defaultHelpFontSize
	}

	config.Pointer = validatePointerSettings(config.Pointer)

	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		for action, defaultKeys := range GetDefaultKeybindings() {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	result.Config = config
	return result
}

// validatePointerSettings replaces out of range values with defaults
func validatePointerSettings(s PointerSettings) PointerSettings {
	defaults := GetDefaultPointerSettings()
	if s.DoubleTapTime < 100 || s.DoubleTapTime > 1000 {
		s.DoubleTapTime = defaults.DoubleTapTime
	}
	if s.DragThreshold < 1 || s.DragThreshold > 64 {
		s.DragThreshold = defaults.DragThreshold
	}
	if s.WheelZoomStep <= 0 || s.WheelZoomStep > 1 {
		s.WheelZoomStep = defaults.WheelZoomStep
	}
	return s
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}

func saveConfig(config Config) {
	if err := saveConfigToPath(config, getConfigPath()); err != nil {
		log.Printf("Error: %v", err)
	}
}

func saveConfigToPath(config Config, configPath string) error {
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		return fmt.Errorf("not saving config with invalid window size %dx%d", config.WindowWidth, config.WindowHeight)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", configPath, err)
	}
	return nil
}
