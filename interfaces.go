package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	IsFullscreen() bool

	// Displayed photo
	GetCurrentPhoto() (int, Photo, bool)
	GetAdjacentPhoto(offset int) (Photo, bool) // no wrap; false past either end
	GetPhotoImage(url string) *ebiten.Image
	GetPhotoInfo() (PhotoInfo, error)
	GetTotalPhotosCount() int
	GetFavoriteCount() int

	// Gesture state and its animated rendition
	GetViewerState() ViewerState
	GetAnimator() *Animator

	// UI state
	IsShowingInstructions() bool
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetGestureBindings() map[string][]string
}

// RenderStateSnapshot captures what can change the picture without any input:
// the overlay message expiring, the controls auto-hiding, a resize, or the
// collection moving underneath the viewer.
type RenderStateSnapshot struct {
	OverlayMessage     string
	OverlayMessageTime time.Time

	ControlsVisible bool
	PhotoIndex      int
	PhotoID         string
	PhotoCount      int

	WindowWidth  int
	WindowHeight int
}

// NewRenderStateSnapshot creates a lightweight snapshot of non-input state
func NewRenderStateSnapshot(state RenderState, windowWidth, windowHeight int) *RenderStateSnapshot {
	idx, photo, _ := state.GetCurrentPhoto()
	return &RenderStateSnapshot{
		OverlayMessage:     state.GetOverlayMessage(),
		OverlayMessageTime: state.GetOverlayMessageTime(),
		ControlsVisible:    state.GetViewerState().ControlsVisible,
		PhotoIndex:         idx,
		PhotoID:            photo.ID,
		PhotoCount:         state.GetTotalPhotosCount(),
		WindowWidth:        windowWidth,
		WindowHeight:       windowHeight,
	}
}

func isOverlayActive(message string, messageTime time.Time) bool {
	return message != "" && time.Since(messageTime) < overlayMessageDuration
}

// Equals checks if two snapshots would draw the same frame
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}

	// Compare overlay states semantically rather than exact time values
	sActive := isOverlayActive(s.OverlayMessage, s.OverlayMessageTime)
	otherActive := isOverlayActive(other.OverlayMessage, other.OverlayMessageTime)
	overlayEqual := sActive == otherActive && s.OverlayMessage == other.OverlayMessage
	if sActive && otherActive {
		overlayEqual = overlayEqual && s.OverlayMessageTime.Equal(other.OverlayMessageTime)
	}

	return overlayEqual &&
		s.ControlsVisible == other.ControlsVisible &&
		s.PhotoIndex == other.PhotoIndex &&
		s.PhotoID == other.PhotoID &&
		s.PhotoCount == other.PhotoCount &&
		s.WindowWidth == other.WindowWidth &&
		s.WindowHeight == other.WindowHeight
}

// InputActions provides action methods for the keyboard handler
type InputActions interface {
	// Session control
	Close()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()
	ToggleControls()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpToPhoto(n int) // 1-based

	// Photo commands
	ToggleFavorite()
	ClearFavorites()
	DeleteCurrent()
	ToggleZoom()

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetTotalPhotosCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsShowingInstructions() bool
	IsShowingHelp() bool
}
