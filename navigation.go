package main

import "math"

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationNone NavigationDirection = iota
	NavigationForward
	NavigationBackward
	NavigationJump
)

// NavigationDecision is the outcome of resolving a drag end
type NavigationDecision struct {
	Direction   NavigationDirection
	TargetIndex int
}

// Changed reports whether the displayed index must change
func (d NavigationDecision) Changed() bool {
	return d.Direction != NavigationNone
}

// NavigationController decides whether a finished drag moves to an adjacent photo.
// Gesture navigation stops at both ends of the collection.
type NavigationController struct{}

// NewNavigationController creates a new NavigationController
func NewNavigationController() *NavigationController {
	return &NavigationController{}
}

// shouldNavigate reports whether the drag qualifies as a swipe at all
func (nc *NavigationController) shouldNavigate(s ViewerState) bool {
	return s.Scale <= navigationScaleLimit && math.Abs(s.SwipeProgress) > swipeThreshold
}

// ResolveDragEnd returns the sprung-back state and the navigation decision
// for the photo at currentIndex in a collection of count photos.
func (nc *NavigationController) ResolveDragEnd(s ViewerState, currentIndex, count int) (ViewerState, NavigationDecision) {
	decision := NavigationDecision{Direction: NavigationNone, TargetIndex: currentIndex}

	swipeMode := s.Scale <= minScale
	if nc.shouldNavigate(s) {
		swipeMode = true
		switch {
		case s.SwipeProgress > swipeThreshold && currentIndex > 0:
			decision = NavigationDecision{Direction: NavigationBackward, TargetIndex: currentIndex - 1}
		case s.SwipeProgress < -swipeThreshold && currentIndex < count-1:
			decision = NavigationDecision{Direction: NavigationForward, TargetIndex: currentIndex + 1}
		}
	}

	s.SwipeProgress = 0
	s.Dragging = false
	// The pan of a zoomed photo stays where the drag left it
	if swipeMode {
		s.OffsetX = 0
		if s.Scale <= minScale {
			s.OffsetY = 0
		}
	}

	return s, decision
}

// wrapNext returns the index after idx, wrapping to the first photo
func wrapNext(idx, count int) int {
	if count <= 0 {
		return 0
	}
	return (idx + 1) % count
}

// wrapPrevious returns the index before idx, wrapping to the last photo
func wrapPrevious(idx, count int) int {
	if count <= 0 {
		return 0
	}
	return (idx - 1 + count) % count
}
