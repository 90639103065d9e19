package main

import (
	"math"
	"time"
)

// Gesture contract constants
const (
	minScale       = 1.0
	maxScale       = 4.0
	doubleTapScale = 2.5

	// Drag end navigates only when the photo is (almost) unzoomed and the
	// swipe covered more than this fraction of the viewport width
	navigationScaleLimit = 1.05
	swipeThreshold       = 0.3

	controlsHideDelay    = 3000 * time.Millisecond
	controlsFadeDuration = 300 * time.Millisecond
)

// Viewport is the size of the rendering surface in pixels
type Viewport struct {
	Width  float64
	Height float64
}

// ViewerState is the discrete transform and overlay state of one viewer session.
// The render pipeline only reads it.
type ViewerState struct {
	Scale           float64
	OffsetX         float64
	OffsetY         float64
	SwipeProgress   float64 // signed fraction of the viewport width
	ControlsVisible bool
	DragOrigin      float64 // OffsetX captured at drag start
	Dragging        bool
}

// NewViewerState returns the state shown when a photo is first displayed
func NewViewerState() ViewerState {
	return ViewerState{
		Scale:           minScale,
		ControlsVisible: true,
	}
}

// Reset returns the state to rest after the displayed photo changed.
// Controls visibility is left to the caller.
func (s ViewerState) Reset() ViewerState {
	s.Scale = minScale
	s.OffsetX = 0
	s.OffsetY = 0
	s.SwipeProgress = 0
	s.DragOrigin = 0
	s.Dragging = false
	return s
}

// IsZoomed reports whether the photo is scaled above 1
func (s ViewerState) IsZoomed() bool {
	return s.Scale > minScale
}

// maxPanOffset is the pan bound for both axes at the given scale.
// Both axes are bounded by the viewport width.
func maxPanOffset(scale float64, vp Viewport) float64 {
	if scale <= minScale {
		return 0
	}
	return (scale - 1) * vp.Width / 2
}

// clampOffsets enforces the pan bounds for the current scale
func (s ViewerState) clampOffsets(vp Viewport) ViewerState {
	if s.Scale <= minScale {
		s.OffsetX = 0
		s.OffsetY = 0
		return s
	}
	limit := maxPanOffset(s.Scale, vp)
	s.OffsetX = clamp(s.OffsetX, -limit, limit)
	s.OffsetY = clamp(s.OffsetY, -limit, limit)
	return s
}

// Valid reports whether the state satisfies the zoom and pan invariants.
// An unzoomed photo may carry a horizontal swipe offset while a drag is in progress.
func (s ViewerState) Valid(vp Viewport) bool {
	if s.Scale < minScale || s.Scale > maxScale || math.IsNaN(s.Scale) {
		return false
	}
	if s.Scale <= minScale {
		if s.Dragging {
			return s.OffsetY == 0
		}
		return s.OffsetX == 0 && s.OffsetY == 0
	}
	limit := maxPanOffset(s.Scale, vp)
	return math.Abs(s.OffsetX) <= limit && math.Abs(s.OffsetY) <= limit
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
