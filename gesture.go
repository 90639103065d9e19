package main

import "fmt"

// GestureKind identifies a discrete gesture event
type GestureKind int

const (
	GestureTap GestureKind = iota
	GestureDoubleTap
	GestureDragStart
	GestureDrag
	GestureDragEnd
	GesturePinch
)

func (k GestureKind) String() string {
	switch k {
	case GestureTap:
		return "tap"
	case GestureDoubleTap:
		return "doubleTap"
	case GestureDragStart:
		return "dragStart"
	case GestureDrag:
		return "drag"
	case GestureDragEnd:
		return "dragEnd"
	case GesturePinch:
		return "pinch"
	default:
		return fmt.Sprintf("GestureKind(%d)", int(k))
	}
}

// GestureEvent is one recognized gesture.
// DeltaX/DeltaY carry the drag delta, or the pan delta of a pinch.
type GestureEvent struct {
	Kind   GestureKind
	DeltaX float64
	DeltaY float64
	Zoom   float64 // pinch zoom factor, 1 means unchanged

	// Screen position of a tap, used to hit the overlay buttons
	X, Y float64
}

// Convenience constructors used by the recognizer and tests
func TapEvent() GestureEvent       { return GestureEvent{Kind: GestureTap} }
func DoubleTapEvent() GestureEvent { return GestureEvent{Kind: GestureDoubleTap} }
func TapAt(x, y float64) GestureEvent {
	return GestureEvent{Kind: GestureTap, X: x, Y: y}
}

func DragStartEvent() GestureEvent { return GestureEvent{Kind: GestureDragStart} }
func DragEndEvent() GestureEvent   { return GestureEvent{Kind: GestureDragEnd} }

func DragEvent(dx, dy float64) GestureEvent {
	return GestureEvent{Kind: GestureDrag, DeltaX: dx, DeltaY: dy}
}

func PinchEvent(zoom, panX, panY float64) GestureEvent {
	return GestureEvent{Kind: GesturePinch, Zoom: zoom, DeltaX: panX, DeltaY: panY}
}

// Effects lists the commands a transition raises for the collaborators
type Effects struct {
	RestartControlsTimer bool
	DragEnded            bool // NavigationController must resolve the drag
}

// Interpret applies one gesture event to the viewer state.
// It depends only on its arguments so every transition can be tested without rendering.
func Interpret(s ViewerState, ev GestureEvent, vp Viewport) (ViewerState, Effects) {
	var fx Effects

	switch ev.Kind {
	case GestureTap:
		s.ControlsVisible = !s.ControlsVisible
		// Hiding needs no timer, there is nothing left to hide
		fx.RestartControlsTimer = s.ControlsVisible

	case GestureDoubleTap:
		if s.Scale > minScale {
			s.Scale = minScale
			s.OffsetX = 0
			s.OffsetY = 0
		} else {
			s.Scale = doubleTapScale
		}
		fx.RestartControlsTimer = true

	case GesturePinch:
		s = applyPinch(s, ev, vp)
		fx.RestartControlsTimer = true

	case GestureDragStart:
		s.DragOrigin = s.OffsetX
		s.Dragging = true
		fx.RestartControlsTimer = true

	case GestureDrag:
		s = applyDrag(s, ev, vp)
		fx.RestartControlsTimer = true

	case GestureDragEnd:
		s.Dragging = false
		fx.DragEnded = true
	}

	// Restarting the auto-hide always brings the controls back
	if fx.RestartControlsTimer {
		s.ControlsVisible = true
	}

	return s, fx
}

// applyPinch scales first, then adds the pan delta of the same event and
// clamps against the bound of the new scale.
func applyPinch(s ViewerState, ev GestureEvent, vp Viewport) ViewerState {
	zoom := ev.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	s.Scale = clamp(s.Scale*zoom, minScale, maxScale)
	// A pinch turns any swipe in progress into a zoom gesture
	s.SwipeProgress = 0

	if s.Scale > minScale {
		s.OffsetX += ev.DeltaX
		s.OffsetY += ev.DeltaY
		return s.clampOffsets(vp)
	}

	s.OffsetX = 0
	s.OffsetY = 0
	return s
}

// applyDrag pans a zoomed photo, otherwise tracks the horizontal swipe
func applyDrag(s ViewerState, ev GestureEvent, vp Viewport) ViewerState {
	if s.Scale > minScale {
		s.OffsetX += ev.DeltaX
		s.OffsetY += ev.DeltaY
		return s.clampOffsets(vp)
	}

	s.OffsetX += ev.DeltaX
	if vp.Width > 0 {
		s.SwipeProgress = s.OffsetX / vp.Width
	}
	return s
}
