package main

import (
	"math"
	"math/rand"
	"testing"
)

var testViewport = Viewport{Width: 1000, Height: 800}

func TestInterpretTap(t *testing.T) {
	s := NewViewerState()

	s, fx := Interpret(s, TapEvent(), testViewport)
	if s.ControlsVisible {
		t.Error("Expected controls hidden after the first tap")
	}
	if fx.RestartControlsTimer {
		t.Error("Expected no timer restart when hiding")
	}

	s, fx = Interpret(s, TapEvent(), testViewport)
	if !s.ControlsVisible {
		t.Error("Expected controls visible after the second tap")
	}
	if !fx.RestartControlsTimer {
		t.Error("Expected a timer restart when showing")
	}
}

func TestInterpretDoubleTap(t *testing.T) {
	s := NewViewerState()

	s, fx := Interpret(s, DoubleTapEvent(), testViewport)
	if s.Scale != doubleTapScale {
		t.Errorf("Expected scale %v, got %v", doubleTapScale, s.Scale)
	}
	if !fx.RestartControlsTimer {
		t.Error("Expected a timer restart")
	}

	s.OffsetX = 120
	s.OffsetY = -80
	s, _ = Interpret(s, DoubleTapEvent(), testViewport)
	if s.Scale != minScale || s.OffsetX != 0 || s.OffsetY != 0 {
		t.Errorf("Expected reset to scale 1 and zero offsets, got %+v", s)
	}
}

func TestInterpretPinch(t *testing.T) {
	tests := []struct {
		name          string
		startScale    float64
		zoom          float64
		panX, panY    float64
		expectedScale float64
		expectedX     float64
		expectedY     float64
	}{
		{"ZoomIn", 1, 2, 0, 0, 2, 0, 0},
		{"ClampedAtMax", 3, 2, 0, 0, maxScale, 0, 0},
		{"ExactlyMax", 2, 2, 0, 0, maxScale, 0, 0},
		{"ClampedAtMin", 1.5, 0.5, 50, 50, minScale, 0, 0},
		{"PanWithinBound", 2, 1, 100, -100, 2, 100, -100},
		// Bound at scale 2 is (2-1)*1000/2 = 500 on both axes
		{"PanClamped", 2, 1, 900, -900, 2, 500, -500},
		{"NonPositiveZoomIgnored", 2, 0, 0, 0, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewViewerState()
			s.Scale = tt.startScale

			s, fx := Interpret(s, PinchEvent(tt.zoom, tt.panX, tt.panY), testViewport)

			if math.Abs(s.Scale-tt.expectedScale) > 1e-9 {
				t.Errorf("Expected scale %v, got %v", tt.expectedScale, s.Scale)
			}
			if s.OffsetX != tt.expectedX || s.OffsetY != tt.expectedY {
				t.Errorf("Expected offsets (%v, %v), got (%v, %v)", tt.expectedX, tt.expectedY, s.OffsetX, s.OffsetY)
			}
			if !fx.RestartControlsTimer {
				t.Error("Expected a timer restart")
			}
			if !s.Valid(testViewport) {
				t.Errorf("Expected a valid state, got %+v", s)
			}
		})
	}
}

func TestPinchUsesNewScaleBound(t *testing.T) {
	s := NewViewerState()
	s.Scale = 1

	// Zoom and pan arrive together; the pan must be kept against the new bound
	s, _ = Interpret(s, PinchEvent(3, 600, 0), testViewport)

	if s.Scale != 3 {
		t.Fatalf("Expected scale 3, got %v", s.Scale)
	}
	if s.OffsetX != 600 {
		t.Errorf("Expected offset 600 within the scale 3 bound, got %v", s.OffsetX)
	}
}

func TestPinchAtMaxScale(t *testing.T) {
	s := NewViewerState()
	s.Scale = maxScale
	s.OffsetX = 1400

	// Bound at scale 4 is (4-1)*1000/2 = 1500
	s, _ = Interpret(s, PinchEvent(2, 500, -5000), testViewport)
	if s.Scale != maxScale {
		t.Errorf("Expected scale %v, got %v", maxScale, s.Scale)
	}
	if s.OffsetX != 1500 || s.OffsetY != -1500 {
		t.Errorf("Expected offsets (1500, -1500), got (%v, %v)", s.OffsetX, s.OffsetY)
	}
	if !s.Valid(testViewport) {
		t.Errorf("Expected a valid state, got %+v", s)
	}

	s, _ = Interpret(s, DragStartEvent(), testViewport)
	s, _ = Interpret(s, DragEvent(500, 0), testViewport)
	if s.OffsetX != 1500 {
		t.Errorf("Expected the pan to stay at the edge, got %v", s.OffsetX)
	}
}

func TestGesturesRevealControls(t *testing.T) {
	events := []GestureEvent{DoubleTapEvent(), PinchEvent(1.5, 0, 0), DragStartEvent(), DragEvent(10, 0)}

	for _, ev := range events {
		t.Run(ev.Kind.String(), func(t *testing.T) {
			s := NewViewerState()
			s.ControlsVisible = false
			if ev.Kind == GestureDrag {
				s.Dragging = true
			}

			s, fx := Interpret(s, ev, testViewport)
			if !fx.RestartControlsTimer {
				t.Error("Expected a timer restart")
			}
			if !s.ControlsVisible {
				t.Error("Expected the controls shown with the restarted timer")
			}
		})
	}
}

func TestPinchCancelsSwipe(t *testing.T) {
	s := NewViewerState()
	s, _ = Interpret(s, DragStartEvent(), testViewport)
	s, _ = Interpret(s, DragEvent(-400, 0), testViewport)
	if s.SwipeProgress == 0 {
		t.Fatal("Expected a swipe in progress")
	}

	s, _ = Interpret(s, PinchEvent(1, 0, 0), testViewport)
	if s.SwipeProgress != 0 {
		t.Errorf("Expected the pinch to end the swipe, got %v", s.SwipeProgress)
	}
}

func TestInterpretDragSwipe(t *testing.T) {
	s := NewViewerState()

	s, fx := Interpret(s, DragStartEvent(), testViewport)
	if !s.Dragging || s.DragOrigin != 0 {
		t.Errorf("Expected dragging from origin 0, got %+v", s)
	}
	if !fx.RestartControlsTimer {
		t.Error("Expected a timer restart on drag start")
	}

	s, _ = Interpret(s, DragEvent(-150, 40), testViewport)
	s, _ = Interpret(s, DragEvent(-200, 10), testViewport)

	if s.OffsetX != -350 {
		t.Errorf("Expected offset -350, got %v", s.OffsetX)
	}
	if s.OffsetY != 0 {
		t.Errorf("Expected no vertical offset while swiping, got %v", s.OffsetY)
	}
	if math.Abs(s.SwipeProgress-(-0.35)) > 1e-9 {
		t.Errorf("Expected swipe progress -0.35, got %v", s.SwipeProgress)
	}
	if !s.Valid(testViewport) {
		t.Errorf("Expected a swipe in progress to be valid, got %+v", s)
	}

	s, fx = Interpret(s, DragEndEvent(), testViewport)
	if s.Dragging {
		t.Error("Expected dragging to stop")
	}
	if !fx.DragEnded {
		t.Error("Expected the drag end to be raised")
	}
}

func TestInterpretDragPan(t *testing.T) {
	s := NewViewerState()
	s.Scale = 2

	s, _ = Interpret(s, DragStartEvent(), testViewport)
	s, _ = Interpret(s, DragEvent(300, -200), testViewport)
	if s.OffsetX != 300 || s.OffsetY != -200 {
		t.Errorf("Expected pan (300, -200), got (%v, %v)", s.OffsetX, s.OffsetY)
	}
	if s.SwipeProgress != 0 {
		t.Errorf("Expected no swipe while zoomed, got %v", s.SwipeProgress)
	}

	s, _ = Interpret(s, DragEvent(1000, -1000), testViewport)
	if s.OffsetX != 500 || s.OffsetY != -500 {
		t.Errorf("Expected pan clamped to (500, -500), got (%v, %v)", s.OffsetX, s.OffsetY)
	}
}

func TestResetState(t *testing.T) {
	s := ViewerState{
		Scale:           3,
		OffsetX:         10,
		OffsetY:         20,
		SwipeProgress:   0.2,
		ControlsVisible: false,
		DragOrigin:      5,
		Dragging:        true,
	}

	s = s.Reset()

	expected := ViewerState{Scale: minScale}
	if s != expected {
		t.Errorf("Expected %+v, got %+v", expected, s)
	}
}

func TestStateInvariantsUnderRandomGestures(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nc := NewNavigationController()

	for run := 0; run < 50; run++ {
		s := NewViewerState()
		for step := 0; step < 200; step++ {
			// Taps only arrive between drags, drag events only inside one
			var ev GestureEvent
			pinch := PinchEvent(0.25+rng.Float64()*2, rng.Float64()*400-200, rng.Float64()*400-200)
			if s.Dragging {
				switch rng.Intn(4) {
				case 0:
					ev = pinch
				case 1:
					ev = DragEndEvent()
				default:
					ev = DragEvent(rng.Float64()*600-300, rng.Float64()*600-300)
				}
			} else {
				switch rng.Intn(4) {
				case 0:
					ev = TapEvent()
				case 1:
					ev = DoubleTapEvent()
				case 2:
					ev = pinch
				case 3:
					ev = DragStartEvent()
				}
			}

			var fx Effects
			s, fx = Interpret(s, ev, testViewport)
			if fx.DragEnded {
				s, _ = nc.ResolveDragEnd(s, 2, 5)
			}

			if s.Scale < minScale || s.Scale > maxScale {
				t.Fatalf("run %d step %d: scale %v out of range after %s", run, step, s.Scale, ev.Kind)
			}
			if s.Scale > minScale {
				limit := maxPanOffset(s.Scale, testViewport)
				if math.Abs(s.OffsetX) > limit+1e-9 || math.Abs(s.OffsetY) > limit+1e-9 {
					t.Fatalf("run %d step %d: offsets (%v, %v) beyond %v after %s",
						run, step, s.OffsetX, s.OffsetY, limit, ev.Kind)
				}
			}
			if !s.Dragging && s.Scale <= minScale && (s.OffsetX != 0 || s.OffsetY != 0) {
				t.Fatalf("run %d step %d: unzoomed state at rest has offsets %+v", run, step, s)
			}
		}
	}
}

func TestGestureKindString(t *testing.T) {
	if GesturePinch.String() != "pinch" {
		t.Errorf("Expected pinch, got %s", GesturePinch.String())
	}
	if GestureKind(99).String() != "GestureKind(99)" {
		t.Errorf("Expected GestureKind(99), got %s", GestureKind(99).String())
	}
}
