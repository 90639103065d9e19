package main

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func pointerAt(id int, x, y float64) PointerFrame {
	return PointerFrame{Pointers: []PointerSample{{ID: id, X: x, Y: y}}}
}

func eventKinds(events []GestureEvent) []GestureKind {
	kinds := make([]GestureKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func TestRecognizeTap(t *testing.T) {
	r := NewGestureRecognizer(GetDefaultPointerSettings())
	base := time.Unix(1000, 0)

	if events := r.Process(pointerAt(1, 100, 200), base); len(events) != 0 {
		t.Errorf("Expected no events on press, got %v", eventKinds(events))
	}
	if !r.Tracking() {
		t.Error("Expected a pointer to be tracked")
	}
	if events := r.Process(PointerFrame{}, base.Add(50*time.Millisecond)); len(events) != 0 {
		t.Errorf("Expected the tap held back for a possible double tap, got %v", eventKinds(events))
	}
	if r.Tracking() {
		t.Error("Expected no pointer tracked after release")
	}
	if events := r.Process(PointerFrame{}, base.Add(200*time.Millisecond)); len(events) != 0 {
		t.Errorf("Expected nothing inside the double tap window, got %v", eventKinds(events))
	}

	events := r.Process(PointerFrame{}, base.Add(400*time.Millisecond))
	if len(events) != 1 || events[0].Kind != GestureTap {
		t.Fatalf("Expected one tap, got %v", eventKinds(events))
	}
	if events[0].X != 100 || events[0].Y != 200 {
		t.Errorf("Expected the tap at (100, 200), got (%v, %v)", events[0].X, events[0].Y)
	}
}

func TestRecognizeDoubleTap(t *testing.T) {
	r := NewGestureRecognizer(GetDefaultPointerSettings())
	base := time.Unix(1000, 0)

	r.Process(pointerAt(1, 100, 100), base)
	r.Process(PointerFrame{}, base.Add(50*time.Millisecond))
	r.Process(pointerAt(1, 110, 105), base.Add(100*time.Millisecond))
	events := r.Process(PointerFrame{}, base.Add(150*time.Millisecond))

	if len(events) != 1 || events[0].Kind != GestureDoubleTap {
		t.Fatalf("Expected a double tap, got %v", eventKinds(events))
	}
	if events := r.Process(PointerFrame{}, base.Add(time.Second)); len(events) != 0 {
		t.Errorf("Expected no trailing tap, got %v", eventKinds(events))
	}
}

func TestRecognizeTwoSeparateTaps(t *testing.T) {
	r := NewGestureRecognizer(GetDefaultPointerSettings())
	base := time.Unix(1000, 0)

	r.Process(pointerAt(1, 100, 100), base)
	r.Process(PointerFrame{}, base.Add(50*time.Millisecond))
	// Second tap too far away to pair
	r.Process(pointerAt(1, 500, 500), base.Add(100*time.Millisecond))
	events := r.Process(PointerFrame{}, base.Add(150*time.Millisecond))

	if len(events) != 1 || events[0].Kind != GestureTap || events[0].X != 100 {
		t.Fatalf("Expected the first tap flushed, got %+v", events)
	}
	events = r.Process(PointerFrame{}, base.Add(500*time.Millisecond))
	if len(events) != 1 || events[0].Kind != GestureTap || events[0].X != 500 {
		t.Fatalf("Expected the second tap after the window, got %+v", events)
	}
}

func TestRecognizeDrag(t *testing.T) {
	r := NewGestureRecognizer(GetDefaultPointerSettings())
	base := time.Unix(1000, 0)

	r.Process(pointerAt(1, 100, 100), base)
	if events := r.Process(pointerAt(1, 104, 100), base); len(events) != 0 {
		t.Errorf("Expected no drag within the threshold, got %v", eventKinds(events))
	}

	events := r.Process(pointerAt(1, 130, 100), base)
	expectedKinds := []GestureKind{GestureDragStart, GestureDrag}
	if !reflect.DeepEqual(eventKinds(events), expectedKinds) {
		t.Fatalf("Expected %v, got %v", expectedKinds, eventKinds(events))
	}
	if events[1].DeltaX != 30 || events[1].DeltaY != 0 {
		t.Errorf("Expected the first drag delta from the press point, got (%v, %v)", events[1].DeltaX, events[1].DeltaY)
	}

	events = r.Process(pointerAt(1, 140, 105), base)
	if len(events) != 1 || events[0].DeltaX != 10 || events[0].DeltaY != 5 {
		t.Errorf("Expected drag (10, 5), got %+v", events)
	}

	if events := r.Process(pointerAt(1, 140, 105), base); len(events) != 0 {
		t.Errorf("Expected no event without movement, got %v", eventKinds(events))
	}

	events = r.Process(PointerFrame{}, base)
	if len(events) != 1 || events[0].Kind != GestureDragEnd {
		t.Errorf("Expected a drag end, got %v", eventKinds(events))
	}
	if events := r.Process(PointerFrame{}, base.Add(time.Second)); len(events) != 0 {
		t.Errorf("Expected a drag not to leave a tap behind, got %v", eventKinds(events))
	}
}

func TestRecognizePinch(t *testing.T) {
	r := NewGestureRecognizer(GetDefaultPointerSettings())
	base := time.Unix(1000, 0)
	two := func(x0, x1, y float64) PointerFrame {
		return PointerFrame{Pointers: []PointerSample{{ID: 1, X: x0, Y: y}, {ID: 2, X: x1, Y: y}}}
	}

	events := r.Process(two(100, 200, 100), base)
	if len(events) != 1 || events[0].Kind != GesturePinch || events[0].Zoom != 1 {
		t.Fatalf("Expected a neutral pinch on start, got %+v", events)
	}

	events = r.Process(two(50, 250, 100), base)
	if len(events) != 1 || events[0].Kind != GesturePinch {
		t.Fatalf("Expected a pinch, got %v", eventKinds(events))
	}
	if events[0].Zoom != 2 {
		t.Errorf("Expected zoom 2, got %v", events[0].Zoom)
	}
	if events[0].DeltaX != 0 || events[0].DeltaY != 0 {
		t.Errorf("Expected no pan, got (%v, %v)", events[0].DeltaX, events[0].DeltaY)
	}

	events = r.Process(two(70, 270, 110), base)
	if len(events) != 1 || events[0].Zoom != 1 || events[0].DeltaX != 20 || events[0].DeltaY != 10 {
		t.Errorf("Expected a pan of (20, 10), got %+v", events)
	}

	if events := r.Process(PointerFrame{}, base); len(events) != 0 {
		t.Errorf("Expected releasing a pinch to emit nothing, got %v", eventKinds(events))
	}
	if events := r.Process(PointerFrame{}, base.Add(time.Second)); len(events) != 0 {
		t.Errorf("Expected no tap after a pinch, got %v", eventKinds(events))
	}
}

func TestRecognizeDragAfterPinch(t *testing.T) {
	r := NewGestureRecognizer(GetDefaultPointerSettings())
	base := time.Unix(1000, 0)

	r.Process(PointerFrame{Pointers: []PointerSample{{ID: 1, X: 100, Y: 100}, {ID: 2, X: 200, Y: 100}}}, base)
	r.Process(PointerFrame{Pointers: []PointerSample{{ID: 1, X: 50, Y: 100}, {ID: 2, X: 250, Y: 100}}}, base)

	if events := r.Process(pointerAt(1, 50, 100), base); len(events) != 0 {
		t.Errorf("Expected no events when a finger lifts, got %v", eventKinds(events))
	}
	if events := r.Process(pointerAt(1, 54, 100), base); len(events) != 0 {
		t.Errorf("Expected no drag within the threshold, got %v", eventKinds(events))
	}

	events := r.Process(pointerAt(1, 80, 100), base)
	expectedKinds := []GestureKind{GestureDragStart, GestureDrag}
	if !reflect.DeepEqual(eventKinds(events), expectedKinds) {
		t.Fatalf("Expected %v, got %v", expectedKinds, eventKinds(events))
	}
	if events[1].DeltaX != 30 || events[1].DeltaY != 0 {
		t.Errorf("Expected the drag measured from where the pinch ended, got (%v, %v)", events[1].DeltaX, events[1].DeltaY)
	}

	events = r.Process(pointerAt(1, 90, 100), base)
	if len(events) != 1 || events[0].Kind != GestureDrag || events[0].DeltaX != 10 {
		t.Errorf("Expected drag (10, 0), got %+v", events)
	}

	events = r.Process(PointerFrame{}, base)
	if len(events) != 1 || events[0].Kind != GestureDragEnd {
		t.Errorf("Expected a drag end, got %v", eventKinds(events))
	}
	if events := r.Process(PointerFrame{}, base.Add(time.Second)); len(events) != 0 {
		t.Errorf("Expected no tap after the pinch, got %v", eventKinds(events))
	}
}

func TestRecognizeReleaseAfterPinchIsNotTap(t *testing.T) {
	r := NewGestureRecognizer(GetDefaultPointerSettings())
	base := time.Unix(1000, 0)

	r.Process(PointerFrame{Pointers: []PointerSample{{ID: 1, X: 100, Y: 100}, {ID: 2, X: 200, Y: 100}}}, base)
	r.Process(pointerAt(1, 100, 100), base)
	r.Process(pointerAt(1, 102, 100), base)

	if events := r.Process(PointerFrame{}, base); len(events) != 0 {
		t.Errorf("Expected no events on release, got %v", eventKinds(events))
	}
	if events := r.Process(PointerFrame{}, base.Add(time.Second)); len(events) != 0 {
		t.Errorf("Expected no tap after the pinch, got %v", eventKinds(events))
	}
}

func TestRecognizeWheel(t *testing.T) {
	base := time.Unix(1000, 0)

	t.Run("ZoomIn", func(t *testing.T) {
		r := NewGestureRecognizer(GetDefaultPointerSettings())
		events := r.Process(PointerFrame{WheelY: 1}, base)
		if len(events) != 1 || events[0].Kind != GesturePinch {
			t.Fatalf("Expected a pinch, got %v", eventKinds(events))
		}
		if math.Abs(events[0].Zoom-1.1) > 1e-9 {
			t.Errorf("Expected zoom 1.1, got %v", events[0].Zoom)
		}
	})

	t.Run("Inverted", func(t *testing.T) {
		settings := GetDefaultPointerSettings()
		settings.WheelInverted = true
		r := NewGestureRecognizer(settings)
		events := r.Process(PointerFrame{WheelY: 1}, base)
		if len(events) != 1 || events[0].Zoom >= 1 {
			t.Errorf("Expected zooming out, got %+v", events)
		}
	})

	t.Run("MouseDisabled", func(t *testing.T) {
		settings := GetDefaultPointerSettings()
		settings.EnableMouse = false
		r := NewGestureRecognizer(settings)
		if events := r.Process(PointerFrame{WheelY: 1}, base); len(events) != 0 {
			t.Errorf("Expected the wheel ignored, got %v", eventKinds(events))
		}
	})
}
