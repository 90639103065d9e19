package main

import (
	"testing"
	"time"
)

func TestControlsTimerRestart(t *testing.T) {
	base := time.Unix(1000, 0)
	timer := NewControlsTimer(3000 * time.Millisecond)

	first := timer.Restart(base)
	second := timer.Restart(base.Add(1000 * time.Millisecond))

	if first.Live() {
		t.Error("Expected the first handle cancelled by the restart")
	}
	if !second.Live() {
		t.Error("Expected the second handle live")
	}
	if !second.Deadline().Equal(base.Add(4000 * time.Millisecond)) {
		t.Errorf("Expected deadline at 4000ms, got %v", second.Deadline().Sub(base))
	}

	if timer.Fire(base.Add(3000 * time.Millisecond)) {
		t.Error("Expected no hide at 3000ms")
	}
	if !timer.Fire(base.Add(4000 * time.Millisecond)) {
		t.Error("Expected the hide at 4000ms")
	}
	if timer.Fire(base.Add(5000 * time.Millisecond)) {
		t.Error("Expected the hide to fire only once")
	}
	if timer.Pending() {
		t.Error("Expected nothing pending after firing")
	}
}

func TestControlsTimerCancel(t *testing.T) {
	base := time.Unix(1000, 0)
	timer := NewControlsTimer(controlsHideDelay)

	// Cancelling with nothing scheduled is a no-op
	timer.Cancel()

	h := timer.Restart(base)
	timer.Cancel()
	timer.Cancel()
	h.Cancel()

	if h.Live() || timer.Pending() {
		t.Error("Expected the hide cancelled")
	}
	if timer.Fire(base.Add(controlsHideDelay * 2)) {
		t.Error("Expected a cancelled hide never to fire")
	}
}

func TestHideHandleNil(t *testing.T) {
	var h *HideHandle
	h.Cancel()
	if h.Live() {
		t.Error("Expected a nil handle not to be live")
	}
	if !h.Deadline().IsZero() {
		t.Error("Expected a zero deadline for a nil handle")
	}
}

func TestCancelAfterFire(t *testing.T) {
	base := time.Unix(1000, 0)
	timer := NewControlsTimer(time.Second)
	h := timer.Restart(base)

	if !timer.Fire(base.Add(time.Second)) {
		t.Fatal("Expected the hide to fire")
	}
	h.Cancel()
	if h.cancelled {
		t.Error("Expected cancel after firing to leave the handle untouched")
	}
}
