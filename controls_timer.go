package main

import "time"

// HideHandle is one scheduled hide of the overlay controls
type HideHandle struct {
	deadline  time.Time
	cancelled bool
	fired     bool
}

// Cancel stops the hide from firing. Cancelling a fired or cancelled handle does nothing.
func (h *HideHandle) Cancel() {
	if h == nil || h.fired {
		return
	}
	h.cancelled = true
}

// Live reports whether the hide is still going to fire
func (h *HideHandle) Live() bool {
	return h != nil && !h.cancelled && !h.fired
}

// Deadline returns the time the hide is due
func (h *HideHandle) Deadline() time.Time {
	if h == nil {
		return time.Time{}
	}
	return h.deadline
}

// ControlsTimer schedules the auto-hide of the overlay controls.
// It is polled from the game loop, so the hide runs on the same goroutine
// that handles gestures and at most one handle is live at a time.
type ControlsTimer struct {
	delay   time.Duration
	current *HideHandle
}

// NewControlsTimer creates a ControlsTimer hiding after delay
func NewControlsTimer(delay time.Duration) *ControlsTimer {
	return &ControlsTimer{delay: delay}
}

// Restart cancels any pending hide and schedules a new one at now+delay
func (t *ControlsTimer) Restart(now time.Time) *HideHandle {
	t.current.Cancel()
	t.current = &HideHandle{deadline: now.Add(t.delay)}
	return t.current
}

// Cancel cancels the pending hide, if any
func (t *ControlsTimer) Cancel() {
	t.current.Cancel()
}

// Pending reports whether a hide is scheduled
func (t *ControlsTimer) Pending() bool {
	return t.current.Live()
}

// Fire reports true exactly once, on the first poll at or after the deadline
// of the live handle.
func (t *ControlsTimer) Fire(now time.Time) bool {
	h := t.current
	if !h.Live() || now.Before(h.deadline) {
		return false
	}
	h.fired = true
	return true
}
