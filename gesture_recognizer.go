package main

import (
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Pointer id used for the left mouse button; touches start at 1
	mousePointerID = 0

	// Maximum distance between the two taps of a double tap
	doubleTapSlop = 40.0
)

// PointerSettings contains mouse and touch configuration
type PointerSettings struct {
	DoubleTapTime int     `json:"double_tap_time"` // milliseconds
	DragThreshold int     `json:"drag_threshold"`  // pixels
	EnableMouse   bool    `json:"enable_mouse"`
	WheelInverted bool    `json:"wheel_inverted"`
	WheelZoomStep float64 `json:"wheel_zoom_step"` // zoom factor change per wheel notch
}

// GetDefaultPointerSettings returns the default pointer settings
func GetDefaultPointerSettings() PointerSettings {
	return PointerSettings{
		DoubleTapTime: 300, // milliseconds
		DragThreshold: 8,   // pixels
		EnableMouse:   true,
		WheelInverted: false,
		WheelZoomStep: 0.1,
	}
}

// PointerSample is one pressed pointer in a frame
type PointerSample struct {
	ID int
	X  float64
	Y  float64
}

// PointerFrame is the polled pointer input of one tick
type PointerFrame struct {
	Pointers []PointerSample
	WheelY   float64
}

type trackedPointer struct {
	x, y float64
}

// pendingTap is a released tap waiting to see whether a second one follows
type pendingTap struct {
	at   time.Time
	x, y float64
}

// pinchState tracks the two pointers of a pinch
type pinchState struct {
	active   bool
	prevDist float64
	prevCX   float64
	prevCY   float64
	pointer0 int
	pointer1 int
}

// GestureRecognizer turns per-frame pointer samples into GestureEvents.
// It holds no ebiten state, so it can be fed synthetic frames.
type GestureRecognizer struct {
	settings PointerSettings

	pointers map[int]*trackedPointer

	// Single-pointer gesture in progress
	startX, startY float64
	lastX, lastY   float64
	dragging       bool
	multiTouch     bool // a second pointer joined, the release is not a tap

	pinch   pinchState
	pending *pendingTap
}

// NewGestureRecognizer creates a new GestureRecognizer
func NewGestureRecognizer(settings PointerSettings) *GestureRecognizer {
	return &GestureRecognizer{
		settings: settings,
		pointers: make(map[int]*trackedPointer),
	}
}

// Tracking reports whether a pointer is down
func (r *GestureRecognizer) Tracking() bool {
	return len(r.pointers) > 0
}

func (r *GestureRecognizer) doubleTapWindow() time.Duration {
	return time.Duration(r.settings.DoubleTapTime) * time.Millisecond
}

// Process consumes one frame and returns the recognized gestures in order
func (r *GestureRecognizer) Process(frame PointerFrame, now time.Time) []GestureEvent {
	var events []GestureEvent

	// A lone tap becomes a tap once the double tap window has passed
	if r.pending != nil && now.Sub(r.pending.at) > r.doubleTapWindow() {
		events = append(events, TapAt(r.pending.x, r.pending.y))
		r.pending = nil
	}

	events = append(events, r.processWheel(frame.WheelY)...)

	current := make(map[int]PointerSample, len(frame.Pointers))
	for _, p := range frame.Pointers {
		current[p.ID] = p
	}
	hadPointers := len(r.pointers) > 0

	// Forget released pointers, keeping the position of the last one for the tap test
	var releasedX, releasedY float64
	for id, tp := range r.pointers {
		if _, ok := current[id]; !ok {
			releasedX, releasedY = tp.x, tp.y
			delete(r.pointers, id)
		}
	}

	switch {
	case len(current) >= 2:
		events = append(events, r.processPinch(current)...)

	case len(current) == 1:
		var sample PointerSample
		for _, p := range current {
			sample = p
		}
		events = append(events, r.processSingle(sample, hadPointers)...)

	default:
		if hadPointers {
			events = append(events, r.processRelease(releasedX, releasedY, now)...)
		}
	}

	for id, p := range current {
		r.pointers[id] = &trackedPointer{x: p.X, y: p.Y}
	}
	return events
}

func (r *GestureRecognizer) processWheel(wheelY float64) []GestureEvent {
	if wheelY == 0 || !r.settings.EnableMouse {
		return nil
	}
	if r.settings.WheelInverted {
		wheelY = -wheelY
	}
	zoom := math.Pow(1+r.settings.WheelZoomStep, wheelY)
	return []GestureEvent{PinchEvent(zoom, 0, 0)}
}

// flushPending emits a waiting tap before another gesture starts
func (r *GestureRecognizer) flushPending() []GestureEvent {
	if r.pending == nil {
		return nil
	}
	tap := TapAt(r.pending.x, r.pending.y)
	r.pending = nil
	return []GestureEvent{tap}
}

func (r *GestureRecognizer) processSingle(p PointerSample, hadPointers bool) []GestureEvent {
	var events []GestureEvent

	if r.pinch.active {
		// Back from a pinch to one finger: it may drag from where it is now
		r.pinch.active = false
		r.startX, r.startY = p.X, p.Y
		r.lastX, r.lastY = p.X, p.Y
		return nil
	}

	if !hadPointers {
		r.startX, r.startY = p.X, p.Y
		r.lastX, r.lastY = p.X, p.Y
		r.dragging = false
		r.multiTouch = false
		return nil
	}

	if !r.dragging {
		dx := p.X - r.startX
		dy := p.Y - r.startY
		if math.Sqrt(dx*dx+dy*dy) <= float64(r.settings.DragThreshold) {
			r.lastX, r.lastY = p.X, p.Y
			return nil
		}
		events = append(events, r.flushPending()...)
		r.dragging = true
		events = append(events, DragStartEvent())
		events = append(events, DragEvent(p.X-r.startX, p.Y-r.startY))
		r.lastX, r.lastY = p.X, p.Y
		return events
	}

	if p.X != r.lastX || p.Y != r.lastY {
		events = append(events, DragEvent(p.X-r.lastX, p.Y-r.lastY))
	}
	r.lastX, r.lastY = p.X, p.Y
	return events
}

func (r *GestureRecognizer) processPinch(current map[int]PointerSample) []GestureEvent {
	ids := make([]int, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	p0, p1 := current[ids[0]], current[ids[1]]

	cx := (p0.X + p1.X) / 2
	cy := (p0.Y + p1.Y) / 2
	dist := math.Hypot(p1.X-p0.X, p1.Y-p0.Y)

	if !r.pinch.active || r.pinch.pointer0 != p0.ID || r.pinch.pointer1 != p1.ID {
		events := r.flushPending()
		r.pinch = pinchState{
			active:   true,
			prevDist: dist,
			prevCX:   cx,
			prevCY:   cy,
			pointer0: p0.ID,
			pointer1: p1.ID,
		}
		r.multiTouch = true
		// A neutral pinch ends any swipe so lifting the fingers never navigates
		events = append(events, PinchEvent(1, 0, 0))
		return events
	}

	zoom := 1.0
	if r.pinch.prevDist > 0 && dist > 0 {
		zoom = dist / r.pinch.prevDist
	}
	panX := cx - r.pinch.prevCX
	panY := cy - r.pinch.prevCY

	r.pinch.prevDist = dist
	r.pinch.prevCX = cx
	r.pinch.prevCY = cy

	if zoom == 1 && panX == 0 && panY == 0 {
		return nil
	}
	return []GestureEvent{PinchEvent(zoom, panX, panY)}
}

func (r *GestureRecognizer) processRelease(x, y float64, now time.Time) []GestureEvent {
	r.pinch.active = false

	if r.dragging {
		r.dragging = false
		return []GestureEvent{DragEndEvent()}
	}
	if r.multiTouch {
		r.multiTouch = false
		return nil
	}

	if r.pending != nil &&
		now.Sub(r.pending.at) <= r.doubleTapWindow() &&
		math.Hypot(x-r.pending.x, y-r.pending.y) <= doubleTapSlop {
		r.pending = nil
		ev := DoubleTapEvent()
		ev.X, ev.Y = x, y
		return []GestureEvent{ev}
	}

	events := r.flushPending()
	r.pending = &pendingTap{at: now, x: x, y: y}
	return events
}

// pointerPoller reads mouse and touch state from ebiten into PointerFrames
type pointerPoller struct {
	settings PointerSettings
	touchIDs []ebiten.TouchID
}

// pollPointerFrame gathers the pointer input of the current tick
func (pp *pointerPoller) pollPointerFrame() PointerFrame {
	var frame PointerFrame

	if pp.settings.EnableMouse {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			mx, my := ebiten.CursorPosition()
			frame.Pointers = append(frame.Pointers, PointerSample{ID: mousePointerID, X: float64(mx), Y: float64(my)})
		}
		_, frame.WheelY = ebiten.Wheel()
	}

	pp.touchIDs = ebiten.AppendTouchIDs(pp.touchIDs[:0])
	for _, tid := range pp.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		frame.Pointers = append(frame.Pointers, PointerSample{ID: int(tid) + 1, X: float64(tx), Y: float64(ty)})
	}

	return frame
}
