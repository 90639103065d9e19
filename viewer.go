package main

import "time"

// ViewerHost is notified when the viewer wants to return to the grid
type ViewerHost interface {
	CloseViewer()
}

// IndexChangeFunc is called after the displayed photo changed
type IndexChangeFunc func(index int, direction NavigationDirection)

// ViewerOptions configures a viewer session
type ViewerOptions struct {
	Viewport         Viewport
	ShowInstructions bool
	OnIndexChange    IndexChangeFunc
}

// Viewer is one single-photo viewing session over a live PhotoCollection.
// All methods must be called from the goroutine that delivers gestures.
type Viewer struct {
	collection PhotoCollection
	host       ViewerHost
	navigation *NavigationController
	timer      *ControlsTimer

	state    ViewerState
	viewport Viewport

	// The photo the current state belongs to
	shownIndex int
	shownID    string

	showInstructions bool
	closed           bool
	onIndexChange    IndexChangeFunc
}

// OpenViewer starts a session at startIndex. An empty collection closes the
// viewer right away and returns ErrEmptyCollection.
func OpenViewer(collection PhotoCollection, startIndex int, host ViewerHost, now time.Time, opts ViewerOptions) (*Viewer, error) {
	if collection.Count() == 0 {
		debugLog("OpenViewer: empty collection, returning to grid")
		host.CloseViewer()
		return nil, ErrEmptyCollection
	}

	collection.SetCurrentIndex(startIndex)
	idx, photo, ok := collection.Current()
	if !ok {
		host.CloseViewer()
		return nil, ErrEmptyCollection
	}

	v := &Viewer{
		collection:       collection,
		host:             host,
		navigation:       NewNavigationController(),
		timer:            NewControlsTimer(controlsHideDelay),
		state:            NewViewerState(),
		viewport:         opts.Viewport,
		shownIndex:       idx,
		shownID:          photo.ID,
		showInstructions: opts.ShowInstructions,
		onIndexChange:    opts.OnIndexChange,
	}
	v.timer.Restart(now)
	debugLog("OpenViewer: showing [%d/%d] %s", idx+1, collection.Count(), photo.Title)
	return v, nil
}

// State returns the current discrete state
func (v *Viewer) State() ViewerState {
	return v.state
}

// Closed reports whether the session has ended
func (v *Viewer) Closed() bool {
	return v.closed
}

// IsShowingInstructions reports whether the first-use gesture help is up
func (v *Viewer) IsShowingInstructions() bool {
	return v.showInstructions
}

// ControlsTimerPending reports whether an auto-hide is scheduled
func (v *Viewer) ControlsTimerPending() bool {
	return v.timer.Pending()
}

// SetViewport updates the rendering surface and re-clamps the pan
func (v *Viewer) SetViewport(vp Viewport) {
	if vp == v.viewport {
		return
	}
	v.viewport = vp
	if !v.state.Dragging {
		v.state = v.state.clampOffsets(vp)
	}
}

// HandleGesture applies one recognized gesture
func (v *Viewer) HandleGesture(ev GestureEvent, now time.Time) {
	if v.closed {
		return
	}

	if v.showInstructions && (ev.Kind == GestureTap || ev.Kind == GestureDoubleTap) {
		v.showInstructions = false
		v.timer.Restart(now)
		return
	}

	var fx Effects
	v.state, fx = Interpret(v.state, ev, v.viewport)
	if debugEnabled && !v.state.Valid(v.viewport) {
		debugLog("HandleGesture: state out of bounds after %s: %+v", ev.Kind, v.state)
	}

	if fx.RestartControlsTimer {
		v.timer.Restart(now)
	}
	if fx.DragEnded {
		v.endDrag(now)
	}
}

func (v *Viewer) endDrag(now time.Time) {
	idx, _, ok := v.collection.Current()
	if !ok {
		v.Close()
		return
	}

	var decision NavigationDecision
	v.state, decision = v.navigation.ResolveDragEnd(v.state, idx, v.collection.Count())
	if !decision.Changed() {
		return
	}

	debugLog("Swipe navigation: %d -> %d", idx+1, decision.TargetIndex+1)
	v.collection.SetCurrentIndex(decision.TargetIndex)
	v.syncDisplayed(now, decision.Direction)
}

// Update runs the per-tick work: the auto-hide and picking up index changes
// made outside the viewer.
func (v *Viewer) Update(now time.Time) {
	if v.closed {
		return
	}

	if v.timer.Fire(now) {
		v.state.ControlsVisible = false
	}

	v.syncDisplayed(now, NavigationJump)
}

// syncDisplayed resets the state when the live collection shows a different
// photo than the state was built for.
func (v *Viewer) syncDisplayed(now time.Time, direction NavigationDirection) {
	idx, photo, ok := v.collection.Current()
	if !ok {
		v.Close()
		return
	}
	if idx == v.shownIndex && photo.ID == v.shownID {
		return
	}

	v.shownIndex = idx
	v.shownID = photo.ID
	v.state = v.state.Reset()
	v.state.ControlsVisible = true
	v.timer.Restart(now)

	if v.onIndexChange != nil {
		v.onIndexChange(idx, direction)
	}
}

// ToggleFavorite flips the favorite flag of the displayed photo
func (v *Viewer) ToggleFavorite() {
	if v.closed {
		return
	}
	if _, photo, ok := v.collection.Current(); ok {
		v.collection.ToggleFavorite(photo.ID)
	}
}

// DeleteCurrent removes the displayed photo and closes the viewer when
// nothing is left.
func (v *Viewer) DeleteCurrent(now time.Time) {
	if v.closed {
		return
	}
	_, photo, ok := v.collection.Current()
	if !ok {
		v.Close()
		return
	}

	if v.collection.DeletePhoto(photo.ID) {
		debugLog("DeleteCurrent: collection empty after deleting %s", photo.ID)
		v.Close()
		return
	}
	v.syncDisplayed(now, NavigationJump)
}

// ToggleZoom is the overlay zoom button: back to 1 when zoomed, else double-tap zoom
func (v *Viewer) ToggleZoom(now time.Time) {
	if v.closed {
		return
	}
	if v.state.IsZoomed() {
		v.state.Scale = minScale
		v.state.OffsetX = 0
		v.state.OffsetY = 0
	} else {
		v.state.Scale = doubleTapScale
	}
	v.state.ControlsVisible = true
	v.timer.Restart(now)
}

// KeepControls pushes back the auto-hide while the overlay is being used
func (v *Viewer) KeepControls(now time.Time) {
	if v.closed || !v.state.ControlsVisible {
		return
	}
	v.timer.Restart(now)
}

// ToggleControls shows or hides the overlay as a tap would
func (v *Viewer) ToggleControls(now time.Time) {
	v.HandleGesture(TapEvent(), now)
}

// Next shows the following photo, wrapping at the end
func (v *Viewer) Next(now time.Time) {
	if v.closed {
		return
	}
	v.collection.Next()
	v.syncDisplayed(now, NavigationForward)
}

// Previous shows the preceding photo, wrapping at the start
func (v *Viewer) Previous(now time.Time) {
	if v.closed {
		return
	}
	v.collection.Previous()
	v.syncDisplayed(now, NavigationBackward)
}

// JumpTo shows the photo at idx, ignoring out of range indices
func (v *Viewer) JumpTo(idx int, now time.Time) {
	if v.closed {
		return
	}
	v.collection.SetCurrentIndex(idx)
	v.syncDisplayed(now, NavigationJump)
}

// Close ends the session and tells the host to return to the grid
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.timer.Cancel()
	v.host.CloseViewer()
}
