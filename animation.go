package main

import (
	"math"
	"time"
)

// Spring presets
const (
	springStiffnessLow    = 200.0
	springStiffnessMedium = 1500.0
	dampingMediumBouncy   = 0.5
	dampingNoBouncy       = 1.0

	// Values closer than this to their target count as settled
	settleEpsilon = 0.001
)

// Tween moves current linearly toward target so that a full 0..1 transition
// takes duration.
func Tween(current, target float64, dt, duration time.Duration) float64 {
	if duration <= 0 {
		return target
	}
	step := float64(dt) / float64(duration)
	if current < target {
		return math.Min(target, current+step)
	}
	return math.Max(target, current-step)
}

// Spring is a damped unit-mass spring
type Spring struct {
	Stiffness    float64
	DampingRatio float64
}

// Step advances position and velocity toward target by dt
func (sp Spring) Step(pos, vel, target float64, dt time.Duration) (float64, float64) {
	secs := dt.Seconds()
	if secs <= 0 {
		return pos, vel
	}
	damping := 2 * sp.DampingRatio * math.Sqrt(sp.Stiffness)

	// Sub-step long frames to keep the integration stable
	const maxStep = 1.0 / 240
	steps := int(math.Ceil(secs / maxStep))
	h := secs / float64(steps)
	for i := 0; i < steps; i++ {
		accel := -sp.Stiffness*(pos-target) - damping*vel
		vel += accel * h
		pos += vel * h
	}

	if math.Abs(pos-target) < settleEpsilon && math.Abs(vel) < settleEpsilon {
		return target, 0
	}
	return pos, vel
}

// springValue is one animated value with its velocity
type springValue struct {
	Value    float64
	Velocity float64
}

func (v *springValue) step(sp Spring, target float64, dt time.Duration) {
	v.Value, v.Velocity = sp.Step(v.Value, v.Velocity, target, dt)
}

func (v *springValue) snap(target float64) {
	v.Value = target
	v.Velocity = 0
}

func (v springValue) settledAt(target float64) bool {
	return v.Value == target && v.Velocity == 0
}

// Animator derives the drawn transform from the discrete ViewerState once per tick.
// It never writes back into the state.
type Animator struct {
	Scale         springValue
	OffsetX       springValue
	OffsetY       springValue
	DragProgress  springValue
	ControlsAlpha float64

	transformSpring Spring
	swipeSpring     Spring
}

// NewAnimator creates an Animator resting at state
func NewAnimator(state ViewerState) *Animator {
	a := &Animator{
		transformSpring: Spring{Stiffness: springStiffnessMedium, DampingRatio: dampingNoBouncy},
		swipeSpring:     Spring{Stiffness: springStiffnessLow, DampingRatio: dampingMediumBouncy},
	}
	a.Snap(state)
	return a
}

// Snap jumps every value to its target
func (a *Animator) Snap(state ViewerState) {
	a.Scale.snap(state.Scale)
	a.OffsetX.snap(state.OffsetX)
	a.OffsetY.snap(state.OffsetY)
	a.DragProgress.snap(state.SwipeProgress)
	a.ControlsAlpha = controlsAlphaTarget(state)
}

// Update advances the animation by dt. While a finger is down the transform
// follows the gesture directly.
func (a *Animator) Update(state ViewerState, dt time.Duration, tracking bool) {
	if tracking {
		a.Scale.snap(state.Scale)
		a.OffsetX.snap(state.OffsetX)
		a.OffsetY.snap(state.OffsetY)
	} else {
		a.Scale.step(a.transformSpring, state.Scale, dt)
		a.OffsetX.step(a.transformSpring, state.OffsetX, dt)
		a.OffsetY.step(a.transformSpring, state.OffsetY, dt)
	}
	a.DragProgress.step(a.swipeSpring, state.SwipeProgress, dt)
	a.ControlsAlpha = Tween(a.ControlsAlpha, controlsAlphaTarget(state), dt, controlsFadeDuration)
}

// Handoff re-bases the animation after the displayed photo changed. The
// transform restarts at rest; after a step forward or backward the swipe is
// shifted by one viewport so the new photo continues from where its preview was.
func (a *Animator) Handoff(state ViewerState, direction NavigationDirection) {
	a.Scale.snap(state.Scale)
	a.OffsetX.snap(state.OffsetX)
	a.OffsetY.snap(state.OffsetY)

	switch direction {
	case NavigationForward:
		a.DragProgress.Value++
	case NavigationBackward:
		a.DragProgress.Value--
	default:
		a.DragProgress.snap(state.SwipeProgress)
	}
}

// Settled reports whether every value reached the state's targets
func (a *Animator) Settled(state ViewerState) bool {
	return a.Scale.settledAt(state.Scale) &&
		a.OffsetX.settledAt(state.OffsetX) &&
		a.OffsetY.settledAt(state.OffsetY) &&
		a.DragProgress.settledAt(state.SwipeProgress) &&
		a.ControlsAlpha == controlsAlphaTarget(state)
}

func controlsAlphaTarget(state ViewerState) float64 {
	if state.ControlsVisible {
		return 1
	}
	return 0
}
