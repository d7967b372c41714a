package domain

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Scale factor bounds. SetScaleFactor clamps into this range.
const (
	MinScaleFactor     = 0.25
	MaxScaleFactor     = 4.0
	DefaultScaleFactor = 1.0
)

// SessionPreferences are opaque pass-through flags owned by the host.
type SessionPreferences struct {
	KeepScreenOn bool
	VoiceEnabled bool
	VoiceSpeed   float64
	AutoAdvance  bool
	Haptics      bool
	TimerSound   string
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() SessionPreferences {
	return SessionPreferences{
		KeepScreenOn: true,
		VoiceEnabled: true,
		VoiceSpeed:   1.0,
		Haptics:      true,
		TimerSound:   "default",
	}
}

// SessionState is the cooking workstate. It is a value type: transitions
// return a new SessionState and never mutate the receiver, and every
// slice is copied before it is changed.
//
// A session is active iff ActiveRecipeID is non-empty. StepIndex is
// 0-based and always lies in [0, totalSteps) of the recipe the session
// was started with; navigation rejects out-of-range requests instead of
// clamping.
type SessionState struct {
	ActiveRecipeID   string
	StepIndex        int
	CompletedSteps   []int // sorted, unique
	Timers           []Timer
	ScaleFactor      float64
	IsPaused         bool
	Preferences      SessionPreferences
	LastActionAt     time.Time
	SessionStartedAt time.Time // zero when no session has been started
}

// NewSessionState returns the empty state used at first launch.
func NewSessionState() SessionState {
	return SessionState{
		ScaleFactor: DefaultScaleFactor,
		Preferences: DefaultPreferences(),
	}
}

// IsActive reports whether a recipe is being cooked.
func (s SessionState) IsActive() bool {
	return s.ActiveRecipeID != ""
}

// clone deep-copies the slices so the result can be changed freely.
func (s SessionState) clone() SessionState {
	s.CompletedSteps = slices.Clone(s.CompletedSteps)
	s.Timers = slices.Clone(s.Timers)
	return s
}

// StartSession resets the workstate for a new recipe. Preferences survive.
func (s SessionState) StartSession(recipeID string, now time.Time) SessionState {
	return SessionState{
		ActiveRecipeID:   recipeID,
		ScaleFactor:      DefaultScaleFactor,
		Preferences:      s.Preferences,
		LastActionAt:     now,
		SessionStartedAt: now,
	}
}

// EndSession clears everything except preferences.
func (s SessionState) EndSession(now time.Time) SessionState {
	return SessionState{
		ScaleFactor:  DefaultScaleFactor,
		Preferences:  s.Preferences,
		LastActionAt: now,
	}
}

// Pause marks the session paused.
func (s SessionState) Pause(now time.Time) SessionState {
	s = s.clone()
	s.IsPaused = true
	s.LastActionAt = now
	return s
}

// Resume clears the paused flag.
func (s SessionState) Resume(now time.Time) SessionState {
	s = s.clone()
	s.IsPaused = false
	s.LastActionAt = now
	return s
}

// GoToNextStep completes the current step and moves forward. It fails,
// returning the receiver unchanged, when already on the last step.
func (s SessionState) GoToNextStep(totalSteps int, now time.Time) (SessionState, bool) {
	if s.StepIndex >= totalSteps-1 {
		return s, false
	}
	next := s.clone()
	next.CompletedSteps = insertStep(next.CompletedSteps, s.StepIndex)
	next.StepIndex = s.StepIndex + 1
	next.LastActionAt = now
	return next, true
}

// GoToPreviousStep moves back one step without touching completion.
func (s SessionState) GoToPreviousStep(now time.Time) (SessionState, bool) {
	if s.StepIndex <= 0 {
		return s, false
	}
	prev := s.clone()
	prev.StepIndex = s.StepIndex - 1
	prev.LastActionAt = now
	return prev, true
}

// GoToStep jumps to a 0-based step without touching completion.
func (s SessionState) GoToStep(step, totalSteps int, now time.Time) (SessionState, bool) {
	if step < 0 || step >= totalSteps {
		return s, false
	}
	jumped := s.clone()
	jumped.StepIndex = step
	jumped.LastActionAt = now
	return jumped, true
}

// CompleteCurrentStep marks the current step done.
func (s SessionState) CompleteCurrentStep(now time.Time) SessionState {
	s = s.clone()
	s.CompletedSteps = insertStep(s.CompletedSteps, s.StepIndex)
	s.LastActionAt = now
	return s
}

// IsStepCompleted reports whether a step index was marked done.
func (s SessionState) IsStepCompleted(step int) bool {
	_, found := slices.BinarySearch(s.CompletedSteps, step)
	return found
}

func insertStep(steps []int, step int) []int {
	i, found := slices.BinarySearch(steps, step)
	if found {
		return steps
	}
	return slices.Insert(steps, i, step)
}

// AddTimer appends a stopped timer bound to the current step and returns
// it so the caller can start it. An empty label defaults to "Step N".
func (s SessionState) AddTimer(d time.Duration, label string) (SessionState, Timer) {
	if label == "" {
		label = fmt.Sprintf("Step %d", s.StepIndex+1)
	}
	step := s.StepIndex
	t := NewTimer(d, label, &step)

	s = s.clone()
	s.Timers = append(s.Timers, t)
	return s, t
}

// Timer returns the timer with the given ID.
func (s SessionState) Timer(id string) (Timer, bool) {
	for _, t := range s.Timers {
		if t.ID == id {
			return t, true
		}
	}
	return Timer{}, false
}

// UpdateTimer applies fn to the timer with the given ID.
func (s SessionState) UpdateTimer(id string, fn func(Timer) Timer) (SessionState, bool) {
	idx := slices.IndexFunc(s.Timers, func(t Timer) bool { return t.ID == id })
	if idx < 0 {
		return s, false
	}
	s = s.clone()
	s.Timers[idx] = fn(s.Timers[idx])
	return s, true
}

// UpdateTimers recomputes remaining time on every timer.
func (s SessionState) UpdateTimers(now time.Time) SessionState {
	s = s.clone()
	for i := range s.Timers {
		s.Timers[i] = s.Timers[i].UpdateRemainingTime(now)
	}
	return s
}

// RemoveTimer drops a timer by ID. Unknown IDs leave the state unchanged.
func (s SessionState) RemoveTimer(id string) SessionState {
	s = s.clone()
	s.Timers = slices.DeleteFunc(s.Timers, func(t Timer) bool { return t.ID == id })
	return s
}

// RemoveAllTimers drops every timer.
func (s SessionState) RemoveAllTimers() SessionState {
	s = s.clone()
	s.Timers = nil
	return s
}

// ActiveTimers returns the timers that have not completed, in insertion order.
func (s SessionState) ActiveTimers() []Timer {
	var out []Timer
	for _, t := range s.Timers {
		if !t.IsCompleted() {
			out = append(out, t)
		}
	}
	return out
}

// SetScaleFactor stores factor clamped to [MinScaleFactor, MaxScaleFactor].
// NaN resets to the default factor.
func (s SessionState) SetScaleFactor(factor float64) SessionState {
	s = s.clone()
	switch {
	case math.IsNaN(factor):
		s.ScaleFactor = DefaultScaleFactor
	default:
		s.ScaleFactor = math.Min(MaxScaleFactor, math.Max(MinScaleFactor, factor))
	}
	return s
}

// ScaleAmount multiplies an ingredient amount by the scale factor.
func (s SessionState) ScaleAmount(amount float64) float64 {
	return amount * s.ScaleFactor
}

// Progress returns the fraction of the recipe reached, counting the
// current step: (StepIndex+1)/totalSteps.
func (s SessionState) Progress(totalSteps int) float64 {
	if totalSteps <= 0 {
		return 0
	}
	return float64(s.StepIndex+1) / float64(totalSteps)
}
