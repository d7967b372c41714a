package domain

import (
	"time"

	"github.com/google/uuid"
)

// Timer is a single countdown owned by a session. Timer is a value type:
// every transition returns a new Timer and leaves the receiver untouched.
//
// Remaining time is always derived from the StartedAt anchor, never
// accumulated tick by tick, so calling UpdateRemainingTime any number of
// times between two instants yields the same value.
type Timer struct {
	ID             string
	Duration       time.Duration
	Remaining      time.Duration
	Label          string
	AssociatedStep *int
	StartedAt      time.Time // zero if never started
	PausedAt       time.Time // zero if not paused
}

// NewTimer creates a stopped timer with a fresh ID.
func NewTimer(d time.Duration, label string, step *int) Timer {
	if d < 0 {
		d = 0
	}
	return Timer{
		ID:             uuid.NewString(),
		Duration:       d,
		Remaining:      d,
		Label:          label,
		AssociatedStep: step,
	}
}

// IsRunning reports whether the timer is counting down.
func (t Timer) IsRunning() bool {
	return !t.StartedAt.IsZero() && t.PausedAt.IsZero() && t.Remaining > 0
}

// IsCompleted reports whether the countdown reached zero.
func (t Timer) IsCompleted() bool {
	return t.Remaining <= 0
}

// IsPaused reports whether the timer is paused.
func (t Timer) IsPaused() bool {
	return !t.PausedAt.IsZero()
}

// Start begins the countdown, or resumes it when paused. Resuming shifts
// the anchor forward by the paused interval so the pause is not counted
// as elapsed time. Starting a running timer is a no-op.
func (t Timer) Start(now time.Time) Timer {
	switch {
	case t.StartedAt.IsZero():
		t.StartedAt = now
	case t.IsPaused():
		if paused := now.Sub(t.PausedAt); paused > 0 {
			t.StartedAt = t.StartedAt.Add(paused)
		}
		t.PausedAt = time.Time{}
	}
	return t
}

// Pause freezes a running timer. It has no effect otherwise.
func (t Timer) Pause(now time.Time) Timer {
	if !t.IsRunning() {
		return t
	}
	t = t.UpdateRemainingTime(now)
	t.PausedAt = now
	return t
}

// Stop resets the timer to its full duration.
func (t Timer) Stop() Timer {
	t.StartedAt = time.Time{}
	t.PausedAt = time.Time{}
	t.Remaining = t.Duration
	return t
}

// UpdateRemainingTime recomputes Remaining from the StartedAt anchor.
// It is a no-op for timers that were never started or are paused.
func (t Timer) UpdateRemainingTime(now time.Time) Timer {
	if t.StartedAt.IsZero() || t.IsPaused() {
		return t
	}
	remaining := t.Duration - now.Sub(t.StartedAt)
	if remaining < 0 {
		remaining = 0
	}
	// A clock that moves backwards must not add time back.
	if remaining > t.Remaining {
		remaining = t.Remaining
	}
	t.Remaining = remaining
	return t
}
