package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// AddTimer creates a timer bound to the current step. An empty label
// defaults to "Step N". With start set the countdown begins immediately.
func (e *Engine) AddTimer(ctx context.Context, d time.Duration, label string, start bool) (domain.Timer, error) {
	if d <= 0 {
		return domain.Timer{}, fmt.Errorf("timer duration must be positive, got %s", d)
	}

	var created domain.Timer
	_, err := e.mutate(ctx, "add timer", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		next, t := snap.State.AddTimer(d, label)
		if start {
			t = t.Start(now)
			next, _ = next.UpdateTimer(t.ID, func(domain.Timer) domain.Timer { return t })
		}
		next.LastActionAt = now
		created = t
		return next, nil
	})
	if err != nil {
		return domain.Timer{}, err
	}

	e.log.Info("timer %q added (%s, started=%v)", created.Label, d, start)
	return created, nil
}

// StartTimer starts or resumes a timer.
func (e *Engine) StartTimer(ctx context.Context, id string) (domain.Timer, error) {
	return e.updateTimer(ctx, "start timer", id, func(t domain.Timer, now time.Time) domain.Timer {
		return t.Start(now)
	})
}

// PauseTimer pauses a running timer.
func (e *Engine) PauseTimer(ctx context.Context, id string) (domain.Timer, error) {
	return e.updateTimer(ctx, "pause timer", id, func(t domain.Timer, now time.Time) domain.Timer {
		return t.Pause(now)
	})
}

// StopTimer resets a timer to its full duration.
func (e *Engine) StopTimer(ctx context.Context, id string) (domain.Timer, error) {
	return e.updateTimer(ctx, "stop timer", id, func(t domain.Timer, _ time.Time) domain.Timer {
		return t.Stop()
	})
}

// RemoveTimer deletes a timer.
func (e *Engine) RemoveTimer(ctx context.Context, id string) error {
	_, err := e.mutate(ctx, "remove timer", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		if _, ok := snap.State.Timer(id); !ok {
			return snap.State, fmt.Errorf("timer %q: %w", id, domain.ErrTimerNotFound)
		}
		next := snap.State.RemoveTimer(id)
		next.LastActionAt = now
		return next, nil
	})
	return err
}

// RemoveAllTimers deletes every timer and reports how many there were.
func (e *Engine) RemoveAllTimers(ctx context.Context) (int, error) {
	removed := 0
	_, err := e.mutate(ctx, "remove all timers", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		removed = len(snap.State.Timers)
		next := snap.State.RemoveAllTimers()
		next.LastActionAt = now
		return next, nil
	})
	return removed, err
}

func (e *Engine) updateTimer(ctx context.Context, what, id string, fn func(domain.Timer, time.Time) domain.Timer) (domain.Timer, error) {
	var updated domain.Timer
	_, err := e.mutate(ctx, what, func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		next, ok := snap.State.UpdateTimer(id, func(t domain.Timer) domain.Timer {
			updated = fn(t, now)
			return updated
		})
		if !ok {
			return snap.State, fmt.Errorf("timer %q: %w", id, domain.ErrTimerNotFound)
		}
		next.LastActionAt = now
		return next, nil
	})
	if err != nil {
		return domain.Timer{}, err
	}
	return updated, nil
}

// TickResult is what one supervisor tick observed.
type TickResult struct {
	// Timers is every timer in the session with remaining time updated.
	Timers []domain.Timer
	// Completed holds the timers that reached zero since the last save.
	Completed []domain.Timer
}

// Tick brings every timer up to date. Timers that reached zero since the
// last saved state are reported once and the session is saved; otherwise
// nothing is written, since remaining time is always re-derived from each
// timer's start instant.
func (e *Engine) Tick(ctx context.Context) (TickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.store.Load(ctx)
	if err != nil {
		return TickResult{}, fmt.Errorf("loading session: %w", err)
	}
	if !state.IsActive() || len(state.Timers) == 0 {
		return TickResult{}, nil
	}

	updated := state.UpdateTimers(e.now())
	res := TickResult{Timers: updated.Timers}
	for i, t := range updated.Timers {
		if t.IsCompleted() && !state.Timers[i].IsCompleted() {
			res.Completed = append(res.Completed, t)
		}
	}

	if len(res.Completed) > 0 {
		if err := e.store.Save(ctx, updated); err != nil {
			return TickResult{}, fmt.Errorf("saving session: %w", err)
		}
		e.log.Debug("tick: %d timer(s) completed", len(res.Completed))
	}
	return res, nil
}
