package timer

import (
	"context"
	"errors"
	"time"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// SessionReader returns the active session. *engine.Engine implements it.
type SessionReader interface {
	Current(ctx context.Context) (engine.Snapshot, error)
}

var _ SessionReader = (*engine.Engine)(nil)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher checks session state.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithIdleAfter sets how long a step without a duration may sit untouched
// before the watcher nudges.
func WithIdleAfter(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.idleAfter = d
	}
}

// WithNudgeEvery sets the minimum gap between two nudges.
func WithNudgeEvery(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.nudgeEvery = d
	}
}

// WithWatcherClock replaces time.Now, mainly for tests.
func WithWatcherClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.now = now
	}
}

// Watcher periodically inspects the session and nudges a cook who has
// gone quiet: a long pause, or a step taking far longer than expected.
// Runs on a slower cycle than the timer supervisor.
type Watcher struct {
	source     SessionReader
	notifier   domain.Notifier
	log        *logger.Logger
	now        func() time.Time
	interval   time.Duration
	idleAfter  time.Duration
	nudgeEvery time.Duration

	lastNudged time.Time
}

// NewWatcher creates a watcher with the given dependencies.
func NewWatcher(source SessionReader, notifier domain.Notifier, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source:     source,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
		interval:   1 * time.Minute,
		idleAfter:  3 * time.Minute,
		nudgeEvery: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watcher loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("watcher started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check runs one watcher cycle.
func (w *Watcher) check(ctx context.Context) {
	snap, err := w.source.Current(ctx)
	if errors.Is(err, domain.ErrNoActiveSession) {
		return
	}
	if err != nil {
		w.log.Error("watcher: reading session: %v", err)
		return
	}

	now := w.now()
	if !w.lastNudged.IsZero() && now.Sub(w.lastNudged) < w.nudgeEvery {
		return
	}

	msg := w.buildMessage(snap, now)
	if msg == "" {
		return
	}

	w.lastNudged = now
	if err := w.notifier.Notify(ctx, msg); err != nil {
		w.log.Error("watcher: notify: %v", err)
	}
}

// buildMessage decides what to tell the user based on current state.
// Finished timers are left to the supervisor.
func (w *Watcher) buildMessage(snap engine.Snapshot, now time.Time) string {
	idle := now.Sub(snap.State.LastActionAt)
	if snap.State.LastActionAt.IsZero() || idle <= 0 {
		return ""
	}

	if snap.State.IsPaused {
		if idle < w.nudgeEvery {
			return ""
		}
		return assistant.LineSessionPaused(idle)
	}

	// A running timer means the cook is waiting on purpose.
	for _, t := range snap.State.Timers {
		if t.IsRunning() {
			w.log.Debug("watcher: %s running, %s left", t.Label, t.Remaining.Round(time.Second))
			return ""
		}
	}

	ins, ok := snap.CurrentInstruction()
	if !ok {
		return ""
	}

	if ins.Duration > 0 {
		if idle > ins.Duration*2 {
			return assistant.LineStepOverdue(ins.Step, idle, ins.Duration)
		}
		return ""
	}
	if idle > w.idleAfter {
		return assistant.LineStillOnStep(ins.Step, idle)
	}

	w.log.Debug("watcher: step %d, idle %s, nothing to report", ins.Step, idle.Round(time.Second))
	return ""
}
