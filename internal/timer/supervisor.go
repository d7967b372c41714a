// Package timer implements the background timer supervisor that watches the
// active cooking session and fires notifications when timers expire.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Ticker brings the session's timers up to date. *engine.Engine implements it.
type Ticker interface {
	Tick(ctx context.Context) (engine.TickResult, error)
}

var _ Ticker = (*engine.Engine)(nil)

// Option configures the supervisor.
type Option func(*Supervisor)

// WithTickInterval sets how often the supervisor checks timers.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithNotifyCooldown sets the minimum time between repeated notifications
// for a finished timer.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Supervisor) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation sets the escalation level after which the supervisor
// stops nagging about a finished timer.
func WithMaxEscalation(level int) Option {
	return func(s *Supervisor) {
		s.maxEscalation = level
	}
}

// WithReminderInterval sets how often running timers send a countdown
// reminder. Zero disables them.
func WithReminderInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.reminderInterval = d
	}
}

// WithAlmostDoneThreshold sets how close to zero a timer must be to
// trigger the "almost done" warning.
func WithAlmostDoneThreshold(d time.Duration) Option {
	return func(s *Supervisor) {
		s.almostDoneThreshold = d
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Supervisor) {
		s.now = now
	}
}

// WithWatcher runs a Watcher alongside the supervisor.
func WithWatcher(source SessionReader, opts ...WatcherOption) Option {
	return func(s *Supervisor) {
		s.watcherSource = source
		s.watcherOpts = opts
	}
}

// alertState tracks what the user has already been told about one timer.
// It lives only in memory: after a restart a finished timer is announced
// once more.
type alertState struct {
	firedAt        time.Time // zero while the timer runs
	lastNotified   time.Time
	level          int
	lastRemindedAt time.Time
	warnedAlmost   bool
}

// Supervisor runs in the background and turns timer progress into
// notifications. Optionally runs a Watcher on a slower cycle.
type Supervisor struct {
	ticker              Ticker
	notifier            domain.Notifier
	log                 *logger.Logger
	now                 func() time.Time
	tickInterval        time.Duration
	notifyCooldown      time.Duration
	maxEscalation       int
	reminderInterval    time.Duration
	almostDoneThreshold time.Duration

	watcherSource SessionReader
	watcherOpts   []WatcherOption

	alerts map[string]*alertState // only touched by tick

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a timer supervisor with the given dependencies and options.
func New(ticker Ticker, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		ticker:              ticker,
		notifier:            notifier,
		log:                 log,
		now:                 time.Now,
		tickInterval:        1 * time.Second,
		notifyCooldown:      30 * time.Second,
		maxEscalation:       3,
		reminderInterval:    0,
		almostDoneThreshold: 30 * time.Second,
		alerts:              make(map[string]*alertState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background supervisor loop. Non-blocking.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.loop(childCtx)
	}()

	if s.watcherSource != nil {
		w := NewWatcher(s.watcherSource, s.notifier, s.log, s.watcherOpts...)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(childCtx)
		}()
	}

	done := s.done
	go func() {
		wg.Wait()
		close(done)
	}()

	s.log.Info("timer supervisor started (tick=%s, cooldown=%s)", s.tickInterval, s.notifyCooldown)
}

// Stop shuts the supervisor down and waits for its goroutines to exit.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("timer supervisor stopped")
}

func (s *Supervisor) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one cycle: refresh timers, then decide what to say about each.
func (s *Supervisor) tick(ctx context.Context) {
	res, err := s.ticker.Tick(ctx)
	if err != nil {
		s.log.Error("supervisor: ticking timers: %v", err)
		return
	}
	if len(res.Completed) > 0 {
		s.log.Debug("supervisor: %d timer(s) completed this tick", len(res.Completed))
	}

	now := s.now()
	seen := make(map[string]bool, len(res.Timers))
	for _, t := range res.Timers {
		seen[t.ID] = true
		s.process(ctx, t, now)
	}

	for id := range s.alerts {
		if !seen[id] {
			delete(s.alerts, id)
		}
	}
}

func (s *Supervisor) process(ctx context.Context, t domain.Timer, now time.Time) {
	a, ok := s.alerts[t.ID]
	if !ok {
		a = &alertState{}
		s.alerts[t.ID] = a
	}

	if !t.IsCompleted() {
		// A stopped or restarted timer starts over.
		if !a.firedAt.IsZero() {
			*a = alertState{}
		}
		if t.IsRunning() {
			s.remind(ctx, t, a, now)
		}
		return
	}

	if a.firedAt.IsZero() {
		a.firedAt = now
		a.lastNotified = now
		a.level = 1
		s.log.Debug("timer %s (%s) fired", t.ID, t.Label)
		if err := s.notifier.NotifyUrgent(ctx, assistant.LineTimerDone(t.Label)); err != nil {
			s.log.Error("supervisor: notifying timer fire: %v", err)
		}
		return
	}

	if a.level > s.maxEscalation {
		return // Stop nagging.
	}
	if now.Sub(a.lastNotified) < s.notifyCooldown {
		return
	}

	if err := s.notifier.Notify(ctx, s.escalationMessage(t.Label, a.level, now.Sub(a.firedAt))); err != nil {
		s.log.Error("supervisor: escalation notify: %v", err)
	}
	a.lastNotified = now
	a.level++
}

// remind sends the one-off "almost done" warning and periodic countdowns.
func (s *Supervisor) remind(ctx context.Context, t domain.Timer, a *alertState, now time.Time) {
	if !a.warnedAlmost && t.Remaining <= s.almostDoneThreshold && t.Duration > s.almostDoneThreshold*2 {
		a.warnedAlmost = true
		a.lastRemindedAt = now
		if err := s.notifier.Notify(ctx, assistant.LineTimerAlmostDone(t.Label, t.Remaining)); err != nil {
			s.log.Error("supervisor: almost-done notify: %v", err)
		}
		return
	}

	if s.reminderInterval <= 0 || t.Duration <= s.reminderInterval || a.warnedAlmost {
		return
	}

	var due bool
	if a.lastRemindedAt.IsZero() {
		due = t.Duration-t.Remaining >= s.reminderInterval
	} else {
		due = now.Sub(a.lastRemindedAt) >= s.reminderInterval
	}
	if !due {
		return
	}

	a.lastRemindedAt = now
	if err := s.notifier.Notify(ctx, assistant.LineTimerCountdown(t.Label, t.Remaining)); err != nil {
		s.log.Error("supervisor: reminder notify: %v", err)
	}
}

// escalationMessage returns a message based on the escalation level.
func (s *Supervisor) escalationMessage(label string, level int, elapsed time.Duration) string {
	if level >= s.maxEscalation {
		return assistant.LineTimerUrgent(label)
	}
	return assistant.LineTimerReminder(label, elapsed)
}
