package timer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/knowledge"
	"github.com/hammamikhairi/souschef/internal/logger"
	"github.com/hammamikhairi/souschef/internal/recipe"
	"github.com/hammamikhairi/souschef/internal/storage"
	"github.com/hammamikhairi/souschef/internal/testutil"
)

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

func (m *mockNotifier) urgentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urgent)
}

func (m *mockNotifier) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages) + len(m.urgent)
}

// fakeTicker returns whatever timers the test hands it.
type fakeTicker struct {
	mu  sync.Mutex
	res engine.TickResult
	err error
}

func (f *fakeTicker) Tick(context.Context) (engine.TickResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.res, f.err
}

func (f *fakeTicker) set(timers ...domain.Timer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.res = engine.TickResult{Timers: timers}
}

func runningTimer(id string, d, remaining time.Duration) domain.Timer {
	return domain.Timer{
		ID:        id,
		Label:     id,
		Duration:  d,
		Remaining: remaining,
		StartedAt: testutil.Epoch,
	}
}

func newTestSupervisor(ticker Ticker, notifier domain.Notifier, opts ...Option) (*Supervisor, func(time.Duration)) {
	now, advance := testutil.Clock()
	opts = append([]Option{WithClock(now)}, opts...)
	return New(ticker, notifier, logger.New(logger.LevelOff, nil), opts...), advance
}

func TestSupervisorFiresTimerOnce(t *testing.T) {
	ticker := &fakeTicker{}
	notifier := &mockNotifier{}
	sup, advance := newTestSupervisor(ticker, notifier, WithNotifyCooldown(time.Minute))
	ctx := context.Background()

	ticker.set(runningTimer("pasta", 10*time.Minute, 0))
	sup.tick(ctx)
	require.Equal(t, 1, notifier.urgentCount())
	assert.Equal(t, assistant.LineTimerDone("pasta"), notifier.urgent[0])

	// Within the cooldown nothing more is said.
	advance(30 * time.Second)
	sup.tick(ctx)
	assert.Equal(t, 1, notifier.total())

	advance(31 * time.Second)
	sup.tick(ctx)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, assistant.LineTimerReminder("pasta", 61*time.Second), notifier.messages[0])
}

func TestSupervisorRespectsMaxEscalation(t *testing.T) {
	ticker := &fakeTicker{}
	notifier := &mockNotifier{}
	sup, advance := newTestSupervisor(ticker, notifier,
		WithNotifyCooldown(10*time.Second),
		WithMaxEscalation(3),
	)
	ctx := context.Background()

	ticker.set(runningTimer("rice", time.Minute, 0))
	for i := 0; i < 10; i++ {
		sup.tick(ctx)
		advance(11 * time.Second)
	}

	// One urgent fire plus reminders at levels 1, 2 and 3.
	assert.Equal(t, 1, notifier.urgentCount())
	require.Len(t, notifier.messages, 3)
	assert.True(t, strings.HasPrefix(notifier.messages[0], "Reminder: rice"))
	assert.Equal(t, assistant.LineTimerUrgent("rice"), notifier.messages[2])
}

func TestSupervisorAlmostDoneWarning(t *testing.T) {
	tests := []struct {
		name      string
		duration  time.Duration
		remaining time.Duration
		want      bool
	}{
		{"inside threshold", 5 * time.Minute, 20 * time.Second, true},
		{"outside threshold", 5 * time.Minute, 2 * time.Minute, false},
		{"short timer", 50 * time.Second, 20 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticker := &fakeTicker{}
			notifier := &mockNotifier{}
			sup, _ := newTestSupervisor(ticker, notifier, WithAlmostDoneThreshold(30*time.Second))

			ticker.set(runningTimer("sauce", tt.duration, tt.remaining))
			sup.tick(context.Background())
			sup.tick(context.Background())

			if !tt.want {
				assert.Zero(t, notifier.total())
				return
			}
			require.Len(t, notifier.messages, 1, "warned once")
			assert.Equal(t, assistant.LineTimerAlmostDone("sauce", tt.remaining), notifier.messages[0])
		})
	}
}

func TestSupervisorCountdownReminders(t *testing.T) {
	ticker := &fakeTicker{}
	notifier := &mockNotifier{}
	sup, advance := newTestSupervisor(ticker, notifier, WithReminderInterval(2*time.Minute))
	ctx := context.Background()

	ticker.set(runningTimer("stock", 10*time.Minute, 9*time.Minute))
	sup.tick(ctx)
	assert.Zero(t, notifier.total())

	ticker.set(runningTimer("stock", 10*time.Minute, 8*time.Minute))
	advance(time.Minute)
	sup.tick(ctx)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, assistant.LineTimerCountdown("stock", 8*time.Minute), notifier.messages[0])

	ticker.set(runningTimer("stock", 10*time.Minute, 7*time.Minute))
	advance(time.Minute)
	sup.tick(ctx)
	assert.Len(t, notifier.messages, 1)

	ticker.set(runningTimer("stock", 10*time.Minute, 6*time.Minute))
	advance(time.Minute)
	sup.tick(ctx)
	assert.Len(t, notifier.messages, 2)
}

func TestSupervisorIgnoresPausedTimers(t *testing.T) {
	ticker := &fakeTicker{}
	notifier := &mockNotifier{}
	sup, _ := newTestSupervisor(ticker, notifier)

	paused := runningTimer("dough", 10*time.Minute, 10*time.Second)
	paused.PausedAt = testutil.Epoch
	ticker.set(paused)
	sup.tick(context.Background())

	assert.Zero(t, notifier.total())
}

func TestSupervisorForgetsRemovedTimers(t *testing.T) {
	ticker := &fakeTicker{}
	notifier := &mockNotifier{}
	sup, _ := newTestSupervisor(ticker, notifier)
	ctx := context.Background()

	ticker.set(runningTimer("a", time.Minute, 0))
	sup.tick(ctx)
	require.Len(t, sup.alerts, 1)

	ticker.set()
	sup.tick(ctx)
	assert.Empty(t, sup.alerts)

	// A restarted timer fires again.
	ticker.set(runningTimer("a", time.Minute, 0))
	sup.tick(ctx)
	assert.Equal(t, 2, notifier.urgentCount())
}

func TestSupervisorTickError(t *testing.T) {
	ticker := &fakeTicker{err: errors.New("disk on fire")}
	notifier := &mockNotifier{}
	sup, _ := newTestSupervisor(ticker, notifier)

	sup.tick(context.Background())
	assert.Zero(t, notifier.total())
}

func TestSupervisorWithEngine(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	now, advance := testutil.Clock()
	eng := engine.New(
		recipe.NewMemorySource(log, recipe.WithRecipes(testutil.NewTestRecipe("eggs"))),
		storage.NewMemoryStore(log),
		assistant.New(knowledge.Default(), log),
		log,
		engine.WithClock(now),
	)
	notifier := &mockNotifier{}
	sup := New(eng, notifier, log, WithClock(now))
	ctx := context.Background()

	_, err := eng.StartSession(ctx, "eggs")
	require.NoError(t, err)
	_, err = eng.AddTimer(ctx, 2*time.Minute, "butter", true)
	require.NoError(t, err)

	advance(time.Minute)
	sup.tick(ctx)
	assert.Zero(t, notifier.total())

	advance(90 * time.Second)
	sup.tick(ctx)
	require.Equal(t, 1, notifier.urgentCount())
	assert.Equal(t, "Timer done: butter!", notifier.urgent[0])
}

func TestSupervisorStartStop(t *testing.T) {
	ticker := &fakeTicker{}
	ticker.set(runningTimer("toast", time.Minute, 0))
	notifier := &mockNotifier{}
	sup := New(ticker, notifier, logger.New(logger.LevelOff, nil), WithTickInterval(10*time.Millisecond))

	sup.Start(context.Background())
	sup.Start(context.Background()) // second start is a no-op

	require.Eventually(t, func() bool { return notifier.urgentCount() == 1 }, time.Second, 5*time.Millisecond)

	sup.Stop()
	sup.Stop()
}
