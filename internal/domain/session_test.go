package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func startedSession(t *testing.T) SessionState {
	t.Helper()
	return NewSessionState().StartSession("pancakes", t0)
}

func TestStartSessionResetsEverythingButPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.VoiceSpeed = 1.5

	s := SessionState{
		ActiveRecipeID: "old",
		StepIndex:      4,
		CompletedSteps: []int{0, 1, 2},
		ScaleFactor:    3,
		IsPaused:       true,
		Preferences:    prefs,
	}
	s, _ = s.AddTimer(time.Minute, "")

	got := s.StartSession("new", t0)
	assert.Equal(t, "new", got.ActiveRecipeID)
	assert.Equal(t, 0, got.StepIndex)
	assert.Empty(t, got.CompletedSteps)
	assert.Empty(t, got.Timers)
	assert.Equal(t, 1.0, got.ScaleFactor)
	assert.False(t, got.IsPaused)
	assert.Equal(t, prefs, got.Preferences)
	assert.Equal(t, t0, got.SessionStartedAt)
	assert.Equal(t, t0, got.LastActionAt)
}

func TestEndSessionKeepsPreferences(t *testing.T) {
	s := startedSession(t)
	s.Preferences.AutoAdvance = true
	s, _ = s.AddTimer(time.Minute, "eggs")
	s = s.SetScaleFactor(2)

	got := s.EndSession(t0.Add(time.Hour))
	assert.False(t, got.IsActive())
	assert.Empty(t, got.Timers)
	assert.Equal(t, 1.0, got.ScaleFactor)
	assert.True(t, got.SessionStartedAt.IsZero())
	assert.True(t, got.Preferences.AutoAdvance)
}

func TestGoToNextStep(t *testing.T) {
	s := startedSession(t)

	next, ok := s.GoToNextStep(3, t0.Add(time.Minute))
	require.True(t, ok)
	assert.Equal(t, 1, next.StepIndex)
	assert.Equal(t, []int{0}, next.CompletedSteps)
	assert.Equal(t, t0.Add(time.Minute), next.LastActionAt)

	// The receiver is untouched.
	assert.Equal(t, 0, s.StepIndex)
	assert.Empty(t, s.CompletedSteps)
}

func TestGoToNextStepFailsOnLastStep(t *testing.T) {
	s := startedSession(t)
	s, ok := s.GoToStep(2, 3, t0)
	require.True(t, ok)

	got, ok := s.GoToNextStep(3, t0.Add(time.Minute))
	assert.False(t, ok)
	assert.Equal(t, s, got)
}

func TestGoToPreviousStep(t *testing.T) {
	s := startedSession(t)

	_, ok := s.GoToPreviousStep(t0)
	assert.False(t, ok, "cannot go back from the first step")

	s, _ = s.GoToNextStep(3, t0)
	s, _ = s.GoToNextStep(3, t0)
	require.Equal(t, []int{0, 1}, s.CompletedSteps)

	prev, ok := s.GoToPreviousStep(t0)
	require.True(t, ok)
	assert.Equal(t, 1, prev.StepIndex)
	assert.Equal(t, []int{0, 1}, prev.CompletedSteps, "going back never uncompletes")
}

func TestGoToStep(t *testing.T) {
	tests := []struct {
		name   string
		step   int
		total  int
		wantOK bool
	}{
		{"first", 0, 5, true},
		{"last", 4, 5, true},
		{"past end", 5, 5, false},
		{"negative", -1, 5, false},
		{"empty recipe", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startedSession(t)
			got, ok := s.GoToStep(tt.step, tt.total, t0)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.step, got.StepIndex)
			} else {
				assert.Equal(t, s, got)
			}
			assert.Empty(t, got.CompletedSteps)
		})
	}
}

func TestStepIndexStaysInRange(t *testing.T) {
	const total = 4
	s := startedSession(t)

	moves := []func(SessionState) (SessionState, bool){
		func(s SessionState) (SessionState, bool) { return s.GoToNextStep(total, t0) },
		func(s SessionState) (SessionState, bool) { return s.GoToPreviousStep(t0) },
		func(s SessionState) (SessionState, bool) { return s.GoToStep(7, total, t0) },
		func(s SessionState) (SessionState, bool) { return s.GoToStep(3, total, t0) },
		func(s SessionState) (SessionState, bool) { return s.GoToStep(-2, total, t0) },
	}

	for i := 0; i < 50; i++ {
		before := s
		next, ok := moves[i%len(moves)](s)
		if !ok {
			assert.Equal(t, before, next)
		}
		s = next
		assert.GreaterOrEqual(t, s.StepIndex, 0)
		assert.Less(t, s.StepIndex, total)
	}
}

func TestCompleteCurrentStep(t *testing.T) {
	s := startedSession(t)
	s, _ = s.GoToStep(2, 5, t0)

	s = s.CompleteCurrentStep(t0)
	s = s.CompleteCurrentStep(t0)
	assert.Equal(t, []int{2}, s.CompletedSteps)
	assert.True(t, s.IsStepCompleted(2))
	assert.False(t, s.IsStepCompleted(0))
}

func TestAddTimerDefaults(t *testing.T) {
	s := startedSession(t)
	s, _ = s.GoToStep(1, 3, t0)

	s, timer := s.AddTimer(5*time.Minute, "")
	require.Len(t, s.Timers, 1)
	assert.Equal(t, "Step 2", timer.Label)
	require.NotNil(t, timer.AssociatedStep)
	assert.Equal(t, 1, *timer.AssociatedStep)
	assert.False(t, timer.IsRunning(), "a new timer is not started")
	assert.Equal(t, 5*time.Minute, timer.Remaining)

	s, other := s.AddTimer(time.Minute, "pasta")
	assert.NotEqual(t, timer.ID, other.ID)
	assert.Equal(t, "pasta", s.Timers[1].Label)
}

func TestRemoveTimers(t *testing.T) {
	s := startedSession(t)
	s, a := s.AddTimer(time.Minute, "a")
	s, b := s.AddTimer(time.Minute, "b")

	got := s.RemoveTimer(a.ID)
	require.Len(t, got.Timers, 1)
	assert.Equal(t, b.ID, got.Timers[0].ID)
	assert.Len(t, s.Timers, 2, "receiver keeps both timers")

	assert.Len(t, s.RemoveTimer("missing").Timers, 2)
	assert.Empty(t, s.RemoveAllTimers().Timers)
}

func TestSetScaleFactorClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.5, 1.5},
		{0.25, 0.25},
		{4, 4},
		{0.1, 0.25},
		{0, 0.25},
		{-3, 0.25},
		{10, 4},
		{math.Inf(1), 4},
		{math.Inf(-1), 0.25},
		{math.NaN(), 1},
	}

	for _, tt := range tests {
		got := NewSessionState().SetScaleFactor(tt.in)
		assert.Equal(t, tt.want, got.ScaleFactor, "input %v", tt.in)
		assert.GreaterOrEqual(t, got.ScaleFactor, MinScaleFactor)
		assert.LessOrEqual(t, got.ScaleFactor, MaxScaleFactor)
	}
}

func TestScaleAmount(t *testing.T) {
	s := NewSessionState().SetScaleFactor(2)
	assert.Equal(t, 3.0, s.ScaleAmount(1.5))
}

func TestPauseResume(t *testing.T) {
	s := startedSession(t)
	paused := s.Pause(t0.Add(time.Minute))
	assert.True(t, paused.IsPaused)
	assert.Equal(t, t0.Add(time.Minute), paused.LastActionAt)

	resumed := paused.Resume(t0.Add(2 * time.Minute))
	assert.False(t, resumed.IsPaused)
}

// Progress must divide by the total step count, not by the current index.
func TestProgressUsesTotalSteps(t *testing.T) {
	s := startedSession(t)
	assert.InDelta(t, 0.25, s.Progress(4), 1e-9)

	s, _ = s.GoToStep(3, 4, t0)
	assert.InDelta(t, 1.0, s.Progress(4), 1e-9)

	s, _ = s.GoToStep(1, 4, t0)
	assert.InDelta(t, 0.5, s.Progress(4), 1e-9)

	assert.Equal(t, 0.0, s.Progress(0))
}

func TestScenarioNextOnThreeStepRecipe(t *testing.T) {
	s := startedSession(t)

	s, ok := s.GoToNextStep(3, t0)
	require.True(t, ok)
	assert.Equal(t, 1, s.StepIndex)
	assert.True(t, s.IsStepCompleted(0))
}
