// Package storage provides session persistence implementations.
package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps the single session in memory. Safe for concurrent access.
type MemoryStore struct {
	mu    sync.RWMutex
	state *domain.SessionState
	log   *logger.Logger
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Save stores a deep copy of the state, replacing any previous one.
func (s *MemoryStore) Save(ctx context.Context, state domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving session (recipe=%q, step=%d, timers=%d)", state.ActiveRecipeID, state.StepIndex, len(state.Timers))
	cp := deepCopy(state)
	s.state = &cp
	return nil
}

// Load returns a copy of the saved state, or a fresh state if none exists.
func (s *MemoryStore) Load(ctx context.Context) (domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		s.log.Debug("no saved session, returning a fresh one")
		return domain.NewSessionState(), nil
	}
	return deepCopy(*s.state), nil
}

// Clear forgets the saved state.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = nil
	s.log.Debug("cleared saved session")
	return nil
}

// deepCopy detaches every slice and pointer from the original.
func deepCopy(state domain.SessionState) domain.SessionState {
	state.CompletedSteps = slices.Clone(state.CompletedSteps)
	state.Timers = slices.Clone(state.Timers)
	for i, t := range state.Timers {
		if t.AssociatedStep != nil {
			step := *t.AssociatedStep
			state.Timers[i].AssociatedStep = &step
		}
	}
	return state
}
