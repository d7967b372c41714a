// Package engine owns the persisted cooking session. Every operation loads
// the saved state, applies one transition and saves the result, so the CLI,
// the REPL and the timer supervisor all see the same session.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine manages the cooking session. It depends only on interfaces and is
// fully testable with in-memory implementations.
type Engine struct {
	recipes   domain.RecipeSource
	store     domain.SessionStore
	assistant *assistant.Assistant
	log       *logger.Logger
	now       func() time.Time

	// mu serialises load-transition-save so concurrent callers cannot
	// lose each other's updates.
	mu sync.Mutex
}

// New creates a cooking engine with the given dependencies and options.
func New(recipes domain.RecipeSource, store domain.SessionStore, asst *assistant.Assistant, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recipes:   recipes,
		store:     store,
		assistant: asst,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot is the session together with the recipe being cooked. Timer
// remaining times are current as of the snapshot.
type Snapshot struct {
	State  domain.SessionState
	Recipe *domain.Recipe
}

// CurrentInstruction returns the step the cook is on.
func (s Snapshot) CurrentInstruction() (domain.Instruction, bool) {
	if s.Recipe == nil || s.State.StepIndex >= s.Recipe.TotalSteps() {
		return domain.Instruction{}, false
	}
	return s.Recipe.Instructions[s.State.StepIndex], true
}

// Progress is the fraction of the recipe reached.
func (s Snapshot) Progress() float64 {
	return s.State.Progress(s.Recipe.TotalSteps())
}

// ListRecipes returns all available recipes.
func (e *Engine) ListRecipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	return e.recipes.List(ctx)
}

// SearchRecipes returns recipes matching a query.
func (e *Engine) SearchRecipes(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	return e.recipes.Search(ctx, query)
}

// GetRecipe returns a full recipe by ID.
func (e *Engine) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return e.recipes.Get(ctx, id)
}

// StartSession begins cooking a recipe, replacing any session in progress.
// Preferences carry over.
func (e *Engine) StartSession(ctx context.Context, recipeID string) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	recipe, err := e.recipes.Get(ctx, recipeID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting recipe: %w", err)
	}
	if recipe.TotalSteps() == 0 {
		return Snapshot{}, fmt.Errorf("recipe %q has no steps: %w", recipeID, domain.ErrInvalidStep)
	}

	state, err := e.store.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading session: %w", err)
	}
	if state.IsActive() {
		e.log.Info("replacing session for %q", state.ActiveRecipeID)
	}

	state = state.StartSession(recipe.ID, e.now())
	if err := e.store.Save(ctx, state); err != nil {
		return Snapshot{}, fmt.Errorf("saving session: %w", err)
	}

	e.log.Info("started session for recipe %q (%d steps)", recipe.Title, recipe.TotalSteps())
	return Snapshot{State: state, Recipe: recipe}, nil
}

// EndSession finishes the current session.
func (e *Engine) EndSession(ctx context.Context) error {
	_, err := e.mutate(ctx, "end session", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		return snap.State.EndSession(now), nil
	})
	return err
}

// Current returns the active session with timers brought up to date.
func (e *Engine) Current(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadActive(ctx)
}

// Advance completes the current step and moves to the next one.
func (e *Engine) Advance(ctx context.Context) (Snapshot, error) {
	return e.navigate(ctx, "advance", func(snap Snapshot, now time.Time) (domain.SessionState, bool) {
		return snap.State.GoToNextStep(snap.Recipe.TotalSteps(), now)
	})
}

// Back returns to the previous step.
func (e *Engine) Back(ctx context.Context) (Snapshot, error) {
	return e.navigate(ctx, "back", func(snap Snapshot, now time.Time) (domain.SessionState, bool) {
		return snap.State.GoToPreviousStep(now)
	})
}

// GoTo jumps to a 1-based step number.
func (e *Engine) GoTo(ctx context.Context, step int) (Snapshot, error) {
	return e.navigate(ctx, fmt.Sprintf("go to step %d", step), func(snap Snapshot, now time.Time) (domain.SessionState, bool) {
		return snap.State.GoToStep(step-1, snap.Recipe.TotalSteps(), now)
	})
}

// CompleteStep marks the current step done without moving.
func (e *Engine) CompleteStep(ctx context.Context) (Snapshot, error) {
	return e.mutate(ctx, "complete step", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		return snap.State.CompleteCurrentStep(now), nil
	})
}

// Pause marks the session paused. Timers keep running: the food is still
// on the stove.
func (e *Engine) Pause(ctx context.Context) (Snapshot, error) {
	return e.mutate(ctx, "pause", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		return snap.State.Pause(now), nil
	})
}

// Resume clears the paused flag.
func (e *Engine) Resume(ctx context.Context) (Snapshot, error) {
	return e.mutate(ctx, "resume", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		return snap.State.Resume(now), nil
	})
}

// SetScale stores a scale factor, clamped to the allowed range.
func (e *Engine) SetScale(ctx context.Context, factor float64) (Snapshot, error) {
	return e.mutate(ctx, "set scale", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		next := snap.State.SetScaleFactor(factor)
		next.LastActionAt = now
		return next, nil
	})
}

// ScaleToServings sets the scale factor so the recipe feeds n people.
func (e *Engine) ScaleToServings(ctx context.Context, n int) (Snapshot, error) {
	return e.mutate(ctx, "scale to servings", func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		if n <= 0 {
			return snap.State, fmt.Errorf("servings must be positive, got %d: %w", n, domain.ErrOutOfRange)
		}
		if snap.Recipe.Servings <= 0 {
			return snap.State, fmt.Errorf("recipe %q has no serving count: %w", snap.Recipe.ID, domain.ErrOutOfRange)
		}
		next := snap.State.SetScaleFactor(float64(n) / float64(snap.Recipe.Servings))
		next.LastActionAt = now
		return next, nil
	})
}

// Reply is the answer to one utterance.
type Reply struct {
	Intent  domain.Intent
	Text    string
	Applied bool
	State   domain.SessionState
}

// Ask answers an utterance against the current session. With apply set, the
// intent's state transition is performed and saved; the reply always
// describes the state before the transition. Questions that need no session,
// such as substitutions, work without one.
func (e *Engine) Ask(ctx context.Context, query string, apply bool) (Reply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	state, err := e.store.Load(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("loading session: %w", err)
	}

	var recipe *domain.Recipe
	if state.IsActive() {
		if recipe, err = e.recipes.Get(ctx, state.ActiveRecipeID); err != nil {
			return Reply{}, fmt.Errorf("getting recipe: %w", err)
		}
		state = state.UpdateTimers(now)
	}

	res := e.assistant.Handle(query, state, recipe, apply, now)
	e.log.Debug("ask %q -> %s (applied=%v)", query, res.Intent, res.Applied)

	if res.Applied {
		if err := e.store.Save(ctx, res.State); err != nil {
			return Reply{}, fmt.Errorf("saving session: %w", err)
		}
	}
	return Reply{Intent: res.Intent, Text: res.Reply, Applied: res.Applied, State: res.State}, nil
}

// navigate runs a bounds-checked step transition. A rejected move returns
// ErrOutOfRange and leaves the stored session untouched.
func (e *Engine) navigate(ctx context.Context, what string, fn func(Snapshot, time.Time) (domain.SessionState, bool)) (Snapshot, error) {
	return e.mutate(ctx, what, func(snap Snapshot, now time.Time) (domain.SessionState, error) {
		next, ok := fn(snap, now)
		if !ok {
			return snap.State, fmt.Errorf("%s from step %d of %d: %w", what, snap.State.StepIndex+1, snap.Recipe.TotalSteps(), domain.ErrOutOfRange)
		}
		return next, nil
	})
}

// mutate loads the active session, applies fn and saves the result.
func (e *Engine) mutate(ctx context.Context, what string, fn func(Snapshot, time.Time) (domain.SessionState, error)) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, err := e.loadActive(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	next, err := fn(snap, e.now())
	if err != nil {
		return snap, err
	}

	if err := e.store.Save(ctx, next); err != nil {
		return Snapshot{}, fmt.Errorf("saving session: %w", err)
	}
	e.log.Debug("%s: step %d, %d timers", what, next.StepIndex+1, len(next.Timers))

	if !next.IsActive() {
		return Snapshot{State: next}, nil
	}
	return Snapshot{State: next, Recipe: snap.Recipe}, nil
}

// loadActive reads the session and its recipe. Caller holds mu.
func (e *Engine) loadActive(ctx context.Context) (Snapshot, error) {
	state, err := e.store.Load(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading session: %w", err)
	}
	if !state.IsActive() {
		return Snapshot{}, domain.ErrNoActiveSession
	}

	recipe, err := e.recipes.Get(ctx, state.ActiveRecipeID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting recipe %q: %w", state.ActiveRecipeID, err)
	}
	return Snapshot{State: state.UpdateTimers(e.now()), Recipe: recipe}, nil
}
