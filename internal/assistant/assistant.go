// Package assistant ties the intent classifier, the knowledge base and the
// response lines together. Classification, reply rendering and state
// application are separate calls so a host can show a reply without acting
// on it.
package assistant

import (
	"time"

	"github.com/hammamikhairi/souschef/internal/conversation"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Assistant answers cooking questions against a session snapshot.
// It holds no session state of its own and is safe for concurrent use.
type Assistant struct {
	kb           domain.KnowledgeBase
	classifier   *conversation.Classifier
	log          *logger.Logger
	stepEstimate time.Duration
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClassifier overrides the default rule classifier.
func WithClassifier(c *conversation.Classifier) Option {
	return func(a *Assistant) { a.classifier = c }
}

// WithStepEstimate sets the duration assumed for steps without one.
func WithStepEstimate(d time.Duration) Option {
	return func(a *Assistant) {
		if d > 0 {
			a.stepEstimate = d
		}
	}
}

// New creates an assistant backed by the given knowledge base.
func New(kb domain.KnowledgeBase, log *logger.Logger, opts ...Option) *Assistant {
	a := &Assistant{
		kb:           kb,
		log:          log,
		stepEstimate: DefaultStepEstimate,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.classifier == nil {
		a.classifier = conversation.NewClassifier(log)
	}
	return a
}

// Classify maps an utterance to an intent.
func (a *Assistant) Classify(query string) domain.Intent {
	return a.classifier.Classify(query)
}

// Process classifies the query and renders the reply without touching state.
func (a *Assistant) Process(query string, state domain.SessionState, recipe *domain.Recipe) string {
	return a.Respond(a.Classify(query), state, recipe)
}

// Result is the outcome of handling one utterance.
type Result struct {
	Intent  domain.Intent
	Reply   string
	State   domain.SessionState
	Applied bool
}

// Handle classifies the query, renders the reply from the current state and,
// when apply is set, performs the intent's state transition.
func (a *Assistant) Handle(query string, state domain.SessionState, recipe *domain.Recipe, apply bool, now time.Time) Result {
	intent := a.Classify(query)
	res := Result{
		Intent: intent,
		Reply:  a.Respond(intent, state, recipe),
		State:  state,
	}
	if apply {
		res.State, res.Applied = Apply(intent, state, recipe, now)
		a.log.Debug("applied %s: %v", intent, res.Applied)
	}
	return res
}

// Apply performs the session transition an intent implies. Read-only
// intents, an inactive session and rejected transitions all return the
// state unchanged with applied=false.
func Apply(intent domain.Intent, state domain.SessionState, recipe *domain.Recipe, now time.Time) (domain.SessionState, bool) {
	if !state.IsActive() {
		return state, false
	}

	switch intent.Type {
	case domain.IntentNextStep:
		return state.GoToNextStep(recipe.TotalSteps(), now)

	case domain.IntentPreviousStep:
		return state.GoToPreviousStep(now)

	case domain.IntentGoToStep:
		return state.GoToStep(intent.Step-1, recipe.TotalSteps(), now)

	case domain.IntentSetTimer:
		if intent.Duration <= 0 {
			return state, false
		}
		next, t := state.AddTimer(intent.Duration, "")
		next, _ = next.UpdateTimer(t.ID, func(t domain.Timer) domain.Timer { return t.Start(now) })
		next.LastActionAt = now
		return next, true

	case domain.IntentCancelTimer:
		if len(state.Timers) == 0 {
			return state, false
		}
		next := state.RemoveAllTimers()
		next.LastActionAt = now
		return next, true

	case domain.IntentScaleServings:
		if recipe == nil || recipe.Servings <= 0 {
			return state, false
		}
		target := intent.TargetServings(recipe.Servings)
		if target <= 0 {
			return state, false
		}
		next := state.SetScaleFactor(float64(target) / float64(recipe.Servings))
		next.LastActionAt = now
		return next, true
	}

	return state, false
}
