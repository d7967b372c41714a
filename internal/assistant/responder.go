package assistant

import (
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// DefaultStepEstimate is counted for every remaining step that has no
// explicit duration when estimating time left.
const DefaultStepEstimate = 120 * time.Second

// Respond renders the reply for an intent. It reads the state and recipe but
// never changes them; Apply performs the matching state transition.
func (a *Assistant) Respond(intent domain.Intent, state domain.SessionState, recipe *domain.Recipe) string {
	switch intent.Type {
	case domain.IntentNextStep:
		if recipe == nil {
			return LineNoRecipe()
		}
		next := state.StepIndex + 1
		if next >= recipe.TotalSteps() {
			return LineRecipeComplete(recipe.Title)
		}
		return LineStep(next+1, recipe.Instructions[next].Text)

	case domain.IntentPreviousStep:
		if recipe == nil {
			return LineNoRecipe()
		}
		if state.StepIndex <= 0 {
			return LineAlreadyFirst()
		}
		prev := state.StepIndex - 1
		if prev >= recipe.TotalSteps() {
			return LineNoActiveStep()
		}
		return LineStep(prev+1, recipe.Instructions[prev].Text)

	case domain.IntentRepeatStep:
		if recipe == nil || state.StepIndex >= recipe.TotalSteps() {
			return LineNoActiveStep()
		}
		return LineStep(state.StepIndex+1, recipe.Instructions[state.StepIndex].Text)

	case domain.IntentGoToStep:
		if recipe == nil {
			return LineNoRecipe()
		}
		idx := intent.Step - 1
		if idx < 0 || idx >= recipe.TotalSteps() {
			return LineStepOutOfRange(recipe.TotalSteps())
		}
		return LineStep(intent.Step, recipe.Instructions[idx].Text)

	case domain.IntentSetTimer:
		return LineTimerSet(intent.Duration)

	case domain.IntentCancelTimer:
		switch len(state.Timers) {
		case 0:
			return LineNoTimersRunning()
		case 1:
			return LineTimerCancelled(state.Timers[0].Label)
		default:
			return LineTimersCancelled(len(state.Timers))
		}

	case domain.IntentCheckTimer:
		if len(state.Timers) == 0 {
			return LineNoTimersSet()
		}
		pending := state.ActiveTimers()
		switch len(pending) {
		case 0:
			return LineTimersAllDone()
		case 1:
			return LineTimerRemaining(pending[0])
		default:
			return LineActiveTimers(pending)
		}

	case domain.IntentSubstituteIngredient:
		opts, ok := a.kb.GetSubstitutions(intent.Subject)
		if !ok || len(opts) == 0 {
			return LineNoSubstitution(intent.Subject)
		}
		return LineSubstitutions(intent.Subject, opts)

	case domain.IntentScaleServings:
		if recipe == nil {
			return LineNoRecipe()
		}
		if recipe.Servings <= 0 {
			return LineUnknownServings()
		}
		target := intent.TargetServings(recipe.Servings)
		if target <= 0 {
			return LineInvalidServings()
		}
		return LineScaling(recipe.Servings, target, float64(target)/float64(recipe.Servings))

	case domain.IntentWhatIngredients:
		if recipe == nil {
			return LineNoRecipe()
		}
		return LineIngredients(recipe.Title, recipe.Ingredients)

	case domain.IntentWhatIsNext:
		if recipe == nil {
			return LineNoRecipe()
		}
		next := state.StepIndex + 1
		if next >= recipe.TotalSteps() {
			return LineLastStep()
		}
		return LineNextUp(next+1, recipe.Instructions[next].Text)

	case domain.IntentHowLongLeft:
		if recipe == nil {
			return LineNoRecipe()
		}
		left, steps := a.timeLeft(state.StepIndex, recipe)
		if steps == 0 {
			return LineAlmostDone()
		}
		return LineTimeLeft(left, steps)

	case domain.IntentExplainTechnique:
		info, ok := a.kb.GetTechnique(intent.Subject)
		if !ok {
			return LineNoTechnique(intent.Subject)
		}
		return LineTechnique(info)

	case domain.IntentHelp:
		return LineHelp()

	default:
		return LineUnknown(intent.Subject)
	}
}

// timeLeft sums the durations of the steps after the current one.
func (a *Assistant) timeLeft(stepIndex int, recipe *domain.Recipe) (time.Duration, int) {
	var total time.Duration
	steps := 0
	for i := stepIndex + 1; i < recipe.TotalSteps(); i++ {
		if i < 0 {
			continue
		}
		d := recipe.Instructions[i].Duration
		if d <= 0 {
			d = a.stepEstimate
		}
		total += d
		steps++
	}
	return total, steps
}
