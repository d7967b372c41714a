package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

func newTestClassifier() *Classifier {
	return NewClassifier(logger.New(logger.LevelOff, nil))
}

func TestClassify(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		input string
		want  domain.Intent
	}{
		// Navigation
		{"next", domain.Simple(domain.IntentNextStep)},
		{"  Next  ", domain.Simple(domain.IntentNextStep)},
		{"done", domain.Simple(domain.IntentNextStep)},
		{"ok, move on", domain.Simple(domain.IntentNextStep)},
		{"I'm done with this", domain.Simple(domain.IntentNextStep)},
		{"back", domain.Simple(domain.IntentPreviousStep)},
		{"go back please", domain.Simple(domain.IntentPreviousStep)},
		{"previous step", domain.Simple(domain.IntentPreviousStep)},
		{"repeat that", domain.Simple(domain.IntentRepeatStep)},
		{"what?", domain.Simple(domain.IntentRepeatStep)},
		{"say that again", domain.Simple(domain.IntentRepeatStep)},

		// Step numbers
		{"go to step 3", domain.GoToStepIntent(3)},
		{"step 2", domain.GoToStepIntent(2)},
		{"jump to 5", domain.GoToStepIntent(5)},
		{"skip to step number 4", domain.GoToStepIntent(4)},
		{"go back to step 2", domain.GoToStepIntent(2)},

		// Durations
		{"set timer for 5 minutes", domain.SetTimerIntent(5 * time.Minute)},
		{"timer 10 min", domain.SetTimerIntent(10 * time.Minute)},
		{"30 seconds", domain.SetTimerIntent(30 * time.Second)},
		{"set a timer for 2 hours", domain.SetTimerIntent(2 * time.Hour)},
		{"5 minutes and 30 seconds", domain.SetTimerIntent(5 * time.Minute)},

		// Timer control
		{"cancel the timer", domain.Simple(domain.IntentCancelTimer)},
		{"stop timers", domain.Simple(domain.IntentCancelTimer)},
		{"check timer", domain.Simple(domain.IntentCheckTimer)},
		{"how long on the timer?", domain.Simple(domain.IntentCheckTimer)},

		// Substitutions
		{"substitute for eggs", domain.SubstituteIntent("eggs")},
		{"what can I use instead of butter?", domain.SubstituteIntent("butter")},
		{"I don't have any buttermilk", domain.SubstituteIntent("buttermilk")},
		{"we ran out of the brown sugar.", domain.SubstituteIntent("brown sugar")},
		{"alternative to heavy cream", domain.SubstituteIntent("heavy cream")},

		// Scaling
		{"double the recipe", domain.MultiplyIntent(2)},
		{"triple it", domain.MultiplyIntent(3)},
		{"make 6 servings", domain.ScaleIntent(6)},
		{"scale to 8", domain.ScaleIntent(8)},
		{"feed 10", domain.ScaleIntent(10)},
		{"double it for 6 people", domain.ScaleIntent(6)},

		// Information
		{"what ingredients do I need", domain.Simple(domain.IntentWhatIngredients)},
		{"what do i need", domain.Simple(domain.IntentWhatIngredients)},
		{"what's next", domain.Simple(domain.IntentWhatIsNext)},
		{"what is next?", domain.Simple(domain.IntentWhatIsNext)},
		{"how long is left", domain.Simple(domain.IntentHowLongLeft)},
		{"how much longer", domain.Simple(domain.IntentHowLongLeft)},

		// Techniques
		{"what does sauté mean", domain.ExplainIntent("sauté")},
		{"what does fold mean?", domain.ExplainIntent("fold")},
		{"how do I deglaze?", domain.ExplainIntent("deglaze")},
		{"how to blanch", domain.ExplainIntent("blanch")},
		{"explain the roux", domain.ExplainIntent("roux")},
		{"what is a roux?", domain.ExplainIntent("roux")},

		// Help
		{"help", domain.Simple(domain.IntentHelp)},
		{"what can you do", domain.Simple(domain.IntentHelp)},

		// Fallback
		{"make me a sandwich", domain.UnknownIntent("make me a sandwich")},
		{"Flambé The Cat", domain.UnknownIntent("Flambé The Cat")},
		{"what", domain.UnknownIntent("what")},
		{"", domain.UnknownIntent("")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input))
		})
	}
}

// The evaluation order decides which intent an ambiguous sentence gets.
// Changing it is a behaviour change and must update this list on purpose.
func TestRuleOrder(t *testing.T) {
	// Navigation comes first but defers to step-number phrasing, so
	// "go back to step 2" is a jump rather than a single step back.
	want := []string{
		"navigation",
		"step_number",
		"duration",
		"timer_control",
		"substitution",
		"scaling",
		"information",
		"technique",
		"help",
	}
	assert.Equal(t, want, newTestClassifier().RuleNames())
}

// Each case matches more than one rule; the earlier rule must win.
func TestRuleOrderTieBreaks(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		input string
		want  domain.IntentType
		why   string
	}{
		{"next step in 5 minutes", domain.IntentNextStep, "navigation before duration"},
		{"step 3 for 10 minutes", domain.IntentGoToStep, "step number before duration"},
		{"cancel the 5 minute timer", domain.IntentSetTimer, "duration before timer control"},
		{"out of time, how long is left", domain.IntentSubstituteIngredient, "substitution before information"},
		{"double it to 6 servings", domain.IntentScaleServings, "numeric servings inside scaling"},
		{"how long do i simmer", domain.IntentHowLongLeft, "information before technique"},
		{"explain the options", domain.IntentExplainTechnique, "technique before help"},
	}

	for _, tt := range tests {
		t.Run(tt.why, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input).Type)
		})
	}

	assert.Equal(t, 6, c.Classify("double it to 6 servings").Servings)
	assert.False(t, c.Classify("double it to 6 servings").Relative)
}

func TestMalformedNumbersFallThrough(t *testing.T) {
	c := newTestClassifier()

	// Overflows strconv.Atoi, so the step rule must not match.
	got := c.Classify("go to step 99999999999999999999999")
	assert.NotEqual(t, domain.IntentGoToStep, got.Type)

	// Zero servings is not a scale request; "double" still is.
	got = c.Classify("double it for 0 people")
	assert.Equal(t, domain.MultiplyIntent(2), got)

	// Durations that are zero or overflow time.Duration set no timer.
	for _, q := range []string{
		"set timer for 0 minutes",
		"set timer for 9223372037 seconds",
		"set a timer for 3000000 hours",
	} {
		got = c.Classify(q)
		assert.NotEqual(t, domain.IntentSetTimer, got.Type, q)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := newTestClassifier()
	for _, q := range []string{"next", "substitute for eggs", "what does fold mean", "xyz"} {
		assert.Equal(t, c.Classify(q), c.Classify(q), q)
	}
}
