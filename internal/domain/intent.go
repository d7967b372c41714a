package domain

import (
	"fmt"
	"time"
)

// IntentType classifies what the user wants to do. The set is closed.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentNextStep
	IntentPreviousStep
	IntentRepeatStep
	IntentGoToStep
	IntentSetTimer
	IntentCancelTimer
	IntentCheckTimer
	IntentSubstituteIngredient
	IntentScaleServings
	IntentWhatIngredients
	IntentWhatIsNext
	IntentHowLongLeft
	IntentExplainTechnique
	IntentHelp
)

// intentNames maps IntentType values to their snake_case names.
var intentNames = map[IntentType]string{
	IntentUnknown:              "unknown",
	IntentNextStep:             "next_step",
	IntentPreviousStep:         "previous_step",
	IntentRepeatStep:           "repeat_step",
	IntentGoToStep:             "go_to_step",
	IntentSetTimer:             "set_timer",
	IntentCancelTimer:          "cancel_timer",
	IntentCheckTimer:           "check_timer",
	IntentSubstituteIngredient: "substitute_ingredient",
	IntentScaleServings:        "scale_servings",
	IntentWhatIngredients:      "what_ingredients",
	IntentWhatIsNext:           "what_is_next",
	IntentHowLongLeft:          "how_long_left",
	IntentExplainTechnique:     "explain_technique",
	IntentHelp:                 "help",
}

// String returns the snake_case intent name.
func (i IntentType) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (i IntentType) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// IntentFromString converts a snake_case intent name to an IntentType.
// Returns IntentUnknown for unrecognized names.
func IntentFromString(name string) IntentType {
	for t, n := range intentNames {
		if n == name {
			return t
		}
	}
	return IntentUnknown
}

// Intent is a structured interpretation of an utterance. Only the fields
// relevant to Type are set:
//
//	IntentGoToStep             Step (1-based, as spoken)
//	IntentSetTimer             Duration
//	IntentScaleServings        Servings (absolute count, or a multiplier when Relative)
//	IntentSubstituteIngredient Subject (ingredient name)
//	IntentExplainTechnique     Subject (technique name)
//	IntentUnknown              Subject (raw utterance)
type Intent struct {
	Type     IntentType    `yaml:"type"`
	Step     int           `yaml:"step,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Servings int           `yaml:"servings,omitempty"`
	Relative bool          `yaml:"relative,omitempty"`
	Subject  string        `yaml:"subject,omitempty"`
}

// Simple returns a payload-free intent of the given type.
func Simple(t IntentType) Intent { return Intent{Type: t} }

// GoToStepIntent builds a GoToStep intent for a 1-based step number.
func GoToStepIntent(step int) Intent { return Intent{Type: IntentGoToStep, Step: step} }

// SetTimerIntent builds a SetTimer intent.
func SetTimerIntent(d time.Duration) Intent { return Intent{Type: IntentSetTimer, Duration: d} }

// SubstituteIntent builds a SubstituteIngredient intent.
func SubstituteIntent(ingredient string) Intent {
	return Intent{Type: IntentSubstituteIngredient, Subject: ingredient}
}

// ScaleIntent builds a ScaleServings intent for an absolute serving count.
func ScaleIntent(servings int) Intent { return Intent{Type: IntentScaleServings, Servings: servings} }

// MultiplyIntent builds a ScaleServings intent that multiplies the recipe's
// own serving count, as in "double the recipe".
func MultiplyIntent(times int) Intent {
	return Intent{Type: IntentScaleServings, Servings: times, Relative: true}
}

// TargetServings resolves a ScaleServings intent against a recipe's base
// serving count.
func (i Intent) TargetServings(base int) int {
	if i.Relative {
		return base * i.Servings
	}
	return i.Servings
}

// ExplainIntent builds an ExplainTechnique intent.
func ExplainIntent(technique string) Intent {
	return Intent{Type: IntentExplainTechnique, Subject: technique}
}

// UnknownIntent carries the raw utterance that matched nothing.
func UnknownIntent(raw string) Intent { return Intent{Type: IntentUnknown, Subject: raw} }

// String renders the intent with its payload, e.g. "set_timer(5m0s)".
func (i Intent) String() string {
	switch i.Type {
	case IntentGoToStep:
		return fmt.Sprintf("%s(%d)", i.Type, i.Step)
	case IntentSetTimer:
		return fmt.Sprintf("%s(%s)", i.Type, i.Duration)
	case IntentScaleServings:
		if i.Relative {
			return fmt.Sprintf("%s(x%d)", i.Type, i.Servings)
		}
		return fmt.Sprintf("%s(%d)", i.Type, i.Servings)
	case IntentSubstituteIngredient, IntentExplainTechnique, IntentUnknown:
		return fmt.Sprintf("%s(%q)", i.Type, i.Subject)
	default:
		return i.Type.String()
	}
}
