package assistant

// lines.go centralises every sentence the assistant says. Edit this file to
// change the assistant's voice; keep the wording short enough to read aloud.

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/dedent"

	"github.com/hammamikhairi/souschef/internal/domain"
)

// ── Navigation ───────────────────────────────────────────────────

func LineStep(number int, text string) string {
	return fmt.Sprintf("Step %d: %s", number, text)
}

func LineRecipeComplete(title string) string {
	return fmt.Sprintf("That was the last step! %s is complete. Enjoy your meal!", title)
}

func LineAlreadyFirst() string {
	return "You're already at the first step."
}

func LineNoActiveStep() string {
	return "There's no active step right now."
}

func LineStepOutOfRange(total int) string {
	return fmt.Sprintf("This recipe only has %s.", plural(total, "step", "steps"))
}

func LineNoRecipe() string {
	return "There's no recipe loaded. Start a recipe first."
}

// ── Timers ───────────────────────────────────────────────────────

func LineTimerSet(d time.Duration) string {
	return fmt.Sprintf("Timer set for %s. I'll let you know when it's done.", FormatDuration(d))
}

func LineNoTimersRunning() string {
	return "You don't have any timers running."
}

func LineTimerCancelled(label string) string {
	return fmt.Sprintf("Timer %q cancelled.", label)
}

func LineTimersCancelled(n int) string {
	return fmt.Sprintf("All %d timers cancelled.", n)
}

func LineNoTimersSet() string {
	return "You don't have any timers set."
}

func LineTimersAllDone() string {
	return "All your timers are done!"
}

func LineTimerRemaining(t domain.Timer) string {
	return fmt.Sprintf("%s: %s remaining.", t.Label, FormatClock(t.Remaining))
}

func LineActiveTimers(timers []domain.Timer) string {
	parts := make([]string, len(timers))
	for i, t := range timers {
		parts[i] = fmt.Sprintf("%s: %s", t.Label, FormatClock(t.Remaining))
	}
	return "Active timers: " + strings.Join(parts, ", ")
}

// LineTimerDone is the urgent notice for a timer that reached zero.
func LineTimerDone(label string) string {
	return fmt.Sprintf("Timer done: %s!", label)
}

// LineTimerReminder repeats an unacknowledged finished timer.
func LineTimerReminder(label string, elapsed time.Duration) string {
	return fmt.Sprintf("Reminder: %s finished %s ago.", label, FormatDuration(elapsed))
}

// LineTimerAlmostDone warns that a running timer is close to zero.
func LineTimerAlmostDone(label string, remaining time.Duration) string {
	return fmt.Sprintf("Heads up: %s has %s left.", label, FormatDuration(remaining))
}

// LineTimerUrgent is the last, blunt reminder before the supervisor gives up.
func LineTimerUrgent(label string) string {
	return fmt.Sprintf("%s is still done and waiting. Check it now.", label)
}

func LineTimerCountdown(label string, remaining time.Duration) string {
	return fmt.Sprintf("%s: about %s to go.", label, FormatDuration(remaining))
}

// ── Session nudges ───────────────────────────────────────────────

func LineSessionPaused(elapsed time.Duration) string {
	return fmt.Sprintf("Your session has been paused for %s. Say \"resume\" when you're back.", FormatDuration(elapsed))
}

func LineStepOverdue(step int, onStep, expected time.Duration) string {
	return fmt.Sprintf("You've been on step %d for %s (it usually takes about %s). Everything okay?", step, FormatDuration(onStep), FormatDuration(expected))
}

func LineStillOnStep(step int, onStep time.Duration) string {
	return fmt.Sprintf("Still on step %d after %s. Take your time, just say \"next\" when you're ready.", step, FormatDuration(onStep))
}

// ── Knowledge ────────────────────────────────────────────────────

func LineNoSubstitution(ingredient string) string {
	return fmt.Sprintf("I don't have substitution info for %s. Try searching online for %q.", ingredient, ingredient+" substitute")
}

func LineSubstitutions(ingredient string, options []domain.Substitution) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = o.Name
		if o.Ratio != "" {
			parts[i] = fmt.Sprintf("%s (%s)", o.Name, o.Ratio)
		}
	}
	return fmt.Sprintf("Instead of %s, you can use %s.", ingredient, strings.Join(parts, ", or "))
}

func LineTechnique(info domain.TechniqueInfo) string {
	if info.Tips == "" {
		return info.Explanation
	}
	return fmt.Sprintf("%s\n\nTip: %s", info.Explanation, info.Tips)
}

func LineNoTechnique(technique string) string {
	return fmt.Sprintf("I don't have info about %q. Try searching online for a video tutorial.", technique)
}

// ── Scaling ──────────────────────────────────────────────────────

func LineScaling(from, to int, factor float64) string {
	return fmt.Sprintf("Scaling from %d to %d servings. Multiply all ingredients by %.1f.", from, to, factor)
}

func LineInvalidServings() string {
	return "I need a number of servings above zero to scale the recipe."
}

func LineUnknownServings() string {
	return "This recipe doesn't say how many it serves, so I can't scale it."
}

// ── Information ──────────────────────────────────────────────────

func LineIngredients(title string, ingredients []domain.Ingredient) string {
	if len(ingredients) == 0 {
		return "This recipe doesn't list any ingredients."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Ingredients for %s:", title)
	for _, ing := range ingredients {
		b.WriteString("\n- ")
		b.WriteString(ing.Display())
	}
	return b.String()
}

func LineNextUp(number int, text string) string {
	return fmt.Sprintf("Next up, step %d: %s", number, text)
}

func LineLastStep() string {
	return "This is the last step. After this, you're done!"
}

func LineAlmostDone() string {
	return "This is the last step, so you're almost done!"
}

func LineTimeLeft(d time.Duration, steps int) string {
	return fmt.Sprintf("About %s left (%s).", FormatDuration(d), plural(steps, "more step", "more steps"))
}

// ── Help / fallback ──────────────────────────────────────────────

var helpText = strings.TrimSpace(dedent.Dedent(`
	Here's what you can ask me:
	- "next", "back", "repeat" or "go to step 3"
	- "set a timer for 10 minutes", "check timer", "cancel timer"
	- "what can I use instead of eggs?"
	- "double the recipe" or "make 6 servings"
	- "what ingredients do I need?", "what's next?", "how long is left?"
	- "what does fold mean?" or "how do I deglaze?"
`))

func LineHelp() string {
	return helpText
}

func LineUnknown(query string) string {
	return fmt.Sprintf("I'm not sure how to help with \"%s\". Try saying \"help\".", query)
}

// ── Formatting helpers ───────────────────────────────────────────

// FormatDuration renders a duration the way it is spoken: seconds under a
// minute, whole minutes under an hour, otherwise hours plus leftover minutes
// ("1 hour 15 min").
func FormatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	switch {
	case secs < 60:
		return plural(secs, "second", "seconds")
	case secs < 3600:
		return plural(secs/60, "minute", "minutes")
	default:
		out := plural(secs/3600, "hour", "hours")
		if m := (secs % 3600) / 60; m > 0 {
			out += fmt.Sprintf(" %d min", m)
		}
		return out
	}
}

// FormatClock renders a countdown as m:ss.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
