// Package conversation turns free-text utterances into intents and delivers
// notifications back to the user.
package conversation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Classifier maps an utterance to an intent by folding an ordered rule list.
// The first rule that matches wins, so the order of rules is part of the
// public behaviour and RuleNames exposes it for tests.
type Classifier struct {
	log   *logger.Logger
	rules []rule
}

type rule struct {
	name  string
	match func(text string) (domain.Intent, bool)
}

// NewClassifier creates a rule-based intent classifier.
func NewClassifier(log *logger.Logger) *Classifier {
	return &Classifier{
		log: log,
		rules: []rule{
			{"navigation", matchNavigation},
			{"step_number", matchStepNumber},
			{"duration", matchDuration},
			{"timer_control", matchTimerControl},
			{"substitution", matchSubstitution},
			{"scaling", matchScaling},
			{"information", matchInformation},
			{"technique", matchTechnique},
			{"help", matchHelp},
		},
	}
}

// RuleNames returns the rule groups in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.name
	}
	return names
}

// Classify converts an utterance into an intent. It never fails: anything
// no rule recognises becomes an Unknown intent carrying the trimmed input.
func (c *Classifier) Classify(input string) domain.Intent {
	raw := strings.TrimSpace(input)
	text := strings.ToLower(raw)
	if text == "" {
		return domain.UnknownIntent(raw)
	}

	for _, r := range c.rules {
		if intent, ok := r.match(text); ok {
			c.log.Debug("classified %q as %s by %s", raw, intent, r.name)
			return intent
		}
	}

	c.log.Debug("no rule matched %q", raw)
	return domain.UnknownIntent(raw)
}

// --- navigation ---

var (
	nextExact     = []string{"next", "done", "continue", "finished", "ok next"}
	nextContains  = []string{"next step", "move on", "go forward", "continue", "i'm done", "im done", "i am done"}
	prevExact     = []string{"back", "last step"}
	prevContains  = []string{"previous", "go back", "step back", "back up"}
	repeatExact   = []string{"what?", "pardon", "huh", "huh?"}
	repeatContain = []string{"repeat", "say again", "say that again", "again", "what was that", "come again"}
)

func matchNavigation(text string) (domain.Intent, bool) {
	// "go back to step 2" is a jump, not a single step back.
	if stepNumberRe.MatchString(text) {
		return domain.Intent{}, false
	}
	switch {
	case equalsAny(text, nextExact) || containsAny(text, nextContains):
		return domain.Simple(domain.IntentNextStep), true
	case equalsAny(text, prevExact) || containsAny(text, prevContains):
		return domain.Simple(domain.IntentPreviousStep), true
	case equalsAny(text, repeatExact) || containsAny(text, repeatContain):
		return domain.Simple(domain.IntentRepeatStep), true
	}
	return domain.Intent{}, false
}

// --- step number ---

var stepNumberRe = regexp.MustCompile(`(?:step|go to|goto|jump to|skip to)\s+(?:number\s+)?(\d+)`)

func matchStepNumber(text string) (domain.Intent, bool) {
	m := stepNumberRe.FindStringSubmatch(text)
	if m == nil {
		return domain.Intent{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Intent{}, false
	}
	return domain.GoToStepIntent(n), true
}

// --- duration ---

type durationPattern struct {
	re   *regexp.Regexp
	unit time.Duration
}

// Minutes are tried first, so "5 minutes 30 seconds" means five minutes.
var durationPatterns = []durationPattern{
	{regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?|m)\b`), time.Minute},
	{regexp.MustCompile(`(\d+)\s*(?:seconds?|secs?)\b`), time.Second},
	{regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?)\b`), time.Hour},
}

func matchDuration(text string) (domain.Intent, bool) {
	for _, p := range durationPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		// Zero and durations past time.Duration's range are not timers.
		if err != nil || n <= 0 || int64(n) > math.MaxInt64/int64(p.unit) {
			continue
		}
		return domain.SetTimerIntent(time.Duration(n) * p.unit), true
	}
	return domain.Intent{}, false
}

// --- timer control ---

var (
	cancelWords = []string{"cancel", "stop", "clear", "remove", "delete", "kill"}
	checkWords  = []string{"check", "how much", "how long", "left", "remaining", "status", "how's"}
)

func matchTimerControl(text string) (domain.Intent, bool) {
	if !strings.Contains(text, "timer") {
		return domain.Intent{}, false
	}
	switch {
	case containsAny(text, cancelWords):
		return domain.Simple(domain.IntentCancelTimer), true
	case containsAny(text, checkWords):
		return domain.Simple(domain.IntentCheckTimer), true
	}
	return domain.Intent{}, false
}

// --- substitution ---

var substitutionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:substitute|substitution|sub|replacement|replace|swap)\s+(?:for|of)\s+([^?]+)`),
	regexp.MustCompile(`\binstead of\s+([^?]+)`),
	regexp.MustCompile(`\b(?:don'?t|do not)\s+have\s+(?:any\s+|the\s+)?([^?]+)`),
	regexp.MustCompile(`\b(?:ran|run)?\s*out of\s+([^?]+)`),
	regexp.MustCompile(`\balternative\s+(?:to|for)\s+([^?]+)`),
}

func matchSubstitution(text string) (domain.Intent, bool) {
	for _, re := range substitutionPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if subject := cleanSubject(m[1]); subject != "" {
			return domain.SubstituteIntent(subject), true
		}
	}
	return domain.Intent{}, false
}

// --- scaling ---

var servingsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:servings?|people|persons|portions)\b`),
	regexp.MustCompile(`\b(?:scale|make it|serve|feed)\s+(?:it\s+)?(?:to\s+|for\s+)?(\d+)`),
}

// Numeric patterns run before the "double"/"triple" words so that
// "double it to 6 servings" keeps its explicit count.
func matchScaling(text string) (domain.Intent, bool) {
	for _, re := range servingsPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return domain.ScaleIntent(n), true
	}
	switch {
	case strings.Contains(text, "double"):
		return domain.MultiplyIntent(2), true
	case strings.Contains(text, "triple"):
		return domain.MultiplyIntent(3), true
	}
	return domain.Intent{}, false
}

// --- information ---

var (
	ingredientWords = []string{"ingredient", "what do i need", "shopping list"}
	whatNextWords   = []string{"what's next", "what is next", "whats next", "what comes next", "coming up", "upcoming"}
	timeLeftWords   = []string{"how long", "time left", "how much longer", "how much time", "when will"}
)

func matchInformation(text string) (domain.Intent, bool) {
	switch {
	case containsAny(text, ingredientWords):
		return domain.Simple(domain.IntentWhatIngredients), true
	case containsAny(text, whatNextWords):
		return domain.Simple(domain.IntentWhatIsNext), true
	case containsAny(text, timeLeftWords):
		return domain.Simple(domain.IntentHowLongLeft), true
	}
	return domain.Intent{}, false
}

// --- technique ---

var techniquePatterns = []*regexp.Regexp{
	regexp.MustCompile(`what does\s+(.+?)\s+mean`),
	regexp.MustCompile(`what is (?:a |an |the )?(.+?)(?:\?|$)`),
	regexp.MustCompile(`how (?:do|should|can) (?:i|you)\s+(.+)`),
	regexp.MustCompile(`how to\s+(.+)`),
	regexp.MustCompile(`explain\s+(.+)`),
}

func matchTechnique(text string) (domain.Intent, bool) {
	for _, re := range techniquePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if subject := cleanSubject(m[1]); subject != "" {
			return domain.ExplainIntent(subject), true
		}
	}
	return domain.Intent{}, false
}

// --- help ---

var helpWords = []string{"help", "what can you do", "commands", "what can i say", "options"}

func matchHelp(text string) (domain.Intent, bool) {
	if containsAny(text, helpWords) {
		return domain.Simple(domain.IntentHelp), true
	}
	return domain.Intent{}, false
}

// --- helpers ---

var leadingArticles = []string{"the ", "a ", "an ", "any ", "some ", "my "}

// cleanSubject trims punctuation and a leading article from a captured phrase.
func cleanSubject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "?.!, ")
	for _, a := range leadingArticles {
		if strings.HasPrefix(s, a) {
			s = strings.TrimSpace(strings.TrimPrefix(s, a))
			break
		}
	}
	return s
}

func equalsAny(text string, words []string) bool {
	for _, w := range words {
		if text == w {
			return true
		}
	}
	return false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
