package formatter

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/engine"
)

// FormatStep renders the current step of a session.
func FormatStep(snap engine.Snapshot) string {
	ins, ok := snap.CurrentInstruction()
	if !ok {
		return Dim(assistant.LineNoActiveStep()) + "\n"
	}
	header := fmt.Sprintf("Step %d of %d", ins.Step, snap.Recipe.TotalSteps())
	if ins.Duration > 0 {
		header += " (~" + assistant.FormatDuration(ins.Duration) + ")"
	}
	if snap.State.IsStepCompleted(snap.State.StepIndex) {
		header += " " + StyleGreen.Render("done")
	}
	return StyleGreen.Render(header) + "\n" + StyleFg.Render(ins.Text) + "\n"
}

// FormatStatus renders the whole session: recipe, progress, step and timers.
func FormatStatus(snap engine.Snapshot) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(snap.Recipe.Title))
	if snap.State.IsPaused {
		b.WriteString(" " + StyleYellow.Render("(paused)"))
	}
	b.WriteString("\n")
	b.WriteString(RenderProgress(snap.Progress(), 20) + "\n")
	if snap.State.ScaleFactor != domain.DefaultScaleFactor {
		b.WriteString(Dim("Scale x"+domain.FormatAmount(snap.State.ScaleFactor)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(FormatStep(snap))

	if len(snap.State.Timers) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatTimers(snap.State.Timers))
	}
	return b.String()
}

// FormatTimers renders timers as a numbered table. The number is what the
// timer commands accept.
func FormatTimers(timers []domain.Timer) string {
	if len(timers) == 0 {
		return Dim(assistant.LineNoTimersSet()) + "\n"
	}
	rows := make([][]string, len(timers))
	for i, t := range timers {
		rows[i] = []string{
			fmt.Sprint(i + 1),
			t.Label,
			assistant.FormatClock(t.Remaining),
			TimerStatus(t),
			ShortID(t.ID),
		}
	}
	return RenderTable([]string{"#", "LABEL", "LEFT", "STATUS", "ID"}, rows)
}

// TimerStatus names a timer's state.
func TimerStatus(t domain.Timer) string {
	switch {
	case t.IsCompleted():
		return StyleRed.Render("done")
	case t.IsPaused():
		return StyleBlue.Render("paused")
	case t.StartedAt.IsZero():
		return Dim("stopped")
	default:
		return StyleYellow.Render("running")
	}
}

// ShortID trims a timer ID to something a cook can type.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
