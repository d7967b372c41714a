package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/cli/formatter"
	"github.com/hammamikhairi/souschef/internal/domain"
)

func newTimerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timer",
		Aliases: []string{"timers"},
		Short:   "Manage cooking timers",
	}

	cmd.AddCommand(
		newTimerAddCmd(app),
		newTimerListCmd(app),
		timerActionCmd(app, "start", "Start or resume a timer", app.startTimer),
		timerActionCmd(app, "pause", "Pause a running timer", app.pauseTimer),
		timerActionCmd(app, "stop", "Reset a timer to its full duration", app.stopTimer),
		newTimerRemoveCmd(app),
	)

	return cmd
}

func newTimerAddCmd(app *App) *cobra.Command {
	var label string
	var start bool

	cmd := &cobra.Command{
		Use:   "add <duration>",
		Short: "Add a timer for the current step (e.g. 10m, 1h30m, 90s, or plain minutes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseTimerDuration(args[0])
			if err != nil {
				return err
			}
			t, err := app.Engine.AddTimer(cmd.Context(), d, label, start)
			if err != nil {
				return explain(err)
			}

			out := cmd.OutOrStdout()
			if start {
				fmt.Fprintln(out, assistant.LineTimerSet(d))
			} else {
				fmt.Fprintf(out, "Timer %q added for %s. Start it with \"souschef timer start %s\".\n",
					t.Label, assistant.FormatDuration(d), formatter.ShortID(t.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "timer label (defaults to the step number)")
	cmd.Flags().BoolVar(&start, "start", true, "start the countdown immediately")
	return cmd
}

func newTimerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List timers with their remaining time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Engine.Current(cmd.Context())
			if err != nil {
				return explain(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimers(snap.State.Timers))
			return nil
		},
	}
}

func timerActionCmd(app *App, use, short string, action func(context.Context, string) (domain.Timer, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <timer>",
		Short: short + " (by list number, ID prefix or label)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.resolveTimer(ctx, args[0])
			if err != nil {
				return explain(err)
			}
			t, err := action(ctx, id)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", t.Label, assistant.FormatClock(t.Remaining), formatter.TimerStatus(t))
			return nil
		},
	}
}

func newTimerRemoveCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "rm [timer]",
		Aliases: []string{"remove", "cancel"},
		Short:   "Remove a timer, or every timer with --all",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if all {
				n, err := app.Engine.RemoveAllTimers(ctx)
				if err != nil {
					return explain(err)
				}
				if n == 0 {
					fmt.Fprintln(out, assistant.LineNoTimersRunning())
					return nil
				}
				fmt.Fprintln(out, assistant.LineTimersCancelled(n))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("name a timer or pass --all")
			}
			id, err := app.resolveTimer(ctx, args[0])
			if err != nil {
				return explain(err)
			}
			snap, err := app.Engine.Current(ctx)
			if err != nil {
				return explain(err)
			}
			t, _ := snap.State.Timer(id)
			if err := app.Engine.RemoveTimer(ctx, id); err != nil {
				return explain(err)
			}
			fmt.Fprintln(out, assistant.LineTimerCancelled(t.Label))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "remove every timer")
	return cmd
}

func (a *App) startTimer(ctx context.Context, id string) (domain.Timer, error) {
	return a.Engine.StartTimer(ctx, id)
}

func (a *App) pauseTimer(ctx context.Context, id string) (domain.Timer, error) {
	return a.Engine.PauseTimer(ctx, id)
}

func (a *App) stopTimer(ctx context.Context, id string) (domain.Timer, error) {
	return a.Engine.StopTimer(ctx, id)
}

// resolveTimer finds a timer by 1-based list number, full ID, unique ID
// prefix or case-insensitive label, in that order.
func (a *App) resolveTimer(ctx context.Context, ref string) (string, error) {
	snap, err := a.Engine.Current(ctx)
	if err != nil {
		return "", err
	}
	return resolveTimerRef(snap.State.Timers, ref)
}

func resolveTimerRef(timers []domain.Timer, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(timers) {
			return timers[n-1].ID, nil
		}
		return "", fmt.Errorf("timer #%d: %w", n, domain.ErrTimerNotFound)
	}

	var byPrefix, byLabel []string
	for _, t := range timers {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			byPrefix = append(byPrefix, t.ID)
		}
		if strings.EqualFold(t.Label, ref) {
			byLabel = append(byLabel, t.ID)
		}
	}

	for _, matches := range [][]string{byPrefix, byLabel} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("%q matches %d timers, use the list number", ref, len(matches))
		}
	}
	return "", fmt.Errorf("timer %q: %w", ref, domain.ErrTimerNotFound)
}

// parseTimerDuration accepts Go durations ("1h30m", "90s") and bare
// numbers, which are minutes.
func parseTimerDuration(s string) (time.Duration, error) {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("timer duration must be positive, got %q", s)
		}
		return time.Duration(n * float64(time.Minute)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (try 10m or 90s)", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timer duration must be positive, got %q", s)
	}
	return d, nil
}
