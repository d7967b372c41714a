package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/souschef/internal/cli/formatter"
	"github.com/hammamikhairi/souschef/internal/engine"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <recipe>",
		Short: "Start cooking a recipe (replaces any session in progress)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Engine.StartSession(cmd.Context(), args[0])
			if err != nil {
				return explain(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Let's make %s.\n\n", snap.Recipe.Title)
			fmt.Fprint(out, formatter.FormatStep(snap))
			return nil
		},
	}
}

func newEndCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the current session and drop its timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Engine.EndSession(cmd.Context()); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session ended.")
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current recipe, step and timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Engine.Current(cmd.Context())
			if err != nil {
				return explain(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(snap))
			return nil
		},
	}
}

// stepCmd builds a no-argument command that moves through the recipe and
// prints the resulting step.
func stepCmd(use, short string, move func(*cobra.Command) (engine.Snapshot, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := move(cmd)
			if err != nil {
				return explain(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStep(snap))
			return nil
		},
	}
}

func newNextCmd(app *App) *cobra.Command {
	return stepCmd("next", "Complete this step and move to the next", func(cmd *cobra.Command) (engine.Snapshot, error) {
		return app.Engine.Advance(cmd.Context())
	})
}

func newBackCmd(app *App) *cobra.Command {
	return stepCmd("back", "Go back one step", func(cmd *cobra.Command) (engine.Snapshot, error) {
		return app.Engine.Back(cmd.Context())
	})
}

func newCompleteCmd(app *App) *cobra.Command {
	return stepCmd("complete", "Mark this step done without moving", func(cmd *cobra.Command) (engine.Snapshot, error) {
		return app.Engine.CompleteStep(cmd.Context())
	})
}

func newGotoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <step>",
		Short: "Jump to a step by number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step number %q", args[0])
			}
			snap, err := app.Engine.GoTo(cmd.Context(), n)
			if err != nil {
				return explain(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStep(snap))
			return nil
		},
	}
}

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the session (timers keep running)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Engine.Pause(cmd.Context()); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Paused. Timers are still running.")
			return nil
		},
	}
}

func newResumeCmd(app *App) *cobra.Command {
	return stepCmd("resume", "Resume a paused session", func(cmd *cobra.Command) (engine.Snapshot, error) {
		return app.Engine.Resume(cmd.Context())
	})
}

func newScaleCmd(app *App) *cobra.Command {
	var servings int

	cmd := &cobra.Command{
		Use:   "scale [factor]",
		Short: "Scale ingredient amounts by a factor or to a number of servings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				snap engine.Snapshot
				err  error
			)
			switch {
			case cmd.Flags().Changed("servings") && len(args) == 1:
				return fmt.Errorf("give either a factor or --servings, not both")
			case cmd.Flags().Changed("servings"):
				snap, err = app.Engine.ScaleToServings(ctx, servings)
			case len(args) == 1:
				factor, perr := strconv.ParseFloat(args[0], 64)
				if perr != nil {
					return fmt.Errorf("invalid scale factor %q", args[0])
				}
				snap, err = app.Engine.SetScale(ctx, factor)
			default:
				return fmt.Errorf("give a factor (e.g. 1.5) or --servings")
			}
			if err != nil {
				return explain(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecipe(snap.Recipe, snap.State.ScaleFactor))
			return nil
		},
	}

	cmd.Flags().IntVar(&servings, "servings", 0, "scale to this many servings")
	return cmd
}
