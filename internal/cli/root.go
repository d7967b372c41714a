// Package cli builds the souschef command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/config"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// App holds what the commands run against. Tests fill Engine and Assistant
// directly; the binary leaves them nil and sets Wire, which builds them from
// Config once flags are parsed.
type App struct {
	Config    config.Config
	Warnings  []error
	Engine    *engine.Engine
	Assistant *assistant.Assistant
	Log       *logger.Logger

	// Wire builds the runtime from Config. Called before any command runs.
	Wire func(ctx context.Context, app *App) error

	// IsInteractive reports whether the REPL may take over the terminal.
	IsInteractive func() bool

	closers []io.Closer
}

// OnClose registers a resource released after the command finishes.
func (a *App) OnClose(c io.Closer) {
	a.closers = append(a.closers, c)
}

// Close releases everything registered with OnClose, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

var rootLong = dedent.Dedent(`
	souschef is a hands-free cooking assistant. It walks you through a recipe
	step by step, keeps your timers, scales ingredients and answers kitchen
	questions like "what can I use instead of buttermilk?".

	The session is saved between commands, so "souschef next" in one shell
	and "souschef status" in another see the same recipe.
`)

// NewRootCmd creates the top-level "souschef" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "souschef",
		Short:         "Hands-free cooking assistant",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if app.Engine == nil && app.Wire != nil {
				if err := app.Wire(cmd.Context(), app); err != nil {
					return err
				}
			}
			if app.Engine == nil {
				return errors.New("souschef is not wired")
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	app.Config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newRecipesCmd(app),
		newShowCmd(app),
		newStartCmd(app),
		newEndCmd(app),
		newStatusCmd(app),
		newNextCmd(app),
		newBackCmd(app),
		newGotoCmd(app),
		newCompleteCmd(app),
		newPauseCmd(app),
		newResumeCmd(app),
		newScaleCmd(app),
		newTimerCmd(app),
		newAskCmd(app),
		newClassifyCmd(app),
		newSubstituteCmd(app),
		newExplainCmd(app),
		newReplCmd(app),
	)

	return root
}
