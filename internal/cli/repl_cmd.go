package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/souschef/internal/assistant"
	"github.com/hammamikhairi/souschef/internal/cli/formatter"
	"github.com/hammamikhairi/souschef/internal/conversation"
	"github.com/hammamikhairi/souschef/internal/display"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/timer"
)

func newReplCmd(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "repl",
		Aliases: []string{"chat", "cook"},
		Short:   "Talk to the assistant while timers run in the background",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := app.IsInteractive != nil && app.IsInteractive()
			if plain || !interactive {
				return app.runPlainREPL(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return app.runTUI(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "read lines from stdin without the terminal UI")
	return cmd
}

// repl turns typed lines into engine calls. A few words are handled
// directly; everything else goes through the intent classifier.
type repl struct {
	app    *App
	say    func(string)
	urgent func(string)
}

func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit", "bye", "q":
		return true
	}
	return false
}

// handle processes one line and reports whether the user asked to leave.
func (r *repl) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if isQuit(line) {
		return true
	}

	eng := r.app.Engine
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "recipes":
		list, err := eng.ListRecipes(ctx)
		if err != nil {
			r.fail(err)
			return false
		}
		r.say(strings.TrimRight(formatter.FormatRecipeList(list), "\n"))
		return false

	case "start":
		if len(fields) < 2 {
			r.say("Which recipe? Type \"recipes\" to see them.")
			return false
		}
		snap, err := eng.StartSession(ctx, fields[1])
		if err != nil {
			r.fail(err)
			return false
		}
		r.say(fmt.Sprintf("Let's make %s.\n%s", snap.Recipe.Title, strings.TrimRight(formatter.FormatStep(snap), "\n")))
		return false

	case "status":
		snap, err := eng.Current(ctx)
		if err != nil {
			r.fail(err)
			return false
		}
		r.say(strings.TrimRight(formatter.FormatStatus(snap), "\n"))
		return false

	case "end":
		if err := eng.EndSession(ctx); err != nil {
			r.fail(err)
			return false
		}
		r.say("Session ended.")
		return false
	}

	reply, err := eng.Ask(ctx, line, true)
	if err != nil {
		r.fail(err)
		return false
	}
	r.say(reply.Text)
	return false
}

func (r *repl) fail(err error) {
	r.app.Log.Error("repl: %v", err)
	r.urgent(explain(err).Error())
}

// loop reads lines until the channel closes, the context ends or the user
// quits.
func (r *repl) loop(ctx context.Context, lines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok || r.handle(ctx, line) {
				return
			}
		}
	}
}

// startSupervisor runs the timer supervisor and the idle watcher against the
// engine until the returned stop func is called.
func (a *App) startSupervisor(ctx context.Context, notifier domain.Notifier) func() {
	sup := timer.New(a.Engine, notifier, a.Log.Named("timer"),
		timer.WithTickInterval(a.Config.TickInterval),
		timer.WithAlmostDoneThreshold(a.Config.AlmostDoneThreshold),
		timer.WithNotifyCooldown(a.Config.NotifyCooldown),
		timer.WithMaxEscalation(a.Config.MaxEscalation),
		timer.WithWatcher(a.Engine),
	)
	sup.Start(ctx)
	return sup.Stop
}

// runPlainREPL reads stdin line by line. Used when stdin is not a terminal,
// e.g. when commands are piped in.
func (a *App) runPlainREPL(ctx context.Context, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	printLine := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, format+"\n", args...)
	}

	notifier := conversation.NewCLINotifier(a.Log, printLine, conversation.WithColor(false))
	stop := a.startSupervisor(ctx, notifier)
	defer stop()

	r := &repl{
		app:    a,
		say:    func(s string) { printLine("%s", s) },
		urgent: func(s string) { printLine("%s", s) },
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if r.handle(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// runTUI hands the terminal to the Bubble Tea display and blocks until the
// user quits.
func (a *App) runTUI(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui := display.NewUI(a.Engine)
	stop := a.startSupervisor(ctx, conversation.NewCLINotifier(a.Log, ui.Printf))
	defer stop()

	r := &repl{app: a, say: ui.PrintChat, urgent: ui.PrintUrgent}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for what I understand, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		if snap, err := a.Engine.Current(ctx); err == nil {
			ui.PrintHint("Picking up " + snap.Recipe.Title + ".")
			if ins, ok := snap.CurrentInstruction(); ok {
				ui.PrintStep(fmt.Sprintf("Step %d of %d", ins.Step, snap.Recipe.TotalSteps()))
				ui.PrintInstruction(ins.Text)
			}
		} else {
			ui.PrintChat(assistant.LineNoRecipe())
		}
		r.loop(ctx, ui.InputChan())
		ui.Quit()
	}()

	if err := ui.Run(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
