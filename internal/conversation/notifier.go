package conversation

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.Printf.
type PrintFunc func(format string, a ...any)

// NotifierOption configures a CLINotifier.
type NotifierOption func(*CLINotifier)

// WithColor forces ANSI colouring on or off.
func WithColor(enabled bool) NotifierOption {
	return func(n *CLINotifier) {
		n.color = enabled
	}
}

// CLINotifier writes notifications to the terminal.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
	color   bool
}

// NewCLINotifier creates a terminal notifier. If printFn is nil, lines go
// to stdout. Colour is on when stdout is a terminal.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc, opts ...NotifierOption) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		}
	}
	n := &CLINotifier{
		log:     log,
		printFn: printFn,
		color:   isTerminal(os.Stdout),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.print(cyan, message)
	return nil
}

// NotifyUrgent prints an urgent notification in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.print(red, message)
	return nil
}

func (n *CLINotifier) print(colour, message string) {
	if !n.color {
		n.printFn("%s", message)
		return
	}
	n.printFn("%s%s%s%s", colour, bold, message, reset)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
