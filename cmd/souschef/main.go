// souschef is a hands-free cooking assistant.
//
// Usage:
//
//	souschef [command] [flags]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/hammamikhairi/souschef/internal/cli"
	"github.com/hammamikhairi/souschef/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, warnings := config.Load()

	app := &cli.App{
		Config:   cfg,
		Warnings: warnings,
		Wire:     cli.Wire,
	}
	defer app.Close()

	// The REPL takes over the terminal only when a person is typing.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
