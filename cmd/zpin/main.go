package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zapp"
	"github.com/zarlcorp/zpin/internal/cli"
	"github.com/zarlcorp/zpin/internal/config"
	"github.com/zarlcorp/zpin/internal/identity"
	"github.com/zarlcorp/zpin/internal/logging"
	"github.com/zarlcorp/zpin/internal/tui"
	"golang.org/x/term"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("zpin"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zpin: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	gen := identity.New(identity.WithSpan(cfg.RandomYears))

	args := os.Args[1:]
	if len(args) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := runTUI(gen, cfg); err != nil {
			slog.Error("tui", "err", err)
			_ = app.Close()
			os.Exit(1)
		}
		if err := app.Close(); err != nil {
			slog.Error("shutdown", "err", err)
			os.Exit(1)
		}
		return
	}

	// piped input without a subcommand is validated line by line
	if len(args) == 0 {
		args = []string{"validate"}
	}

	root := cli.New(&cli.Env{
		Version: version,
		Config:  cfg,
		Gen:     gen,
		Logger:  logger,
	})
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "zpin: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}

func runTUI(gen *identity.Generator, cfg config.Config) error {
	p := tea.NewProgram(tui.New(version, gen, cfg.PageSize))
	_, err := p.Run()
	return err
}
