package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/skepticlabs/skeptic-tui/internal/api"
	"github.com/skepticlabs/skeptic-tui/internal/app"
	"github.com/skepticlabs/skeptic-tui/internal/config"
	"github.com/skepticlabs/skeptic-tui/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "skeptic:", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional; the environment wins over the file.
	_ = godotenv.Load()

	demoFlag := flag.Bool("demo", false, "play the canned conversation instead of contacting a backend")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *demoFlag {
		cfg.Demo = true
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cfg.Debug {
		// The terminal belongs to the TUI, so debug logs go to a file.
		f, err := tea.LogToFile("skeptic-debug.log", "skeptic")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	store, err := session.Open(cfg.DBPath)
	if err != nil {
		// A broken store degrades to a sessionless run rather than
		// blocking the interview flow.
		logger.Warn("session store unavailable", "path", cfg.DBPath, "error", err)
		store = nil
	}

	client := api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithStallTimeout(cfg.StallTimeout),
		api.WithLogger(logger),
	)

	p := tea.NewProgram(app.New(client, store, cfg.Demo), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
