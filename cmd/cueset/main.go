package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/cueset/internal/config"
	"github.com/mmcdole/cueset/internal/log"
	"github.com/mmcdole/cueset/internal/playlist"
	"github.com/mmcdole/cueset/internal/store"
	"github.com/mmcdole/cueset/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("cueset %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cueset", "version", Version)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cueset needs an interactive terminal")
	}

	// Open the blob store holding the canonical and draft collections
	blob, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer blob.Close()

	// Create services
	stores := playlist.NewStores(blob)
	repo := playlist.NewRepository(stores, logger)
	mut := playlist.NewMutator(stores, logger)
	sync := playlist.NewSynchronizer(stores, logger)

	// Create TUI model
	model := tui.NewModel(repo, mut, sync, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
