package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/okabe/tankobon/internal/config"
	"github.com/okabe/tankobon/internal/library"
	"github.com/okabe/tankobon/internal/log"
	"github.com/okabe/tankobon/internal/search"
	"github.com/okabe/tankobon/internal/session"
	"github.com/okabe/tankobon/internal/store"
	"github.com/okabe/tankobon/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		exportPath  string
		importPath  string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&exportPath, "export", "", "write a JSON backup of the library to the given file and exit")
	flag.StringVar(&importPath, "import", "", "replace the library with a JSON backup read from the given file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("tankobon %s\n", Version)
		return
	}

	if err := run(exportPath, importPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(exportPath, importPath string) error {
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

	logger.Info("starting tankobon", "version", Version)

	// Open the blob store and load the library
	blob, err := store.NewBlobStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer blob.Close()

	lib := library.NewService(blob, logger)

	// Backup flags bypass the TUI entirely
	if exportPath != "" {
		return exportLibrary(lib, exportPath)
	}
	if importPath != "" {
		return importLibrary(lib, importPath)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; use -export/-import for scripting")
	}

	// Create services
	timer := session.NewTimer(lib, logger)
	searchSvc := search.NewService(lib, logger)

	// Create TUI model
	model := tui.NewModel(lib, timer, searchSvc)

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func exportLibrary(lib *library.Service, path string) error {
	data, err := lib.ExportJSON()
	if err != nil {
		return fmt.Errorf("failed to export library: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	fmt.Printf("exported library to %s\n", path)
	return nil
}

func importLibrary(lib *library.Service, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := lib.ImportJSON(data); err != nil {
		return fmt.Errorf("failed to import library: %w", err)
	}
	fmt.Printf("imported library from %s\n", path)
	return nil
}
