package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/tada/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// EnvDebug enables diagnostic logging to <data dir>/debug.log.
const EnvDebug = "TADA_DEBUG"

const debugFileName = "debug.log"

// setupLogging points the standard logger at the configured log file, or
// discards it. The returned func closes the file.
func setupLogging(cfg *config.Config) (func() error, error) {
	path, err := logPath(cfg)
	if err != nil {
		return nil, err
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := tea.LogToFile(path, "tada")
	if err != nil {
		return nil, err
	}
	return func() error {
		log.SetOutput(io.Discard)
		return f.Close()
	}, nil
}

func logPath(cfg *config.Config) (string, error) {
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}
	if strings.TrimSpace(os.Getenv(EnvDebug)) == "" {
		return "", nil
	}
	dir, err := config.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, debugFileName), nil
}
