// Package commands implements the strata CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codelayers/strata/internal/config"
)

// stdinPath is the argument that selects stdin as input.
const stdinPath = "-"

// loadConfig resolves the --config persistent flag and loads settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		configPath = ""
	}

	return config.LoadConfig(configPath)
}

// newLogger builds the CLI logger. Logs go to stderr so stdout stays
// parseable.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// readInput reads a file argument, treating "-" as stdin.
func readInput(path string) ([]byte, string, error) {
	if path == stdinPath {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}

		return src, "stdin", nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	return src, path, nil
}

// openOutput opens the output destination, treating "" as stdout. The
// returned closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}

	return f, f.Close, nil
}
