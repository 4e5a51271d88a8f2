package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/config"
)

var (
	// verbose is a global flag for verbose output
	verbose bool
	// settingsPath is the explicit tool settings file (--config)
	settingsPath string
)

var rootCmd = &cobra.Command{
	Use:   "sym-jshint",
	Short: "sym-jshint - JSHint diagnostics for JavaScript projects",
	Long: `sym-jshint lints JavaScript with JSHint using each project's .jshintrc.

Features:
  - One-shot checks for files and directories (text, JSON or YAML output)
  - Watch mode with debounced rescans and Prometheus metrics
  - Language server (LSP) publishing diagnostics to editors
  - MCP server exposing scans to AI coding tools
  - Syntax-only fallback engine when JSHint is not installed`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "tool settings file (default: .sym-jshint.yaml in CWD or $HOME)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(enginesCmd)
	// Note: mcpCmd and versionCmd register themselves in their init()
}

// loadSettings reads the tool settings and installs the default logger.
func loadSettings() (*config.Config, *slog.Logger, error) {
	settings, err := config.LoadConfig(settingsPath)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(settings.LogLevel, verbose)
	slog.SetDefault(logger)
	return settings, logger, nil
}

// newLogger creates a text logger on stderr. stdout is reserved for command
// output and the stdio protocols.
func newLogger(level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
