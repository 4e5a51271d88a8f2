package jshint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/DevSymphony/sym-jshint/internal/linter"
)

// execute runs JSHint over source with the given options and globals.
func (l *Linter) execute(ctx context.Context, source string, options map[string]any, globals map[string]bool) (*linter.ToolOutput, error) {
	config, err := buildConfig(options, globals)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	configPath, err := linter.WriteTempFile(l.ToolsDir, "jshintrc-*.json", config)
	if err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	defer func() { _ = os.Remove(configPath) }()

	reporterPath, err := l.ensureReporter()
	if err != nil {
		return nil, fmt.Errorf("failed to write reporter: %w", err)
	}

	jshintCmd, args := l.getExecutionArgs(configPath, reporterPath)
	return l.executor.ExecuteWithInput(ctx, strings.NewReader(source), jshintCmd, args...)
}

// buildConfig renders a JSHint config file: the options plus a nested
// "globals" object.
func buildConfig(options map[string]any, globals map[string]bool) ([]byte, error) {
	cfg := make(map[string]any, len(options)+1)
	for k, v := range options {
		cfg[k] = v
	}
	if len(globals) > 0 {
		cfg["globals"] = globals
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// getJSHintCommand returns the JSHint command to use.
func (l *Linter) getJSHintCommand() string {
	if path := linter.FindTool(l.getJSHintPath(), "jshint"); path != "" {
		return path
	}

	// Fall back to npx with JSHint 2.x
	return "npx"
}

// getExecutionArgs returns the command and arguments for a stdin run.
func (l *Linter) getExecutionArgs(configPath, reporterPath string) (string, []string) {
	jshintCmd := l.getJSHintCommand()

	var args []string
	if jshintCmd == "npx" {
		args = []string{"--yes", "jshint@2"}
	}

	args = append(args,
		"--config", configPath,
		"--reporter", reporterPath,
		"-", // read source from stdin
	)

	return jshintCmd, args
}
