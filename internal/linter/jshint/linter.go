package jshint

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/DevSymphony/sym-jshint/internal/linter"
)

// Compile-time interface checks
var (
	_ linter.Engine    = (*Linter)(nil)
	_ linter.Installer = (*Linter)(nil)
	_ linter.Describer = (*Linter)(nil)
)

// EngineName is the registry name of this engine.
const EngineName = "jshint"

// DefaultVersion is the npm version range installed by default.
const DefaultVersion = "^2.13.0"

//go:embed reporter.js
var reporterSource []byte

// Linter wraps the JSHint CLI.
//
// Each Lint call writes the resolved options and globals to a temporary
// config file, feeds the source on stdin and reads the raw error records
// back through a bundled JSON reporter.
type Linter struct {
	// ToolsDir is where JSHint is installed
	// Default: ~/.sym/tools
	ToolsDir string

	// executor runs JSHint subprocess
	executor *linter.SubprocessExecutor

	reporterOnce sync.Once
	reporterPath string
	reporterErr  error
}

// New creates a new JSHint engine.
func New(opts linter.EngineOptions) *Linter {
	toolsDir := opts.ToolsDir
	if toolsDir == "" {
		toolsDir = linter.DefaultToolsDir()
	}

	executor := linter.NewSubprocessExecutor()
	if opts.Timeout > 0 {
		executor.Timeout = opts.Timeout
	}

	return &Linter{
		ToolsDir: toolsDir,
		executor: executor,
	}
}

// Name returns the engine name.
func (l *Linter) Name() string {
	return EngineName
}

// GetCapabilities returns the JSHint engine capabilities.
func (l *Linter) GetCapabilities() linter.Capabilities {
	return linter.Capabilities{
		Name:               EngineName,
		SupportedLanguages: []string{"javascript"},
		Version:            DefaultVersion,
	}
}

// CheckAvailability checks if JSHint is installed.
func (l *Linter) CheckAvailability(ctx context.Context) error {
	if _, err := os.Stat(l.getJSHintPath()); err == nil {
		return nil // Found in tools dir
	}

	cmd := exec.CommandContext(ctx, "jshint", "--version")
	if err := cmd.Run(); err == nil {
		return nil // Found globally
	}

	return fmt.Errorf("jshint not found (checked: %s and global PATH)", l.getJSHintPath())
}

// Install installs JSHint via npm into the tools directory.
func (l *Linter) Install(ctx context.Context, config linter.InstallConfig) error {
	toolsDir := l.ToolsDir
	if config.ToolsDir != "" {
		toolsDir = config.ToolsDir
	}

	if !config.Force {
		if _, err := os.Stat(filepath.Join(toolsDir, "node_modules", ".bin", "jshint")); err == nil {
			return nil
		}
	}

	if err := linter.EnsureDir(toolsDir); err != nil {
		return fmt.Errorf("failed to create tools dir: %w", err)
	}

	if _, err := exec.LookPath("npm"); err != nil {
		return fmt.Errorf("npm not found: please install Node.js first")
	}

	version := config.Version
	if version == "" {
		version = DefaultVersion
	}

	packageJSON := filepath.Join(toolsDir, "package.json")
	if _, err := os.Stat(packageJSON); os.IsNotExist(err) {
		if err := initPackageJSON(toolsDir); err != nil {
			return fmt.Errorf("failed to init package.json: %w", err)
		}
	}

	executor := linter.NewSubprocessExecutor()
	executor.WorkDir = toolsDir
	output, err := executor.Execute(ctx, "npm", "install", fmt.Sprintf("jshint@%s", version))
	if err != nil {
		return fmt.Errorf("npm install failed: %w", err)
	}
	if output.ExitCode != 0 {
		return fmt.Errorf("npm install failed (exit %d): %s", output.ExitCode, output.Stderr)
	}

	return nil
}

// Lint runs JSHint over source.
func (l *Linter) Lint(ctx context.Context, source string, options map[string]any, globals map[string]bool) (*linter.Outcome, error) {
	output, err := l.execute(ctx, source, options, globals)
	if err != nil {
		return nil, err
	}
	return parseOutput(output)
}

// getJSHintPath returns the path to local JSHint binary.
func (l *Linter) getJSHintPath() string {
	return filepath.Join(l.ToolsDir, "node_modules", ".bin", "jshint")
}

// ensureReporter writes the bundled reporter to the tools directory once.
func (l *Linter) ensureReporter() (string, error) {
	l.reporterOnce.Do(func() {
		dir := filepath.Join(l.ToolsDir, ".tmp")
		if err := linter.EnsureDir(dir); err != nil {
			l.reporterErr = err
			return
		}
		path := filepath.Join(dir, "sym-jshint-reporter.js")
		if err := os.WriteFile(path, reporterSource, 0644); err != nil {
			l.reporterErr = err
			return
		}
		l.reporterPath = path
	})
	return l.reporterPath, l.reporterErr
}

// initPackageJSON creates a minimal package.json.
func initPackageJSON(toolsDir string) error {
	pkg := map[string]interface{}{
		"name":        "symphony-tools",
		"version":     "1.0.0",
		"description": "Symphony validation tools",
		"private":     true,
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(toolsDir, "package.json"), data, 0644)
}
