package linter

import (
	"context"
	"time"

	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// Engine wraps a JavaScript analysis engine (the JSHint CLI, the built-in
// syntax checker, ...) for use by the inspection layer.
//
// Design:
// - Engines receive source text plus already-resolved options/globals
// - Engines never touch project configuration files themselves
// - Engines report through a typed Outcome instead of a success flag
//   and a side-channel error list
type Engine interface {
	// Name returns the engine name (e.g., "jshint", "syntax").
	Name() string

	// Lint analyzes source with the given options and globals.
	// An error means the engine could not run at all; findings are
	// never reported as errors.
	Lint(ctx context.Context, source string, options map[string]any, globals map[string]bool) (*Outcome, error)
}

// Installer is implemented by engines backed by an external tool.
type Installer interface {
	// CheckAvailability checks if the tool is installed and usable.
	// Returns nil if available, error with details if not.
	CheckAvailability(ctx context.Context) error

	// Install installs the tool if not available.
	Install(ctx context.Context, config InstallConfig) error
}

// Describer is implemented by engines that can report their capabilities.
type Describer interface {
	GetCapabilities() Capabilities
}

// Outcome is the typed result of one engine run.
// Clean is true when the engine reported no findings at all.
type Outcome struct {
	Clean    bool
	Findings []*Finding
}

// CleanOutcome returns an outcome with no findings.
func CleanOutcome() *Outcome {
	return &Outcome{Clean: true}
}

// FindingsOutcome returns an outcome carrying findings. Nil entries are
// kept: engines may emit placeholder records.
func FindingsOutcome(findings []*Finding) *Outcome {
	return &Outcome{Findings: findings}
}

// Finding is a single native record produced by an engine.
// Line and Character are 1-based.
type Finding struct {
	Line      int    `json:"line"`
	Character int    `json:"character"`
	Reason    string `json:"reason"`
	Code      string `json:"code,omitempty"`
	Type      string `json:"type,omitempty"` // "error", "warning"; anything else is treated as error
}

// Capabilities describes what an engine can do.
type Capabilities struct {
	// Name is the engine identifier (e.g., "jshint").
	Name string

	// SupportedLanguages lists language categories this engine can lint.
	SupportedLanguages []string

	// Version is the tool version range (e.g., "^2.13.0").
	Version string
}

// InstallConfig holds tool installation settings.
type InstallConfig struct {
	// ToolsDir is where to install the tool.
	// Default: ~/.sym/tools
	ToolsDir string

	// Version is the tool version to install.
	// Empty = default pinned range
	Version string

	// Force reinstalls even if already installed.
	Force bool
}

// EngineOptions configures engines created through the registry.
type EngineOptions struct {
	ToolsDir string
	Timeout  time.Duration
}

// EngineFactory builds an engine instance.
type EngineFactory func(opts EngineOptions) Engine

// ScanFunc is the scan entry point a diagnostics provider exposes to hosts.
// It always produces a result; nil means the document is clean.
type ScanFunc func(ctx context.Context, source, filePath string) *schema.ScanResult

// ToolOutput is the raw output from a tool execution.
type ToolOutput struct {
	// Stdout is the standard output.
	Stdout string

	// Stderr is the error output.
	Stderr string

	// ExitCode is the process exit code.
	ExitCode int

	// Duration is how long the tool took to run.
	Duration string
}
