package schema

// Configuration is the resolved JSHint configuration for a project.
// Options holds linter tuning flags, Globals the pre-declared symbols
// (true = the symbol may be reassigned).
type Configuration struct {
	Options map[string]any  `json:"options" yaml:"options"`
	Globals map[string]bool `json:"globals" yaml:"globals"`
}

// DefaultConfiguration returns the built-in configuration used when no
// project configuration can be resolved. Each call returns fresh maps.
func DefaultConfiguration() Configuration {
	return Configuration{
		Options: map[string]any{"undef": true},
		Globals: map[string]bool{},
	}
}

// Clone returns a deep copy of the top-level maps.
func (c Configuration) Clone() Configuration {
	out := Configuration{
		Options: make(map[string]any, len(c.Options)),
		Globals: make(map[string]bool, len(c.Globals)),
	}
	for k, v := range c.Options {
		out.Options[k] = v
	}
	for k, v := range c.Globals {
		out.Globals[k] = v
	}
	return out
}

// Severity classifies a diagnostic
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Position is a location in source text. Line is 0-based; Ch is the
// column as reported by the engine (1-based for JSHint).
type Position struct {
	Line int `json:"line" yaml:"line"`
	Ch   int `json:"ch" yaml:"ch"`
}

// Diagnostic is the host-facing representation of a single finding
type Diagnostic struct {
	Pos     Position `json:"pos" yaml:"pos"`
	Message string   `json:"message" yaml:"message"`
	Type    Severity `json:"type" yaml:"type"`
}

// ScanResult is the outcome of scanning one document.
// A nil *ScanResult means the engine reported no issues.
type ScanResult struct {
	Errors []Diagnostic `json:"errors" yaml:"errors"`
}

// HasErrors reports whether any diagnostic has error severity.
func (r *ScanResult) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, d := range r.Errors {
		if d.Type == SeverityError {
			return true
		}
	}
	return false
}

// Provider describes a diagnostics provider registered for a language category.
type Provider struct {
	Name     string `json:"name"`     // e.g. "JSHint"
	Language string `json:"language"` // e.g. "javascript"
}
