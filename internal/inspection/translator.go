package inspection

import (
	"context"
	"fmt"

	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// Translator runs an engine and normalizes its findings into diagnostics.
type Translator struct {
	engine linter.Engine
}

// NewTranslator creates a translator backed by engine.
func NewTranslator(engine linter.Engine) *Translator {
	return &Translator{engine: engine}
}

// Engine returns the underlying engine.
func (t *Translator) Engine() linter.Engine {
	return t.engine
}

// Translate lints source with cfg and converts the outcome.
// A nil result means the engine reported no issues.
func (t *Translator) Translate(ctx context.Context, source string, cfg schema.Configuration) (*schema.ScanResult, error) {
	outcome, err := t.engine.Lint(ctx, source, cfg.Options, cfg.Globals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.engine.Name(), err)
	}
	return Translate(outcome), nil
}

// Translate converts an engine outcome into a scan result, keeping the
// engine's order. Nil findings are skipped.
func Translate(outcome *linter.Outcome) *schema.ScanResult {
	if outcome == nil || outcome.Clean {
		return nil
	}

	result := &schema.ScanResult{Errors: make([]schema.Diagnostic, 0, len(outcome.Findings))}
	for _, f := range outcome.Findings {
		if f == nil {
			continue
		}
		result.Errors = append(result.Errors, toDiagnostic(f))
	}
	return result
}

func toDiagnostic(f *linter.Finding) schema.Diagnostic {
	message := f.Reason
	if f.Code != "" {
		message += " (" + f.Code + ")"
	}

	return schema.Diagnostic{
		Pos: schema.Position{
			Line: f.Line - 1,
			Ch:   f.Character,
		},
		Message: message,
		Type:    severityOf(f.Type),
	}
}

// severityOf maps a native type tag; anything but "warning" is an error.
func severityOf(tag string) schema.Severity {
	switch tag {
	case "warning":
		return schema.SeverityWarning
	default:
		return schema.SeverityError
	}
}
