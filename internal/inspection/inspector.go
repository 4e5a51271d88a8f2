// Package inspection ties project configuration and an analysis engine into
// the "JSHint" diagnostics provider for JavaScript documents.
package inspection

import (
	"context"
	"log/slog"
	"time"

	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/internal/metrics"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

const (
	// ProviderName is the name the provider registers under.
	ProviderName = "JSHint"
	// Language is the source-file category the provider serves.
	Language = "javascript"
)

// ConfigSource resolves the active project configuration.
// *jshintrc.Loader is the production implementation.
type ConfigSource interface {
	Load(ctx context.Context) (schema.Configuration, error)
	LoadFromProject(ctx context.Context) (schema.Configuration, bool, error)
	HandleEvent(ev jshintrc.Event) bool
}

// Inspector is the scan orchestrator.
type Inspector struct {
	config     ConfigSource
	translator *Translator
	logger     *slog.Logger
}

// NewInspector creates an inspector. A nil logger uses slog.Default().
func NewInspector(config ConfigSource, engine linter.Engine, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		config:     config,
		translator: NewTranslator(engine),
		logger:     logger,
	}
}

// Provider returns the registration record of this inspector.
func (i *Inspector) Provider() schema.Provider {
	return schema.Provider{Name: ProviderName, Language: Language}
}

// Register registers the inspector's scan function with r.
func (i *Inspector) Register(r *linter.Registry) error {
	return r.RegisterProvider(Language, ProviderName, i.Scan)
}

// EngineName returns the name of the backing engine.
func (i *Inspector) EngineName() string {
	return i.translator.Engine().Name()
}

// Configuration resolves the configuration a scan would use right now.
// The second value reports whether it came from the project file; it is
// false when the default was substituted. The result is a copy the caller
// may modify.
func (i *Inspector) Configuration(ctx context.Context) (schema.Configuration, bool) {
	cfg, fromProject, err := i.config.LoadFromProject(ctx)
	if err != nil {
		return schema.DefaultConfiguration(), false
	}
	return cfg.Clone(), fromProject
}

// Scan lints one document. It always produces a result: configuration
// failures fall back to the default configuration and engine failures are
// reported as a single diagnostic. A nil result means the document is clean.
func (i *Inspector) Scan(ctx context.Context, source, filePath string) *schema.ScanResult {
	start := time.Now()
	engine := i.EngineName()
	defer func() {
		metrics.ScanDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	}()

	cfg, err := i.config.Load(ctx)
	if err != nil {
		i.logger.Debug("using default jshint config", "file", filePath, "error", err)
		cfg = schema.DefaultConfiguration()
	}

	// Use a live context for the engine even if the caller gave up waiting
	// on the config read; the scan must still complete.
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}

	result, err := i.translator.Translate(ctx, source, cfg)
	if err != nil {
		i.logger.Warn("analysis engine failed", "file", filePath, "engine", engine, "error", err)
		metrics.ScansTotal.WithLabelValues(engine, metrics.ScanEngine).Inc()
		return engineFailure(err)
	}

	if result == nil {
		metrics.ScansTotal.WithLabelValues(engine, metrics.ScanClean).Inc()
		return nil
	}

	metrics.ScansTotal.WithLabelValues(engine, metrics.ScanFindings).Inc()
	for _, d := range result.Errors {
		metrics.DiagnosticsTotal.WithLabelValues(string(d.Type)).Inc()
	}
	i.logger.Debug("scan complete", "file", filePath, "diagnostics", len(result.Errors))
	return result
}

// HandleEvent forwards a host lifecycle event to the configuration source.
func (i *Inspector) HandleEvent(ev jshintrc.Event) bool {
	invalidated := i.config.HandleEvent(ev)
	if invalidated {
		i.logger.Info("jshint config will be reloaded", "event", ev.Kind.String(), "path", ev.Path)
	}
	return invalidated
}

func engineFailure(err error) *schema.ScanResult {
	return &schema.ScanResult{Errors: []schema.Diagnostic{{
		Pos:     schema.Position{Line: 0, Ch: 0},
		Message: ProviderName + " could not run: " + err.Error(),
		Type:    schema.SeverityError,
	}}}
}
