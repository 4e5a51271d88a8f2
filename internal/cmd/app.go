package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DevSymphony/sym-jshint/internal/config"
	"github.com/DevSymphony/sym-jshint/internal/inspection"
	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/internal/linter/jshint"
	"github.com/DevSymphony/sym-jshint/internal/linter/syntax"
)

// app is the wired scan pipeline shared by the commands.
type app struct {
	settings  *config.Config
	logger    *slog.Logger
	registry  *linter.Registry
	loader    *jshintrc.Loader
	inspector *inspection.Inspector
}

// newApp loads the tool settings, picks an engine and registers the JSHint
// provider for the project at root. An empty root uses the working directory.
func newApp(ctx context.Context, root string) (*app, error) {
	settings, logger, err := loadSettings()
	if err != nil {
		return nil, err
	}

	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	registry := linter.Global()
	engine, err := selectEngine(ctx, registry, settings, logger)
	if err != nil {
		return nil, err
	}

	// The project file is JSHint's even when the syntax engine runs.
	loader := jshintrc.NewLoader(root,
		jshintrc.WithLogger(logger),
		jshintrc.WithConfigFileName(registry.GetConfigFile(jshint.EngineName)),
	)
	inspector := inspection.NewInspector(loader, engine, logger)
	if err := inspector.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register provider: %w", err)
	}

	logger.Debug("scan pipeline ready", "root", root, "engine", engine.Name())

	return &app{
		settings:  settings,
		logger:    logger,
		registry:  registry,
		loader:    loader,
		inspector: inspector,
	}, nil
}

// scanFunc returns the registered JavaScript provider's scan function.
func (a *app) scanFunc() (linter.ScanFunc, error) {
	p, err := a.registry.Provider(inspection.Language, inspection.ProviderName)
	if err != nil {
		return nil, err
	}
	return p.Scan, nil
}

// selectEngine resolves the configured engine. "auto" picks JSHint when it
// is installed and the syntax engine otherwise.
func selectEngine(ctx context.Context, registry *linter.Registry, settings *config.Config, logger *slog.Logger) (linter.Engine, error) {
	opts := linter.EngineOptions{
		ToolsDir: settings.ToolsDir,
		Timeout:  settings.Timeout,
	}

	if settings.Engine != config.EngineAuto {
		return registry.NewEngine(settings.Engine, opts)
	}

	engine, err := registry.NewEngine(jshint.EngineName, opts)
	if err == nil {
		if inst, ok := engine.(linter.Installer); ok && inst.CheckAvailability(ctx) == nil {
			return engine, nil
		}
	}

	logger.Warn("jshint is not installed, falling back to syntax checks",
		"hint", "run 'sym-jshint install'")
	return registry.NewEngine(syntax.EngineName, opts)
}
