// Package jshintrc resolves and caches the per-project JSHint configuration.
//
// The project file lives at <project root>/.jshintrc. It is read at most once
// per invalidation cycle; saving or refreshing the file, or switching
// projects, invalidates the cache.
package jshintrc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/DevSymphony/sym-jshint/internal/metrics"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// ConfigFileName is the default project configuration file name.
const ConfigFileName = ".jshintrc"

// ReadFileFunc reads a whole file.
type ReadFileFunc func(name string) ([]byte, error)

// Loader resolves the project configuration.
type Loader struct {
	state    *State
	readFile ReadFileFunc
	logger   *slog.Logger
	group    singleflight.Group
	fileName string

	mu   sync.RWMutex
	root string
}

// Option configures a Loader.
type Option func(*Loader)

// WithReadFile replaces the file reader (os.ReadFile by default).
func WithReadFile(fn ReadFileFunc) Option {
	return func(l *Loader) { l.readFile = fn }
}

// WithLogger sets the operator-facing logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithConfigFileName sets the config file name looked up in the project
// root. An empty name keeps ConfigFileName.
func WithConfigFileName(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.fileName = name
		}
	}
}

// NewLoader creates a loader for the project rooted at root.
func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		state:    NewState(),
		root:     root,
		readFile: os.ReadFile,
		logger:   slog.Default(),
		fileName: ConfigFileName,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State exposes the loader's cache state.
func (l *Loader) State() *State {
	return l.state
}

// ProjectRoot returns the active project root.
func (l *Loader) ProjectRoot() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.root
}

// SetProjectRoot switches the active project and invalidates the cache.
func (l *Loader) SetProjectRoot(root string) {
	l.mu.Lock()
	l.root = root
	l.mu.Unlock()

	l.Invalidate()
}

// ConfigPath returns the path of the active project's config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.ProjectRoot(), l.fileName)
}

// Invalidate forces the next Load to read the config file again.
func (l *Loader) Invalidate() {
	l.state.Invalidate()
	metrics.ConfigInvalidationsTotal.Inc()
	l.logger.Debug("jshint config invalidated", "path", l.ConfigPath())
}

// Load returns the active project configuration.
//
// A cached configuration is returned without I/O. A missing or unreadable
// file yields the default configuration without caching it. A malformed
// file yields a *ParseError; callers fall back to the default. Concurrent
// callers within one invalidation cycle share a single read.
func (l *Loader) Load(ctx context.Context) (schema.Configuration, error) {
	cfg, _, err := l.LoadFromProject(ctx)
	return cfg, err
}

// LoadFromProject is Load that also reports whether the configuration was
// read from the project file. It is false when the default was substituted
// for a missing or unreadable file.
func (l *Loader) LoadFromProject(ctx context.Context) (schema.Configuration, bool, error) {
	if cfg, ok := l.state.Snapshot(); ok {
		metrics.ConfigLoadsTotal.WithLabelValues(metrics.LoadCached).Inc()
		return cfg, true, nil
	}

	path := l.ConfigPath()
	gen := l.state.Generation()
	key := fmt.Sprintf("%s#%d", path, gen)

	ch := l.group.DoChan(key, func() (any, error) {
		return l.load(path, gen)
	})

	select {
	case <-ctx.Done():
		return schema.Configuration{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return schema.Configuration{}, false, res.Err
		}
		r := res.Val.(loadResult)
		return r.cfg, r.fromFile, nil
	}
}

// loadResult is the value shared by callers of one in-flight read.
type loadResult struct {
	cfg      schema.Configuration
	fromFile bool
}

func (l *Loader) load(path string, gen uint64) (loadResult, error) {
	data, err := l.readFile(path)
	if err != nil {
		metrics.ConfigLoadsTotal.WithLabelValues(metrics.LoadDefault).Inc()
		l.logger.Debug("jshint config not readable, using default", "path", path, "error", err)
		return loadResult{cfg: schema.DefaultConfiguration()}, nil
	}

	cfg, skipped, err := parse(data)
	if err != nil {
		metrics.ConfigLoadsTotal.WithLabelValues(metrics.LoadParseError).Inc()
		l.logger.Error("JSHint: error parsing config", "path", path, "error", err)
		return loadResult{}, &ParseError{Path: path, Err: err}
	}
	for _, msg := range skipped {
		l.logger.Warn("JSHint: ignoring global", "path", path, "reason", msg)
	}

	if !l.state.Resolve(cfg, gen) {
		l.logger.Debug("jshint config changed during load, not caching", "path", path)
	}
	metrics.ConfigLoadsTotal.WithLabelValues(metrics.LoadProject).Inc()
	l.logger.Debug("jshint config loaded", "path", path, "options", len(cfg.Options), "globals", len(cfg.Globals))
	return loadResult{cfg: cfg, fromFile: true}, nil
}
