package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DevSymphony/sym-jshint/internal/config"
	"github.com/DevSymphony/sym-jshint/internal/inspection"
	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
)

// recordingEngine records the sources and options it was asked to lint.
type recordingEngine struct {
	mu      sync.Mutex
	sources []string
	options map[string]any
}

func (e *recordingEngine) Name() string { return "recording" }

func (e *recordingEngine) Lint(_ context.Context, source string, options map[string]any, _ map[string]bool) (*linter.Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = append(e.sources, source)
	e.options = options
	return linter.FindingsOutcome([]*linter.Finding{{Line: 1, Character: 1, Reason: "seen " + source, Type: "warning"}}), nil
}

func (e *recordingEngine) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = nil
}

func (e *recordingEngine) seen() ([]string, map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.sources...), e.options
}

func newTestWatchSession(t *testing.T, root string) (*watchSession, *recordingEngine, *bytes.Buffer) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := jshintrc.NewLoader(root, jshintrc.WithLogger(logger))
	engine := &recordingEngine{}
	inspector := inspection.NewInspector(loader, engine, logger)

	a := &app{
		settings:  &config.Config{Watch: config.WatchConfig{ExcludeDirs: []string{"node_modules"}}},
		logger:    logger,
		registry:  linter.NewRegistry(),
		loader:    loader,
		inspector: inspector,
	}
	out := &bytes.Buffer{}
	return &watchSession{app: a, scan: inspector.Scan, out: out}, engine, out
}

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "source-a")
	writeFile(t, filepath.Join(root, "lib", "b.js"), "source-b")
	writeFile(t, filepath.Join(root, "node_modules", "dep", "x.js"), "source-x")
	writeFile(t, filepath.Join(root, "README.md"), "docs")
	writeFile(t, filepath.Join(root, ".jshintrc"), `{"browser": true}`)
	return root
}

func TestWatchSession_ConfigChangeRescansProject(t *testing.T) {
	root := writeProject(t)
	session, engine, out := newTestWatchSession(t, root)
	ctx := context.Background()

	session.rescanAll(ctx)
	sources, options := engine.seen()
	assert.ElementsMatch(t, []string{"source-a", "source-b"}, sources)
	assert.Equal(t, map[string]any{"browser": true}, options)

	// Without an event the cached configuration stays in use
	writeFile(t, filepath.Join(root, ".jshintrc"), `{"node": true}`)
	engine.reset()
	session.handle(ctx, []string{filepath.Join(root, "a.js")})
	_, options = engine.seen()
	assert.Equal(t, map[string]any{"browser": true}, options)

	engine.reset()
	out.Reset()
	session.handle(ctx, []string{filepath.Join(root, ".jshintrc")})

	sources, options = engine.seen()
	assert.ElementsMatch(t, []string{"source-a", "source-b"}, sources, "every JavaScript file is rescanned")
	assert.Equal(t, map[string]any{"node": true}, options, "the config file is read again")
	assert.Contains(t, out.String(), "seen source-a")
	assert.Contains(t, out.String(), "seen source-b")
}

func TestWatchSession_NestedConfigIsIgnored(t *testing.T) {
	root := writeProject(t)
	session, engine, out := newTestWatchSession(t, root)
	ctx := context.Background()

	session.rescanAll(ctx)
	writeFile(t, filepath.Join(root, ".jshintrc"), `{"node": true}`)
	writeFile(t, filepath.Join(root, "lib", ".jshintrc"), `{"esversion": 6}`)

	engine.reset()
	out.Reset()
	session.handle(ctx, []string{filepath.Join(root, "lib", ".jshintrc")})

	sources, _ := engine.seen()
	assert.Empty(t, sources)
	assert.Empty(t, out.String())

	session.handle(ctx, []string{filepath.Join(root, "lib", "b.js")})
	sources, options := engine.seen()
	assert.Equal(t, []string{"source-b"}, sources)
	assert.Equal(t, map[string]any{"browser": true}, options, "project config was not reloaded")
}

func TestWatchSession_SkipsRemovedFiles(t *testing.T) {
	root := writeProject(t)
	session, engine, _ := newTestWatchSession(t, root)

	session.handle(context.Background(), []string{
		filepath.Join(root, "a.js"),
		filepath.Join(root, "gone.js"),
	})

	sources, _ := engine.seen()
	assert.Equal(t, []string{"source-a"}, sources)
}
