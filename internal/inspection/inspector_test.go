package inspection

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConfig is a ConfigSource with a fixed answer.
type fakeConfig struct {
	cfg         schema.Configuration
	fromProject bool
	err         error
	events      []jshintrc.Event
}

func (f *fakeConfig) Load(context.Context) (schema.Configuration, error) {
	return f.cfg, f.err
}

func (f *fakeConfig) LoadFromProject(context.Context) (schema.Configuration, bool, error) {
	return f.cfg, f.fromProject, f.err
}

func (f *fakeConfig) HandleEvent(ev jshintrc.Event) bool {
	f.events = append(f.events, ev)
	return true
}

func TestInspector_EndToEnd(t *testing.T) {
	engine := &fakeEngine{outcome: linter.FindingsOutcome([]*linter.Finding{{
		Line:      1,
		Character: 5,
		Reason:    "'x' is defined but never used.",
		Type:      "warning",
	}})}
	insp := NewInspector(&fakeConfig{cfg: schema.DefaultConfiguration()}, engine, nil)

	res := insp.Scan(context.Background(), "var x = 1", "/p/a.js")

	require.NotNil(t, res)
	assert.Equal(t, &schema.ScanResult{Errors: []schema.Diagnostic{{
		Pos:     schema.Position{Line: 0, Ch: 5},
		Message: "'x' is defined but never used.",
		Type:    schema.SeverityWarning,
	}}}, res)
	assert.Equal(t, "var x = 1", engine.source)
}

func TestInspector_ConfigFailureFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"parse error", &jshintrc.ParseError{Path: "/p/.jshintrc", Err: errors.New("bad json")}},
		{"cancelled", context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{outcome: linter.CleanOutcome()}
			cfg := &fakeConfig{
				cfg: schema.Configuration{Options: map[string]any{"ignored": true}},
				err: tt.err,
			}
			insp := NewInspector(cfg, engine, nil)

			res := insp.Scan(context.Background(), "var a;", "/p/a.js")
			assert.Nil(t, res)
			assert.Equal(t, 1, engine.calls)
			assert.Equal(t, schema.DefaultConfiguration().Options, engine.options)
			assert.Equal(t, schema.DefaultConfiguration().Globals, engine.globals)
		})
	}
}

func TestInspector_WithRealLoader(t *testing.T) {
	root := "/work/app"
	files := map[string]string{}
	read := func(name string) ([]byte, error) {
		if c, ok := files[name]; ok {
			return []byte(c), nil
		}
		return nil, fs.ErrNotExist
	}
	loader := jshintrc.NewLoader(root, jshintrc.WithReadFile(read))
	engine := &fakeEngine{outcome: linter.CleanOutcome()}
	insp := NewInspector(loader, engine, nil)

	// Missing file: default
	insp.Scan(context.Background(), "", "/work/app/a.js")
	assert.Equal(t, map[string]any{"undef": true}, engine.options)

	// Malformed file: default, scan still completes
	files[filepath.Join(root, ".jshintrc")] = `{not json`
	assert.Nil(t, insp.Scan(context.Background(), "", "/work/app/a.js"))
	assert.Equal(t, map[string]any{"undef": true}, engine.options)

	// Valid file
	files[filepath.Join(root, ".jshintrc")] = `{"browser": true, "globals": {"$": false}}`
	insp.Scan(context.Background(), "", "/work/app/a.js")
	assert.Equal(t, map[string]any{"browser": true}, engine.options)
	assert.Equal(t, map[string]bool{"$": false}, engine.globals)

	// Cached until the config file is saved
	files[filepath.Join(root, ".jshintrc")] = `{"node": true}`
	insp.Scan(context.Background(), "", "/work/app/a.js")
	assert.Equal(t, map[string]any{"browser": true}, engine.options)

	assert.True(t, insp.HandleEvent(jshintrc.Event{Kind: jshintrc.DocumentSaved, Path: filepath.Join(root, ".jshintrc")}))
	insp.Scan(context.Background(), "", "/work/app/a.js")
	assert.Equal(t, map[string]any{"node": true}, engine.options)
}

func TestInspector_EngineFailureIsADiagnostic(t *testing.T) {
	engine := &fakeEngine{err: errors.New("exit status 1: cannot find module")}
	insp := NewInspector(&fakeConfig{cfg: schema.DefaultConfiguration()}, engine, nil)

	res := insp.Scan(context.Background(), "var a;", "/p/a.js")
	require.NotNil(t, res)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, schema.SeverityError, res.Errors[0].Type)
	assert.Equal(t, schema.Position{}, res.Errors[0].Pos)
	assert.Contains(t, res.Errors[0].Message, "JSHint could not run")
	assert.Contains(t, res.Errors[0].Message, "cannot find module")
}

func TestInspector_Register(t *testing.T) {
	engine := &fakeEngine{outcome: linter.FindingsOutcome([]*linter.Finding{{Line: 3, Reason: "r"}})}
	insp := NewInspector(&fakeConfig{cfg: schema.DefaultConfiguration()}, engine, nil)
	assert.Equal(t, schema.Provider{Name: "JSHint", Language: "javascript"}, insp.Provider())

	r := linter.NewRegistry()
	require.NoError(t, insp.Register(r))

	p, err := r.Provider("javascript", "JSHint")
	require.NoError(t, err)
	res := p.Scan(context.Background(), "x", "a.js")
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Errors[0].Pos.Line)
}

func TestInspector_HandleEventForwards(t *testing.T) {
	cfg := &fakeConfig{}
	insp := NewInspector(cfg, &fakeEngine{}, nil)

	ev := jshintrc.Event{Kind: jshintrc.DocumentRefreshed, Path: "/p/.jshintrc"}
	assert.True(t, insp.HandleEvent(ev))
	assert.Equal(t, []jshintrc.Event{ev}, cfg.events)
}

func TestInspector_ConfigurationSource(t *testing.T) {
	root := t.TempDir()
	loader := jshintrc.NewLoader(root)
	insp := NewInspector(loader, &fakeEngine{}, nil)

	cfg, fromProject := insp.Configuration(context.Background())
	assert.False(t, fromProject, "no .jshintrc in the project")
	assert.Equal(t, schema.DefaultConfiguration(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".jshintrc"), []byte(`{"node": true}`), 0644))
	cfg, fromProject = insp.Configuration(context.Background())
	assert.True(t, fromProject)
	assert.Equal(t, map[string]any{"node": true}, cfg.Options)

	// The returned maps are copies of the cached ones
	cfg.Options["node"] = false
	again, _ := insp.Configuration(context.Background())
	assert.Equal(t, true, again.Options["node"])
}

func TestInspector_ConfigurationParseError(t *testing.T) {
	cfg := &fakeConfig{err: &jshintrc.ParseError{Path: "/p/.jshintrc", Err: errors.New("bad json")}}
	insp := NewInspector(cfg, &fakeEngine{}, nil)

	got, fromProject := insp.Configuration(context.Background())
	assert.False(t, fromProject)
	assert.Equal(t, schema.DefaultConfiguration(), got)
}
