package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSymphony/sym-jshint/internal/inspection"
	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// fakeScanner echoes the source back as a single warning.
type fakeScanner struct {
	cfg         schema.Configuration
	fromProject bool
	events      []jshintrc.Event
	lastPath    string
}

func (f *fakeScanner) Scan(_ context.Context, source, filePath string) *schema.ScanResult {
	f.lastPath = filePath
	if source == "clean" {
		return nil
	}
	return &schema.ScanResult{Errors: []schema.Diagnostic{
		{Pos: schema.Position{Line: 0, Ch: 1}, Message: source, Type: schema.SeverityWarning},
		{Pos: schema.Position{Line: 1, Ch: 2}, Message: "Unclosed string. (E029)", Type: schema.SeverityError},
	}}
}

func (f *fakeScanner) Configuration(context.Context) (schema.Configuration, bool) {
	return f.cfg, f.fromProject
}

func (f *fakeScanner) HandleEvent(ev jshintrc.Event) bool {
	f.events = append(f.events, ev)
	return true
}

type fakeLocator struct{ root string }

func (f fakeLocator) ProjectRoot() string { return f.root }
func (f fakeLocator) ConfigPath() string  { return filepath.Join(f.root, ".jshintrc") }

func newTestServer(t *testing.T) (*Server, *fakeScanner, string) {
	t.Helper()
	root := t.TempDir()
	scanner := &fakeScanner{cfg: schema.DefaultConfiguration()}
	return NewServer(scanner, fakeLocator{root: root}, "test", nil), scanner, root
}

func TestHandleScan_Source(t *testing.T) {
	server, scanner, root := newTestServer(t)

	out, rpcErr := server.handleScan(context.Background(), ScanJavaScriptInput{Source: "var x"})
	require.Nil(t, rpcErr)
	assert.Equal(t, filepath.Join(root, "stdin.js"), out.Path)
	assert.False(t, out.Clean)
	assert.Equal(t, 1, out.Errors)
	assert.Equal(t, 1, out.Warnings)
	require.Len(t, out.Diagnostics, 2)
	assert.Equal(t, "var x", out.Diagnostics[0].Message)
	assert.Equal(t, out.Path, scanner.lastPath)
}

func TestHandleScan_File(t *testing.T) {
	server, scanner, root := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("clean"), 0644))

	out, rpcErr := server.handleScan(context.Background(), ScanJavaScriptInput{Path: "app.js"})
	require.Nil(t, rpcErr)
	assert.True(t, out.Clean)
	assert.NotNil(t, out.Diagnostics)
	assert.Empty(t, out.Diagnostics)
	assert.Equal(t, filepath.Join(root, "app.js"), scanner.lastPath)
}

func TestHandleScan_Errors(t *testing.T) {
	server, _, root := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))

	tests := []struct {
		name  string
		input ScanJavaScriptInput
		code  int
		msg   string
	}{
		{"nothing to scan", ScanJavaScriptInput{}, codeInvalidParams, "either path or source is required"},
		{"not javascript", ScanJavaScriptInput{Path: "notes.txt"}, codeInvalidParams, "not a JavaScript file: notes.txt"},
		{"missing file", ScanJavaScriptInput{Path: "missing.js"}, codeInternal, "failed to read missing.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rpcErr := server.handleScan(context.Background(), tt.input)
			require.NotNil(t, rpcErr)
			assert.Equal(t, tt.code, rpcErr.Code)
			assert.Contains(t, rpcErr.Message, tt.msg)
		})
	}
}

func TestHandleReloadConfig(t *testing.T) {
	server, scanner, root := newTestServer(t)

	out := server.handleReloadConfig()
	assert.True(t, out.Invalidated)
	assert.Equal(t, filepath.Join(root, ".jshintrc"), out.ConfigPath)
	assert.Equal(t, []jshintrc.Event{{Kind: jshintrc.DocumentRefreshed, Path: out.ConfigPath}}, scanner.events)
}

func TestHandleShowConfig(t *testing.T) {
	server, scanner, root := newTestServer(t)
	scanner.cfg = schema.Configuration{Options: map[string]any{"node": true}}
	scanner.fromProject = true

	out := server.handleShowConfig(context.Background())
	assert.Equal(t, root, out.ProjectRoot)
	assert.True(t, out.FromProject)
	assert.Equal(t, map[string]any{"node": true}, out.Options)
	assert.Equal(t, map[string]bool{}, out.Globals)
}

// cleanEngine reports every document clean.
type cleanEngine struct{}

func (cleanEngine) Name() string { return "clean" }

func (cleanEngine) Lint(context.Context, string, map[string]any, map[string]bool) (*linter.Outcome, error) {
	return linter.CleanOutcome(), nil
}

func TestHandleShowConfig_ProjectFile(t *testing.T) {
	root := t.TempDir()
	loader := jshintrc.NewLoader(root)
	server := NewServer(inspection.NewInspector(loader, cleanEngine{}, nil), loader, "test", nil)

	out := server.handleShowConfig(context.Background())
	assert.False(t, out.FromProject, "no .jshintrc yet")
	assert.Equal(t, map[string]any{"undef": true}, out.Options)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".jshintrc"), []byte(`{"esversion": 8, "globals": {"$": false}}`), 0644))
	out = server.handleShowConfig(context.Background())
	assert.True(t, out.FromProject)
	assert.Equal(t, map[string]any{"esversion": float64(8)}, out.Options)
	assert.Equal(t, map[string]bool{"$": false}, out.Globals)

	// Switching to a project without a config file reports the default again
	other := t.TempDir()
	switched, rpcErr := server.handleSetProjectRoot(context.Background(), SetProjectRootInput{Root: other})
	require.Nil(t, rpcErr)
	assert.Equal(t, other, switched.ProjectRoot)
	assert.False(t, switched.FromProject)
	assert.Equal(t, map[string]any{"undef": true}, switched.Options)
}

func TestHandleSetProjectRoot(t *testing.T) {
	server, scanner, _ := newTestServer(t)
	other := t.TempDir()

	_, rpcErr := server.handleSetProjectRoot(context.Background(), SetProjectRootInput{Root: "relative/dir"})
	require.NotNil(t, rpcErr)

	_, rpcErr = server.handleSetProjectRoot(context.Background(), SetProjectRootInput{Root: filepath.Join(other, "missing")})
	require.NotNil(t, rpcErr)
	assert.Empty(t, scanner.events)

	_, rpcErr = server.handleSetProjectRoot(context.Background(), SetProjectRootInput{Root: other})
	require.Nil(t, rpcErr)
	assert.Equal(t, []jshintrc.Event{{Kind: jshintrc.ProjectRootChanged, Path: other}}, scanner.events)
}

func TestServer_ToolsOverTransport(t *testing.T) {
	server, _, _ := newTestServer(t)
	ctx := context.Background()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.newSDKServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "scan_javascript",
		Arguments: map[string]any{"source": "var y"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	var out ScanJavaScriptOutput
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	assert.Equal(t, 2, len(out.Diagnostics))
	assert.Equal(t, schema.SeverityError, out.Diagnostics[1].Type)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "scan_javascript",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "show_config"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
