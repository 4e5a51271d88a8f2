// Package mcp exposes JSHint scanning to LLM tools over the Model Context
// Protocol.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// Scanner is the diagnostics provider behind the server.
// *inspection.Inspector is the production implementation.
type Scanner interface {
	Scan(ctx context.Context, source, filePath string) *schema.ScanResult
	Configuration(ctx context.Context) (schema.Configuration, bool)
	HandleEvent(ev jshintrc.Event) bool
}

// ConfigLocator reports where the active project's config file lives.
// *jshintrc.Loader is the production implementation.
type ConfigLocator interface {
	ProjectRoot() string
	ConfigPath() string
}

// Server is a MCP (Model Context Protocol) server.
// It communicates via JSON-RPC over stdio.
type Server struct {
	scanner Scanner
	config  ConfigLocator
	version string
	logger  *slog.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(scanner Scanner, config ConfigLocator, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		scanner: scanner,
		config:  config,
		version: version,
		logger:  logger,
	}
}

// RPCError is an error type used for internal error handling.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string { return e.Message }

// JSON-RPC error codes used by the tool handlers.
const (
	codeInvalidParams = -32602
	codeInternal      = -32603
)

// ScanJavaScriptInput represents the input schema for the scan_javascript tool.
type ScanJavaScriptInput struct {
	Path   string `json:"path,omitempty" jsonschema:"Path of the JavaScript file to scan. Relative paths resolve against the project root. When source is also given, path is only used for reporting."`
	Source string `json:"source,omitempty" jsonschema:"JavaScript source text to scan instead of reading path (optional)"`
}

// ScanJavaScriptOutput is the result of the scan_javascript tool.
type ScanJavaScriptOutput struct {
	Path        string              `json:"path"`
	Clean       bool                `json:"clean"`
	Errors      int                 `json:"errors"`
	Warnings    int                 `json:"warnings"`
	Diagnostics []schema.Diagnostic `json:"diagnostics"`
}

// EmptyInput is the input of tools without arguments.
type EmptyInput struct{}

// ReloadConfigOutput is the result of the reload_config tool.
type ReloadConfigOutput struct {
	ConfigPath  string `json:"config_path"`
	Invalidated bool   `json:"invalidated"`
}

// SetProjectRootInput represents the input schema for the set_project_root tool.
type SetProjectRootInput struct {
	Root string `json:"root" jsonschema:"Absolute path of the new project root directory"`
}

// ShowConfigOutput is the result of the show_config and set_project_root tools.
type ShowConfigOutput struct {
	ProjectRoot string          `json:"project_root"`
	ConfigPath  string          `json:"config_path"`
	FromProject bool            `json:"from_project"`
	Options     map[string]any  `json:"options"`
	Globals     map[string]bool `json:"globals"`
}

// Start runs the server over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("MCP server started (stdio mode)", "root", s.config.ProjectRoot())
	return s.newSDKServer().Run(ctx, &sdkmcp.StdioTransport{})
}

// newSDKServer registers the tools on a go-sdk server.
func (s *Server) newSDKServer() *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "sym-jshint",
		Version: s.version,
	}, nil)

	// Tool: scan_javascript
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "scan_javascript",
		Description: "Lint JavaScript with JSHint using the project's .jshintrc. Pass a file path, or source text to scan unsaved code. Lines in the result are 0-based.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input ScanJavaScriptInput) (*sdkmcp.CallToolResult, ScanJavaScriptOutput, error) {
		out, rpcErr := s.handleScan(ctx, input)
		if rpcErr != nil {
			return &sdkmcp.CallToolResult{IsError: true}, ScanJavaScriptOutput{}, rpcErr
		}
		return nil, *out, nil
	})

	// Tool: reload_config
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reload_config",
		Description: "Discard the cached .jshintrc so the next scan reads it again. Use after editing the config file outside the editor.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ReloadConfigOutput, error) {
		return nil, s.handleReloadConfig(), nil
	})

	// Tool: show_config
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "show_config",
		Description: "Show the JSHint options and globals that scans currently use, and whether they come from the project's .jshintrc or the built-in default.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ShowConfigOutput, error) {
		return nil, s.handleShowConfig(ctx), nil
	})

	// Tool: set_project_root
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_project_root",
		Description: "Switch to another project. Its .jshintrc is loaded on the next scan.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input SetProjectRootInput) (*sdkmcp.CallToolResult, ShowConfigOutput, error) {
		out, rpcErr := s.handleSetProjectRoot(ctx, input)
		if rpcErr != nil {
			return &sdkmcp.CallToolResult{IsError: true}, ShowConfigOutput{}, rpcErr
		}
		return nil, *out, nil
	})

	return server
}

// handleScan scans the given source, or the file at the given path.
func (s *Server) handleScan(ctx context.Context, input ScanJavaScriptInput) (*ScanJavaScriptOutput, *RPCError) {
	if input.Path == "" && input.Source == "" {
		return nil, &RPCError{Code: codeInvalidParams, Message: "either path or source is required"}
	}

	path := input.Path
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.config.ProjectRoot(), path)
	}

	source := input.Source
	if source == "" {
		if linter.LanguageForPath(path) != "javascript" {
			return nil, &RPCError{Code: codeInvalidParams, Message: fmt.Sprintf("not a JavaScript file: %s", input.Path)}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &RPCError{Code: codeInternal, Message: fmt.Sprintf("failed to read %s: %v", input.Path, err)}
		}
		source = string(data)
	}
	if path == "" {
		path = filepath.Join(s.config.ProjectRoot(), "stdin.js")
	}

	res := s.scanner.Scan(ctx, source, path)

	out := &ScanJavaScriptOutput{
		Path:        path,
		Clean:       res == nil,
		Diagnostics: []schema.Diagnostic{},
	}
	if res != nil {
		out.Diagnostics = append(out.Diagnostics, res.Errors...)
		for _, d := range res.Errors {
			if d.Type == schema.SeverityWarning {
				out.Warnings++
			} else {
				out.Errors++
			}
		}
	}

	s.logger.Debug("mcp scan", "path", path, "errors", out.Errors, "warnings", out.Warnings)
	return out, nil
}

func (s *Server) handleReloadConfig() ReloadConfigOutput {
	path := s.config.ConfigPath()
	invalidated := s.scanner.HandleEvent(jshintrc.Event{Kind: jshintrc.DocumentRefreshed, Path: path})
	return ReloadConfigOutput{ConfigPath: path, Invalidated: invalidated}
}

func (s *Server) handleShowConfig(ctx context.Context) ShowConfigOutput {
	cfg, fromProject := s.scanner.Configuration(ctx)
	out := ShowConfigOutput{
		ProjectRoot: s.config.ProjectRoot(),
		ConfigPath:  s.config.ConfigPath(),
		FromProject: fromProject,
		Options:     cfg.Options,
		Globals:     cfg.Globals,
	}
	if out.Options == nil {
		out.Options = map[string]any{}
	}
	if out.Globals == nil {
		out.Globals = map[string]bool{}
	}
	return out
}

func (s *Server) handleSetProjectRoot(ctx context.Context, input SetProjectRootInput) (*ShowConfigOutput, *RPCError) {
	root := strings.TrimSpace(input.Root)
	if root == "" || !filepath.IsAbs(root) {
		return nil, &RPCError{Code: codeInvalidParams, Message: "root must be an absolute path"}
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, &RPCError{Code: codeInvalidParams, Message: fmt.Sprintf("not a directory: %s", root)}
	}

	s.scanner.HandleEvent(jshintrc.Event{Kind: jshintrc.ProjectRootChanged, Path: root})
	out := s.handleShowConfig(ctx)
	return &out, nil
}
