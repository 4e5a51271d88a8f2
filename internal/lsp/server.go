// Package lsp serves JSHint diagnostics over the Language Server Protocol.
package lsp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

const serverName = "sym-jshint"

// Scanner is the diagnostics provider behind the server.
// *inspection.Inspector is the production implementation.
type Scanner interface {
	Scan(ctx context.Context, source, filePath string) *schema.ScanResult
	HandleEvent(ev jshintrc.Event) bool
}

// Server is the JSHint language server.
type Server struct {
	store   *DocumentStore
	scanner Scanner
	source  string
	version string
	logger  *slog.Logger
	handler protocol.Handler

	ctx context.Context

	mu   sync.Mutex
	root string
}

// NewServer creates a server publishing diagnostics from scanner under the
// given source name.
func NewServer(scanner Scanner, source, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		store:   NewDocumentStore(),
		scanner: scanner,
		source:  source,
		version: version,
		logger:  logger,
		ctx:     context.Background(),
	}

	srv.handler = protocol.Handler{
		Initialize:                         srv.initialize,
		Initialized:                        srv.initialized,
		Shutdown:                           srv.shutdown,
		SetTrace:                           srv.setTrace,
		TextDocumentDidOpen:                srv.didOpen,
		TextDocumentDidChange:              srv.didChange,
		TextDocumentDidSave:                srv.didSave,
		TextDocumentDidClose:               srv.didClose,
		WorkspaceDidChangeWorkspaceFolders: srv.didChangeWorkspaceFolders,
		WorkspaceDidChangeWatchedFiles:     srv.didChangeWatchedFiles,
	}

	return srv
}

// Run serves on stdio until the client disconnects or ctx is cancelled.
func (srv *Server) Run(ctx context.Context) error {
	srv.ctx = ctx
	lspServer := server.NewServer(&srv.handler, serverName, false)
	srv.logger.Info("language server started (stdio mode)")
	return serve(ctx, lspServer.GetStdio(), srv.logger)
}

// conn is the part of a JSON-RPC connection the serve loop needs.
type conn interface {
	DisconnectNotify() <-chan struct{}
	Close() error
}

// serve blocks until c disconnects. Cancelling ctx closes c, which closes
// stdin and stdout for a stdio connection.
func serve(ctx context.Context, c conn, logger *slog.Logger) error {
	select {
	case <-c.DisconnectNotify():
		logger.Info("client disconnected")
	case <-ctx.Done():
		logger.Info("shutting down language server")
		if err := c.Close(); err != nil {
			logger.Debug("failed to close connection", "error", err)
		}
	}
	return nil
}

// Root returns the current project root.
func (srv *Server) Root() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.root
}

func (srv *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if root := rootFromParams(params); root != "" {
		srv.changeRoot(root)
	}

	capabilities := srv.handler.CreateServerCapabilities()
	if opts, ok := capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions); ok {
		full := protocol.TextDocumentSyncKindFull
		opts.Change = &full
	}
	capabilities.Workspace = &protocol.ServerCapabilitiesWorkspace{
		WorkspaceFolders: &protocol.WorkspaceFoldersServerCapabilities{
			Supported:           &protocol.True,
			ChangeNotifications: &protocol.BoolOrString{Value: true},
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &srv.version,
		},
	}, nil
}

func rootFromParams(params *protocol.InitializeParams) string {
	if params.RootURI != nil && *params.RootURI != "" {
		return URIToPath(*params.RootURI)
	}
	if params.RootPath != nil && *params.RootPath != "" {
		return *params.RootPath
	}
	if len(params.WorkspaceFolders) > 0 {
		return URIToPath(params.WorkspaceFolders[0].URI)
	}
	return ""
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	srv.store.Set(uri, Document{
		Text:     params.TextDocument.Text,
		Language: params.TextDocument.LanguageID,
	})
	srv.publish(ctx.Notify, uri)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	doc, ok := srv.store.Get(uri)
	if !ok {
		return nil
	}

	text := doc.Text
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			text = applyEdit(text, *c.Range, c.Text)
		}
	}

	srv.store.SetText(uri, text)
	srv.publish(ctx.Notify, uri)

	return nil
}

func (srv *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		if _, ok := srv.store.Get(uri); ok {
			srv.store.SetText(uri, *params.Text)
		}
	}

	ev := jshintrc.Event{Kind: jshintrc.DocumentSaved, Path: URIToPath(uri)}
	if srv.scanner.HandleEvent(ev) {
		srv.publishAll(ctx.Notify)
		return nil
	}

	if _, ok := srv.store.Get(uri); ok {
		srv.publish(ctx.Notify, uri)
	}

	return nil
}

func (srv *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	srv.store.Delete(uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func (srv *Server) didChangeWorkspaceFolders(ctx *glsp.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	if len(params.Event.Added) == 0 {
		return nil
	}

	srv.changeRoot(URIToPath(params.Event.Added[0].URI))
	srv.publishAll(ctx.Notify)

	return nil
}

func (srv *Server) didChangeWatchedFiles(ctx *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	invalidated := false
	for _, change := range params.Changes {
		ev := jshintrc.Event{Kind: jshintrc.DocumentRefreshed, Path: URIToPath(change.URI)}
		if srv.scanner.HandleEvent(ev) {
			invalidated = true
		}
	}

	if invalidated {
		srv.publishAll(ctx.Notify)
	}

	return nil
}

func (srv *Server) changeRoot(root string) {
	srv.mu.Lock()
	srv.root = root
	srv.mu.Unlock()

	srv.logger.Info("project root changed", "root", root)
	srv.scanner.HandleEvent(jshintrc.Event{Kind: jshintrc.ProjectRootChanged, Path: root})
}

// publish scans one open document and sends its diagnostics. Documents that
// are not JavaScript are ignored.
func (srv *Server) publish(notify glsp.NotifyFunc, uri string) {
	doc, ok := srv.store.Get(uri)
	if !ok {
		return
	}

	path := URIToPath(uri)
	if !isJavaScript(doc.Language, path) {
		return
	}

	res := srv.scanner.Scan(srv.ctx, doc.Text, path)
	notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: ToProtocol(res, srv.source),
	})
}

func (srv *Server) publishAll(notify glsp.NotifyFunc) {
	for _, uri := range srv.store.URIs() {
		srv.publish(notify, uri)
	}
}

func isJavaScript(languageID, path string) bool {
	switch languageID {
	case "javascript", "javascriptreact":
		return true
	}
	return linter.LanguageForPath(path) == "javascript"
}
