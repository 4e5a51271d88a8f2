package lsp

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// codeSuffix matches the " (W033)" suffix appended to JSHint messages.
var codeSuffix = regexp.MustCompile(` \(([EWI]\d{3})\)$`)

// ToProtocol converts a scan result to LSP diagnostics. A nil result yields
// an empty, non-nil slice so that clients clear previous diagnostics.
func ToProtocol(res *schema.ScanResult, source string) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	if res == nil {
		return out
	}

	for _, d := range res.Errors {
		// JSHint columns are 1-based, LSP characters are 0-based.
		ch := d.Pos.Ch - 1
		if ch < 0 {
			ch = 0
		}
		line := d.Pos.Line
		if line < 0 {
			line = 0
		}
		pos := protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(ch)}

		severity := protocol.DiagnosticSeverityError
		if d.Type == schema.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}

		diag := protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		}
		if m := codeSuffix.FindStringSubmatch(d.Message); m != nil {
			diag.Code = &protocol.IntegerOrString{Value: m[1]}
		}
		out = append(out, diag)
	}

	return out
}

// URIToPath converts a file:// URI to a local path. Other strings are
// returned unchanged.
func URIToPath(uri string) string {
	if !strings.HasPrefix(uri, "file:") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}
	path := u.Path
	// file:///C:/dir on Windows
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}
