package lsp

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

func TestToProtocol_Nil(t *testing.T) {
	out := ToProtocol(nil, "JSHint")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestToProtocol(t *testing.T) {
	res := &schema.ScanResult{Errors: []schema.Diagnostic{
		{Pos: schema.Position{Line: 4, Ch: 12}, Message: "Missing semicolon. (W033)", Type: schema.SeverityWarning},
		{Pos: schema.Position{Line: 0, Ch: 0}, Message: "JSHint could not run: boom", Type: schema.SeverityError},
	}}

	out := ToProtocol(res, "JSHint")
	require.Len(t, out, 2)

	assert.Equal(t, protocol.Position{Line: 4, Character: 11}, out[0].Range.Start)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *out[0].Severity)
	assert.Equal(t, "JSHint", *out[0].Source)
	assert.Equal(t, "Missing semicolon. (W033)", out[0].Message)
	require.NotNil(t, out[0].Code)
	assert.Equal(t, "W033", out[0].Code.Value)

	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, out[1].Range.Start)
	assert.Equal(t, protocol.DiagnosticSeverityError, *out[1].Severity)
	assert.Nil(t, out[1].Code)
}

func TestURIConversion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}

	assert.Equal(t, "/work/my app/a.js", URIToPath("file:///work/my%20app/a.js"))
	assert.Equal(t, "/work/a.js", URIToPath("/work/a.js"))
	assert.Equal(t, "/work/x.js", URIToPath("file:///work/x.js"))
}
