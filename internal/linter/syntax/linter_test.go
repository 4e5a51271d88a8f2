package syntax

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLint_ValidSource(t *testing.T) {
	l := New()

	outcome, err := l.Lint(context.Background(), "var x = 1;\nfunction f(a) { return a + x; }\n", nil, nil)
	require.NoError(t, err)
	assert.True(t, outcome.Clean)
}

func TestLint_SyntaxError(t *testing.T) {
	l := New()

	outcome, err := l.Lint(context.Background(), "var x = 1;\nfunction f( {\n", map[string]any{"undef": true}, nil)
	require.NoError(t, err)
	require.False(t, outcome.Clean)
	require.NotEmpty(t, outcome.Findings)

	for _, f := range outcome.Findings {
		require.NotNil(t, f)
		assert.Equal(t, "error", f.Type)
		assert.GreaterOrEqual(t, f.Line, 1)
		assert.GreaterOrEqual(t, f.Character, 1)
		assert.Contains(t, []string{CodeUnexpected, CodeMissing}, f.Code)
	}
	// Nothing wrong on the first line
	assert.GreaterOrEqual(t, outcome.Findings[0].Line, 2)
}

func TestLint_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Lint(ctx, "var x;", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistered(t *testing.T) {
	e, err := linter.Global().NewEngine(EngineName, linter.EngineOptions{})
	require.NoError(t, err)
	assert.Equal(t, EngineName, e.Name())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 20, "abc"},
		{"ascii", "abcdefghijklmnopqrstuvwxyz", 20, "abcdefghijklmnopqrst"},
		{"exact", "abcdefghijklmnopqrst", 20, "abcdefghijklmnopqrst"},
		// "é" is two bytes; byte 20 is its continuation byte.
		{"two-byte rune on boundary", "abcdefghijklmnopqrsé", 20, "abcdefghijklmnopqrs"},
		{"three-byte runes", "変数変数変数変数", 20, "変数変数変数"},
		{"four-byte rune", "😀😀😀😀😀😀", 20, "😀😀😀😀😀"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate([]byte(tt.in), tt.n)
			assert.Equal(t, tt.want, string(got))
			assert.True(t, utf8.Valid(got))
		})
	}
}

func TestLint_UnexpectedSnippetIsValidUTF8(t *testing.T) {
	l := New()
	out, err := l.Lint(context.Background(), "var x = 1 変数変数変数変数変数変数変数;", nil, nil)
	require.NoError(t, err)
	require.False(t, out.Clean)
	for _, f := range out.Findings {
		assert.True(t, utf8.ValidString(f.Reason), f.Reason)
	}
}
