// Package syntax is an in-process JavaScript engine that reports syntax
// errors only. It needs no Node.js toolchain and backs the provider when
// the JSHint CLI is not installed.
package syntax

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/DevSymphony/sym-jshint/internal/linter"
)

// Compile-time interface checks
var (
	_ linter.Engine    = (*Linter)(nil)
	_ linter.Describer = (*Linter)(nil)
)

// EngineName is the registry name of this engine.
const EngineName = "syntax"

// Finding codes.
const (
	CodeUnexpected = "E000"
	CodeMissing    = "E001"
)

// maxFindings caps the findings reported for one document.
const maxFindings = 50

// Linter parses JavaScript with tree-sitter and reports ERROR and MISSING nodes.
// Options and globals are accepted for interface compatibility and ignored.
type Linter struct {
	language *sitter.Language
}

// New creates the syntax engine.
func New() *Linter {
	return &Linter{language: sitter.NewLanguage(tree_sitter_javascript.Language())}
}

// Name returns the engine name.
func (l *Linter) Name() string {
	return EngineName
}

// GetCapabilities returns the syntax engine capabilities.
func (l *Linter) GetCapabilities() linter.Capabilities {
	return linter.Capabilities{
		Name:               EngineName,
		SupportedLanguages: []string{"javascript"},
		Version:            "built-in",
	}
}

// Lint parses source and reports syntax problems.
func (l *Linter) Lint(ctx context.Context, source string, _ map[string]any, _ map[string]bool) (*linter.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(l.language); err != nil {
		return nil, fmt.Errorf("failed to load javascript grammar: %w", err)
	}

	content := []byte(source)
	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return linter.CleanOutcome(), nil
	}

	var findings []*linter.Finding
	collect(root, content, &findings)
	if len(findings) == 0 {
		// HasError without a located node; report at the root
		findings = append(findings, &linter.Finding{
			Line:      1,
			Character: 1,
			Reason:    "Unrecoverable syntax error.",
			Code:      CodeUnexpected,
			Type:      "error",
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Character < findings[j].Character
	})
	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}

	return linter.FindingsOutcome(findings), nil
}

// collect walks the tree and records one finding per ERROR or MISSING node.
// Children of an ERROR node are not descended into.
func collect(node *sitter.Node, source []byte, out *[]*linter.Finding) {
	if node == nil {
		return
	}

	switch {
	case node.IsMissing():
		*out = append(*out, newFinding(node, fmt.Sprintf("Missing '%s'.", node.Kind()), CodeMissing))
		return
	case node.IsError():
		*out = append(*out, newFinding(node, fmt.Sprintf("Unexpected '%s'.", snippet(node, source)), CodeUnexpected))
		return
	}

	if !node.HasError() {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collect(node.Child(i), source, out)
	}
}

func newFinding(node *sitter.Node, reason, code string) *linter.Finding {
	pos := node.StartPosition()
	return &linter.Finding{
		Line:      int(pos.Row) + 1,
		Character: int(pos.Column) + 1,
		Reason:    reason,
		Code:      code,
		Type:      "error",
	}
}

// maxSnippet is the longest snippet quoted in a message, in bytes.
const maxSnippet = 20

// snippet returns the first token-ish slice of the node text.
func snippet(node *sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if end > uint(len(source)) {
		end = uint(len(source))
	}
	text := source[start:end]
	for i, b := range text {
		if b == '\n' || b == ' ' || b == '\t' {
			text = text[:i]
			break
		}
	}
	text = truncate(text, maxSnippet)
	if len(text) == 0 {
		return "(end)"
	}
	return string(text)
}

// truncate cuts b to at most n bytes without splitting a UTF-8 sequence.
func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return b[:n]
}
