package jshint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DevSymphony/sym-jshint/internal/linter"
)

// JSHint CLI exit codes.
const (
	exitClean    = 0
	exitFindings = 2
)

// reporterOutput is the line printed by the bundled reporter.
type reporterOutput struct {
	Errors []*linter.Finding `json:"errors"`
}

// parseOutput converts a JSHint run into an outcome.
// Exit 0 is clean, exit 2 carries findings, anything else is a failure.
func parseOutput(output *linter.ToolOutput) (*linter.Outcome, error) {
	switch output.ExitCode {
	case exitClean:
		return linter.CleanOutcome(), nil
	case exitFindings:
	default:
		return nil, fmt.Errorf("jshint exited with code %d: %s", output.ExitCode, firstLine(output.Stderr, output.Stdout))
	}

	line := lastJSONLine(output.Stdout)
	if line == "" {
		return nil, fmt.Errorf("jshint reported failures without reporter output: %s", firstLine(output.Stderr, output.Stdout))
	}

	var parsed reporterOutput
	if err := json.Unmarshal([]byte(line), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSHint output: %w", err)
	}

	if len(parsed.Errors) == 0 {
		return linter.CleanOutcome(), nil
	}
	return linter.FindingsOutcome(parsed.Errors), nil
}

// lastJSONLine returns the last stdout line that looks like a JSON object.
func lastJSONLine(stdout string) string {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, "{") {
			return l
		}
	}
	return ""
}

func firstLine(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if i := strings.IndexByte(c, '\n'); i >= 0 {
			return c[:i]
		}
		return c
	}
	return "no output"
}
