package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// Output formats accepted by WriteReport.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileReport is the scan result of one file.
type FileReport struct {
	Path        string              `json:"path" yaml:"path"`
	Diagnostics []schema.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Report is the result of scanning a set of files.
type Report struct {
	Files    []FileReport `json:"files" yaml:"files"`
	Errors   int          `json:"errors" yaml:"errors"`
	Warnings int          `json:"warnings" yaml:"warnings"`
}

// Add appends a file's result and updates the totals. A nil result is a
// clean file.
func (r *Report) Add(path string, res *schema.ScanResult) {
	fr := FileReport{Path: path, Diagnostics: []schema.Diagnostic{}}
	if res != nil {
		fr.Diagnostics = append(fr.Diagnostics, res.Errors...)
		for _, d := range res.Errors {
			if d.Type == schema.SeverityWarning {
				r.Warnings++
			} else {
				r.Errors++
			}
		}
	}
	r.Files = append(r.Files, fr)
}

// WriteReport renders r to w in the given format.
func WriteReport(w io.Writer, r *Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, r, NewPainter(w))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s (use text, json or yaml)", format)
	}
}

// writeText prints one line per diagnostic, eslint-stylish like:
//
//	path/to/file.js
//	  3:5  warning  'x' is defined but never used. (W098)
//
// Lines are printed 1-based.
func writeText(w io.Writer, r *Report, p Painter) error {
	for _, f := range r.Files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		if _, err := fmt.Fprintln(w, p.Paint(Bold, f.Path)); err != nil {
			return err
		}
		for _, d := range f.Diagnostics {
			sev := p.Paint(Red, "error  ")
			if d.Type == schema.SeverityWarning {
				sev = p.Paint(Yellow, "warning")
			}
			loc := p.Paint(Dim, fmt.Sprintf("%d:%d", d.Pos.Line+1, d.Pos.Ch))
			if _, err := fmt.Fprintf(w, "  %s  %s  %s\n", loc, sev, d.Message); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d file(s) checked: %d error(s), %d warning(s)", len(r.Files), r.Errors, r.Warnings)
	switch {
	case r.Errors > 0:
		summary = p.Paint(Red, summary)
	case r.Warnings > 0:
		summary = p.Paint(Yellow, summary)
	default:
		summary = p.Paint(Green, summary)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}
