package jshintrc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// ParseError reports a project config file that could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse builds a Configuration from .jshintrc content.
// The top-level "globals" object is extracted and removed; every other
// key is passed through as an option. Globals entries JSHint would not
// understand are dropped.
func Parse(data []byte) (schema.Configuration, error) {
	cfg, _, err := parse(data)
	return cfg, err
}

// parse is Parse that also describes every dropped globals entry.
func parse(data []byte) (schema.Configuration, []string, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return schema.Configuration{}, nil, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return schema.Configuration{}, nil, fmt.Errorf("expected a JSON object, got %s", jsonKind(raw))
	}

	cfg := schema.Configuration{
		Options: make(map[string]any, len(obj)),
		Globals: map[string]bool{},
	}

	var skipped []string
	if g, present := obj["globals"]; present {
		cfg.Globals, skipped = parseGlobals(g)
	}

	for k, v := range obj {
		if k == "globals" {
			continue
		}
		cfg.Options[k] = v
	}

	return cfg, skipped, nil
}

// parseGlobals accepts the forms JSHint understands for a globals entry:
// booleans and the strings "readonly"/"writable". "off" drops the symbol.
func parseGlobals(v any) (map[string]bool, []string) {
	if v == nil {
		return map[string]bool{}, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return map[string]bool{}, []string{fmt.Sprintf("globals: expected an object, got %s", jsonKind(v))}
	}

	out := make(map[string]bool, len(m))
	var skipped []string
	for name, val := range m {
		switch tv := val.(type) {
		case bool:
			out[name] = tv
		case string:
			switch strings.ToLower(tv) {
			case "writable", "writeable", "true":
				out[name] = true
			case "readonly", "false":
				out[name] = false
			case "off":
				// removed from the allowlist
			default:
				skipped = append(skipped, fmt.Sprintf("globals: invalid value %q for %s", tv, name))
			}
		default:
			skipped = append(skipped, fmt.Sprintf("globals: invalid %s value for %s", jsonKind(val), name))
		}
	}
	sort.Strings(skipped)
	return out, skipped
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
