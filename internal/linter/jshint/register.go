package jshint

import (
	"github.com/DevSymphony/sym-jshint/internal/linter"
)

func init() {
	_ = linter.Global().RegisterEngine(
		EngineName,
		func(opts linter.EngineOptions) linter.Engine { return New(opts) },
		[]string{"javascript"},
		".jshintrc",
	)
}
