package syntax

import (
	"github.com/DevSymphony/sym-jshint/internal/linter"
)

func init() {
	_ = linter.Global().RegisterEngine(
		EngineName,
		func(linter.EngineOptions) linter.Engine { return New() },
		[]string{"javascript"},
		"",
	)
}
