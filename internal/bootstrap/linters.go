package bootstrap

import (
	// Import engines for registration side-effects.
	// Each engine's register.go file contains an init() function
	// that registers the engine with the global registry.
	_ "github.com/DevSymphony/sym-jshint/internal/linter/jshint"
	_ "github.com/DevSymphony/sym-jshint/internal/linter/syntax"
)

// This package only imports engine packages for their init() side-effects.
// Import this package from main.go to ensure all engines are registered.
