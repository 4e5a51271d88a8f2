package main

import (
	"github.com/DevSymphony/sym-jshint/internal/cmd"

	// Bootstrap: register all analysis engines
	_ "github.com/DevSymphony/sym-jshint/internal/bootstrap"
)

// Version is set by build -ldflags "-X main.Version=x.y.z"
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
