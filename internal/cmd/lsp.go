package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/inspection"
	"github.com/DevSymphony/sym-jshint/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start a language server publishing JSHint diagnostics",
	Long: `Start a Language Server Protocol server over stdio.

The server lints open JavaScript documents on open and change, and reloads
the project's .jshintrc when the editor saves it or reports it changed.`,
	Example: `  sym-jshint lsp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, "")
		if err != nil {
			return err
		}

		server := lsp.NewServer(a.inspector, inspection.ProviderName, version, a.logger)
		return server.Run(ctx)
	},
}
