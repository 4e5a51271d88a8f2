package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/linter"
	"github.com/DevSymphony/sym-jshint/internal/linter/jshint"
	"github.com/DevSymphony/sym-jshint/internal/ui"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install JSHint into the tools directory",
	Long: `Install JSHint with npm into the tools directory (tools_dir setting,
default ~/.sym/tools). Requires Node.js.`,
	Example: `  sym-jshint install
  sym-jshint install --version 2.13.6 --force`,
	RunE: runInstall,
}

var (
	installVersion string
	installForce   bool
)

func init() {
	installCmd.Flags().StringVar(&installVersion, "version", "", "JSHint version to install (default: "+jshint.DefaultVersion+")")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Reinstall even if JSHint is present")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	engine, err := linter.Global().NewEngine(jshint.EngineName, linter.EngineOptions{
		ToolsDir: settings.ToolsDir,
		Timeout:  settings.Timeout,
	})
	if err != nil {
		return err
	}
	installer, ok := engine.(linter.Installer)
	if !ok {
		return fmt.Errorf("%s engine cannot be installed", jshint.EngineName)
	}

	if !installForce && installer.CheckAvailability(ctx) == nil {
		ui.PrintOK("JSHint is already installed")
		return nil
	}

	ui.PrintTitle("Install", fmt.Sprintf("Installing JSHint into %s", settings.ToolsDir))
	if err := installer.Install(ctx, linter.InstallConfig{
		ToolsDir: settings.ToolsDir,
		Version:  installVersion,
		Force:    installForce,
	}); err != nil {
		return err
	}

	ui.PrintDone("JSHint installed")
	return nil
}
