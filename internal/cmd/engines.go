package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/linter"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List diagnostics providers and analysis engines",
	Long: `List the registered diagnostics providers per language and the analysis
engines that can back them, with their version, project config file and
install state. The engine scans would use is marked active.`,
	Example: `  sym-jshint engines`,
	Args:    cobra.NoArgs,
	RunE:    runEngines,
}

func runEngines(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, "")
	if err != nil {
		return err
	}

	opts := linter.EngineOptions{ToolsDir: a.settings.ToolsDir, Timeout: a.settings.Timeout}
	return writeEngines(ctx, cmd.OutOrStdout(), a.registry, a.inspector.EngineName(), opts)
}

// writeEngines prints every language that has a provider, its providers and
// the engines registered for it.
func writeEngines(ctx context.Context, w io.Writer, registry *linter.Registry, active string, opts linter.EngineOptions) error {
	languages := registry.Languages()
	if len(languages) == 0 {
		_, err := fmt.Fprintln(w, "no diagnostics providers registered")
		return err
	}

	mapping := registry.BuildLanguageMapping()
	for _, lang := range languages {
		var providers []string
		for _, p := range registry.Providers(lang) {
			providers = append(providers, p.Name)
		}
		fmt.Fprintln(w, lang)
		fmt.Fprintf(w, "  providers: %s\n", strings.Join(providers, ", "))

		for _, name := range mapping[lang] {
			engine, err := registry.NewEngine(name, opts)
			if err != nil {
				return err
			}
			details := describeEngine(ctx, engine, registry.GetConfigFile(name))
			if name == active {
				details = append(details, "active")
			}
			fmt.Fprintf(w, "  engine %s: %s\n", name, strings.Join(details, ", "))
		}
	}
	return nil
}

func describeEngine(ctx context.Context, engine linter.Engine, configFile string) []string {
	var details []string
	if d, ok := engine.(linter.Describer); ok {
		if v := d.GetCapabilities().Version; v != "" {
			details = append(details, "version "+v)
		}
	}
	if configFile != "" {
		details = append(details, "config "+configFile)
	}

	inst, ok := engine.(linter.Installer)
	switch {
	case !ok:
		details = append(details, "built-in")
	case inst.CheckAvailability(ctx) == nil:
		details = append(details, "installed")
	default:
		details = append(details, "not installed")
	}
	return details
}
