package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/jshintrc"
	"github.com/DevSymphony/sym-jshint/internal/ui"
	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

var initCmd = &cobra.Command{
	Use:   "init [root]",
	Short: "Create a .jshintrc for the project",
	Long: `Create a .jshintrc in the project root (default: current directory).

The command asks for the target environment, the ECMAScript version and a few
common checks. With --yes it writes the built-in default configuration
without prompting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initForce bool
	initYes   bool
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing .jshintrc")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Write the default configuration without prompting")
}

// initAnswers are the choices made in the init prompts.
type initAnswers struct {
	Environment string // browser, node, both or none
	ESVersion   int
	Unused      bool
	Strict      bool
	Globals     []string
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	path := filepath.Join(root, jshintrc.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		ui.PrintWarn(fmt.Sprintf("%s already exists", path))
		fmt.Println(ui.Indent("Use --force flag to overwrite"))
		return fmt.Errorf("%s already exists", jshintrc.ConfigFileName)
	}

	var (
		data []byte
		err  error
	)
	if initYes {
		data, err = defaultJSHintRC()
	} else {
		ui.PrintTitle("Init", "Configure JSHint for this project")
		answers, promptErr := promptInitAnswers()
		if promptErr != nil {
			ui.PrintInfo("Setup cancelled")
			return nil
		}
		data, err = buildJSHintRC(answers)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	ui.PrintOK(fmt.Sprintf("%s created", jshintrc.ConfigFileName))
	fmt.Println(ui.Indent(fmt.Sprintf("Location: %s", path)))
	return nil
}

func defaultJSHintRC() ([]byte, error) {
	cfg := schema.DefaultConfiguration()
	return renderJSHintRC(cfg.Options, cfg.Globals)
}

// buildJSHintRC renders the answers as .jshintrc content.
func buildJSHintRC(a initAnswers) ([]byte, error) {
	options := schema.DefaultConfiguration().Options

	switch a.Environment {
	case "browser":
		options["browser"] = true
	case "node":
		options["node"] = true
	case "both":
		options["browser"] = true
		options["node"] = true
	}
	if a.ESVersion > 0 {
		options["esversion"] = a.ESVersion
	}
	if a.Unused {
		options["unused"] = true
	}
	if a.Strict {
		options["strict"] = "implied"
	}

	globals := make(map[string]bool, len(a.Globals))
	for _, g := range a.Globals {
		if g = strings.TrimSpace(g); g != "" {
			globals[g] = false
		}
	}

	return renderJSHintRC(options, globals)
}

// renderJSHintRC encodes options and globals and checks that the result
// parses back as a valid .jshintrc.
func renderJSHintRC(options map[string]any, globals map[string]bool) ([]byte, error) {
	doc := make(map[string]any, len(options)+1)
	for k, v := range options {
		doc[k] = v
	}
	if len(globals) > 0 {
		doc["globals"] = globals
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", jshintrc.ConfigFileName, err)
	}
	data = append(data, '\n')

	if _, err := jshintrc.Parse(data); err != nil {
		return nil, err
	}
	return data, nil
}

func promptInitAnswers() (initAnswers, error) {
	var a initAnswers

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	envs := []string{"browser", "node", "both", "none"}
	envPrompt := promptui.Select{
		Label:     "Where does the code run",
		Items:     []string{"Browser", "Node.js", "Browser and Node.js", "Neither (no environment globals)"},
		Templates: templates,
		Size:      4,
	}
	index, _, err := envPrompt.Run()
	if err != nil {
		return a, err
	}
	a.Environment = envs[index]

	versions := []int{5, 6, 8, 11}
	versionPrompt := promptui.Select{
		Label:     "Which ECMAScript version",
		Items:     []string{"ES5", "ES6 (ES2015)", "ES8 (ES2017)", "ES11 (ES2020)"},
		Templates: templates,
		Size:      4,
		CursorPos: 3,
	}
	index, _, err = versionPrompt.Run()
	if err != nil {
		return a, err
	}
	a.ESVersion = versions[index]

	a.Unused = confirm("Warn about unused variables")
	a.Strict = confirm("Require strict mode")

	globalsPrompt := promptui.Prompt{
		Label: "Extra read-only globals (comma separated, optional)",
	}
	globals, err := globalsPrompt.Run()
	if err != nil {
		return a, err
	}
	a.Globals = strings.Split(globals, ",")

	return a, nil
}

func confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	result, err := prompt.Run()
	return err == nil && strings.ToLower(result) == "y"
}
