package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/DevSymphony/sym-jshint/internal/ui"
)

// serverKey is the name the MCP server is registered under.
const serverKey = "sym-jshint"

// mcpApps are the supported MCP clients, in prompt order.
var mcpApps = []string{"claude-code", "cursor", "vscode", "claude-desktop"}

var mcpRegisterApp string

var mcpRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register sym-jshint as an MCP server for AI coding tools",
	Long: `Add a sym-jshint entry to an MCP client's configuration.

Project configs (.mcp.json, .cursor/mcp.json, .vscode/mcp.json) are written in
the current directory; Claude Desktop's config is global. Existing entries of
other servers are kept and a .bak copy of the previous file is written.`,
	Example: `  sym-jshint mcp register
  sym-jshint mcp register --app cursor
  sym-jshint mcp register --app all`,
	RunE: runMCPRegister,
}

func init() {
	mcpCmd.AddCommand(mcpRegisterCmd)

	mcpRegisterCmd.Flags().StringVar(&mcpRegisterApp, "app", "", "client to register: claude-code, cursor, vscode, claude-desktop or all")
}

func runMCPRegister(cmd *cobra.Command, args []string) error {
	app := mcpRegisterApp
	if app == "" {
		selected, err := promptMCPApp()
		if err != nil {
			ui.PrintInfo("Skipped MCP registration")
			return nil
		}
		app = selected
	}

	apps := []string{app}
	if app == "all" {
		apps = mcpApps
	}

	command := serverKey
	if exe, err := os.Executable(); err == nil {
		command = exe
	}

	for _, a := range apps {
		path := mcpConfigPath(a)
		if path == "" {
			return fmt.Errorf("unsupported app: %s", a)
		}
		if err := registerMCP(path, a, command); err != nil {
			ui.PrintError(fmt.Sprintf("Failed to register %s: %v", appDisplayName(a), err))
			continue
		}
		ui.PrintOK(fmt.Sprintf("Registered for %s", appDisplayName(a)))
		ui.PrintIndent(fmt.Sprintf("Location: %s", path))
	}

	ui.PrintDone("Restart or reload the apps to use sym-jshint")
	return nil
}

func promptMCPApp() (string, error) {
	items := make([]string, 0, len(mcpApps)+1)
	for _, a := range mcpApps {
		items = append(items, appDisplayName(a))
	}
	items = append(items, "All")

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     "Register sym-jshint MCP server for",
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if index == len(mcpApps) {
		return "all", nil
	}
	return mcpApps[index], nil
}

// registerMCP merges the sym-jshint entry into the config file at path.
func registerMCP(path, app, command string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	existing, err := os.ReadFile(path)
	if err == nil {
		if err := os.WriteFile(path+".bak", existing, 0644); err != nil {
			ui.PrintWarn(fmt.Sprintf("Failed to create backup: %v", err))
		}
	}

	data, err := mergeMCPConfig(existing, app, command)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// mergeMCPConfig adds the server entry to an MCP client config, keeping
// everything else. Invalid or empty input starts a new config.
func mergeMCPConfig(existing []byte, app, command string) ([]byte, error) {
	cfg := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &cfg); err != nil || cfg == nil {
			cfg = map[string]any{}
		}
	}

	// VS Code uses "servers", the others "mcpServers"
	key := "mcpServers"
	if app == "vscode" {
		key = "servers"
	}

	servers, ok := cfg[key].(map[string]any)
	if !ok {
		servers = map[string]any{}
	}

	entry := map[string]any{
		"command": command,
		"args":    []string{"mcp"},
	}
	if app == "vscode" || app == "cursor" {
		entry["type"] = "stdio"
	}
	servers[serverKey] = entry
	cfg[key] = servers

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return append(data, '\n'), nil
}

func mcpConfigPath(app string) string {
	cwd, _ := os.Getwd()

	switch app {
	case "claude-code":
		return filepath.Join(cwd, ".mcp.json")
	case "cursor":
		return filepath.Join(cwd, ".cursor", "mcp.json")
	case "vscode":
		return filepath.Join(cwd, ".vscode", "mcp.json")
	case "claude-desktop":
		homeDir, _ := os.UserHomeDir()
		switch runtime.GOOS {
		case "windows":
			return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
		case "darwin":
			return filepath.Join(homeDir, "Library", "Application Support", "Claude", "claude_desktop_config.json")
		default:
			return filepath.Join(homeDir, ".config", "Claude", "claude_desktop_config.json")
		}
	}
	return ""
}

func appDisplayName(app string) string {
	switch app {
	case "claude-desktop":
		return "Claude Desktop"
	case "claude-code":
		return "Claude Code"
	case "cursor":
		return "Cursor"
	case "vscode":
		return "VS Code"
	default:
		return app
	}
}
