package linter

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ===== Path/Directory Helpers =====

// DefaultToolsDir returns the standard tools directory (~/.sym/tools).
func DefaultToolsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sym", "tools")
}

// EnsureDir creates directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FindTool locates a tool binary, checking local path first, then global PATH.
// Returns empty string if not found.
func FindTool(localPath, globalName string) string {
	if localPath != "" {
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}
	if path, err := exec.LookPath(globalName); err == nil {
		return path
	}
	return ""
}

// ===== Config File Helpers =====

// WriteTempFile writes content to a temp file under toolsDir/.tmp.
// pattern follows os.CreateTemp (e.g. "jshintrc-*.json").
func WriteTempFile(toolsDir, pattern string, content []byte) (string, error) {
	tmpDir := filepath.Join(toolsDir, ".tmp")
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp(tmpDir, pattern)
	if err != nil {
		return "", err
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.Write(content); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

// ===== Language Helpers =====

// javascriptExts are the file extensions treated as the "javascript" category.
var javascriptExts = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
	".jsx": true,
}

// LanguageForPath maps a file path to a language category.
// Returns "" for unknown files.
func LanguageForPath(path string) string {
	if javascriptExts[strings.ToLower(filepath.Ext(path))] {
		return "javascript"
	}
	return ""
}
