// Package config resolves the per-user data directory and loads the optional
// settings file stored inside it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName is the directory name used under the platform configuration root.
const AppName = "Snippet Shell"

// Dir returns the per-user data directory.
//
// Resolution:
//   - $SNIPPET_SHELL_DATA_HOME if set (explicit override)
//   - os.UserConfigDir()/Snippet Shell otherwise, which is
//     %AppData% on Windows, ~/Library/Application Support on macOS and
//     $XDG_CONFIG_HOME or ~/.config on Linux
//
// There is no working-directory fallback: a relative data directory would
// alias the legacy snippets.json.
func Dir() (string, error) {
	if dir := os.Getenv("SNIPPET_SHELL_DATA_HOME"); dir != "" {
		return dir, nil
	}

	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(root, AppName), nil
}

// SnippetsPath is the canonical document location inside dataDir.
func SnippetsPath(dataDir string) string {
	return filepath.Join(dataDir, "snippets.json")
}

// LogPath is the persistent log file inside dataDir.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "main.log")
}

// SettingsPath is the optional settings file inside dataDir.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, "settings.yaml")
}

// UpdateCacheDir holds downloaded update packages.
func UpdateCacheDir(dataDir string) string {
	return filepath.Join(dataDir, "pending-update")
}
