package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"snippet-shell/internal/config"
)

func TestRootCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, flag := range []string{"--data-dir", "--log-level", "--feed-url", "--legacy-path"} {
		if !strings.Contains(out.String(), flag) {
			t.Errorf("help output missing %s", flag)
		}
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() with positional args succeeded, want error")
	}
}

func TestRootOptions_Resolve(t *testing.T) {
	dir := t.TempDir()
	stored := config.DefaultSettings()
	stored.UpdateFeedURL = "https://updates.example.com/shell"
	stored.LogLevel = "warn"
	if err := stored.Save(config.SettingsPath(dir)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		opts       rootOptions
		wantFeed   string
		wantLevel  string
		wantLegacy string
	}{
		{
			name:       "settings file",
			opts:       rootOptions{dataDir: dir},
			wantFeed:   "https://updates.example.com/shell",
			wantLevel:  "warn",
			wantLegacy: config.LegacySnippetsPath,
		},
		{
			name: "flags override",
			opts: rootOptions{
				dataDir:    dir,
				logLevel:   "debug",
				feedURL:    "http://localhost:9000/feed",
				legacyPath: "/old/snippets.json",
			},
			wantFeed:   "http://localhost:9000/feed",
			wantLevel:  "debug",
			wantLegacy: "/old/snippets.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDir, settings, err := tt.opts.resolve()
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if gotDir != dir {
				t.Errorf("data dir = %q, want %q", gotDir, dir)
			}
			if settings.UpdateFeedURL != tt.wantFeed {
				t.Errorf("UpdateFeedURL = %q, want %q", settings.UpdateFeedURL, tt.wantFeed)
			}
			if settings.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", settings.LogLevel, tt.wantLevel)
			}
			if settings.LegacyPath != tt.wantLegacy {
				t.Errorf("LegacyPath = %q, want %q", settings.LegacyPath, tt.wantLegacy)
			}
		})
	}
}

func TestRootOptions_ResolveEnvDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "env")
	t.Setenv("SNIPPET_SHELL_DATA_HOME", dir)

	gotDir, settings, err := (&rootOptions{}).resolve()
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if gotDir != dir {
		t.Errorf("data dir = %q, want %q", gotDir, dir)
	}
	if settings.Window.Width != 800 || settings.Window.Height != 500 {
		t.Errorf("window = %+v, want 800x500 defaults", settings.Window)
	}
}

func TestRootOptions_ResolveWithoutDataDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config root resolution from $HOME/$XDG_CONFIG_HOME is linux-specific")
	}
	t.Setenv("SNIPPET_SHELL_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	if dir, _, err := (&rootOptions{}).resolve(); err == nil {
		t.Errorf("resolve() = %q, want error instead of a working-directory fallback", dir)
	}
}

func TestOpenLogger(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "logs", "main.log")
	log, closer := openLogger(path, zerolog.InfoLevel)
	if log == nil || closer == nil {
		t.Fatalf("openLogger(%q) = %v, %v, want file logger", path, log, closer)
	}
	log.Info("Test", "written", nil)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestOpenLogger_FallsBackToConsole(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "logs")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	log, closer := openLogger(filepath.Join(blocker, "main.log"), zerolog.InfoLevel)
	if log == nil {
		t.Fatal("openLogger() returned no logger")
	}
	if closer != nil {
		t.Errorf("openLogger() closer = %v, want nil for console logging", closer)
	}
}
