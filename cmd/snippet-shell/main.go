// Package main provides the entry point for the Snippet Shell desktop app.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	shell "snippet-shell/internal/app"
	"snippet-shell/internal/config"
	"snippet-shell/internal/logger"
)

// Set via ldflags: go build -ldflags "-X main.version=1.4.0".
var version = "dev"

type rootOptions struct {
	dataDir    string
	logLevel   string
	feedURL    string
	legacyPath string
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "snippet-shell",
		Short: "A desktop shell for your snippets document",
		Long: `Snippet Shell opens a single window editing your snippets document.

The document lives in the per-user data directory. On first run an older
snippets.json next to the program is copied forward, and if none is found
you are asked to locate it.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default: $SNIPPET_SHELL_DATA_HOME or the user config dir)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.feedURL, "feed-url", "", "update feed base URL; empty disables update checks")
	cmd.Flags().StringVar(&opts.legacyPath, "legacy-path", "", "location of a pre-migration snippets document")

	return cmd
}

// resolve picks the data directory and loads settings with flag overrides.
func (o *rootOptions) resolve() (string, *config.Settings, error) {
	dataDir := o.dataDir
	if dataDir == "" {
		dir, err := config.Dir()
		if err != nil {
			return "", nil, fmt.Errorf("resolve data directory: %w", err)
		}
		dataDir = dir
	}

	settings, err := config.Load(config.SettingsPath(dataDir))
	if err != nil {
		return "", nil, err
	}

	if o.logLevel != "" {
		settings.LogLevel = o.logLevel
	}
	if o.feedURL != "" {
		settings.UpdateFeedURL = o.feedURL
	}
	if o.legacyPath != "" {
		settings.LegacyPath = o.legacyPath
	}
	return dataDir, settings, nil
}

func runShell(opts *rootOptions) error {
	dataDir, settings, err := opts.resolve()
	if err != nil {
		return err
	}

	log, logFile := openLogger(config.LogPath(dataDir), logger.ParseLevel(settings.LogLevel))

	application := shell.NewApplication(app.NewWithID(shell.AppID), shell.Options{
		Version:   version,
		DataDir:   dataDir,
		Settings:  settings,
		Logger:    log,
		LogCloser: logFile,
	})
	return application.Run()
}

// openLogger logs to the console and the file at path. When the file cannot
// be opened the shell still starts with console logging only and a nil closer.
func openLogger(path string, level zerolog.Level) (logger.Logger, io.Closer) {
	log, file, err := logger.NewFileLogger(path, level)
	if err == nil {
		return log, file
	}

	console := logger.NewConsoleLogger(level)
	console.Warning("Main", "persistent log unavailable, logging to console only", map[string]interface{}{
		"path":  path,
		"error": err.Error(),
	})
	return console, nil
}
