package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LegacySnippetsPath is where earlier releases kept the document, relative to
// the working directory.
const LegacySnippetsPath = "snippets.json"

// Settings holds the user-tunable options read from settings.yaml.
type Settings struct {
	// UpdateFeedURL is the base URL of the release feed. Empty disables update checks.
	UpdateFeedURL string `yaml:"update_feed_url"`
	LogLevel      string `yaml:"log_level"`
	LegacyPath    string `yaml:"legacy_path"`

	Window WindowSettings `yaml:"window"`
}

type WindowSettings struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		LegacyPath: LegacySnippetsPath,
		Window: WindowSettings{
			Width:  800,
			Height: 500,
		},
	}
}

// Load reads settings from path. A missing file yields the defaults; fields
// absent from the file keep their default values.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	settings.applyDefaults()
	return settings, nil
}

// Save writes settings to path as YAML.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Settings) applyDefaults() {
	defaults := DefaultSettings()
	if s.LegacyPath == "" {
		s.LegacyPath = defaults.LegacyPath
	}
	if s.Window.Width <= 0 {
		s.Window.Width = defaults.Window.Width
	}
	if s.Window.Height <= 0 {
		s.Window.Height = defaults.Window.Height
	}
}
