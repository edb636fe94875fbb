// Package config loads glox's small REPL/CLI configuration file, grounded
// on the teacher's choice of github.com/goccy/go-yaml for structured config
// (SPEC_FULL.md §2.3).
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds every user-overridable setting. The configuration glox runs
// with if no file is found is Default(), not the zero value.
type Config struct {
	HistoryFile  string `yaml:"history_file"`
	Prompt       string `yaml:"prompt"`
	PrintResults bool   `yaml:"print_results"`
	DiagFormat   string `yaml:"diag_format"` // "text" or "json"
}

// Default returns glox's built-in configuration.
func Default() Config {
	return Config{
		HistoryFile:  defaultHistoryFile(),
		Prompt:       "> ",
		PrintResults: true,
		DiagFormat:   "text",
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".glox_history"
	}
	return filepath.Join(home, ".glox_history")
}

// Path returns the config file glox looks for: $XDG_CONFIG_HOME/glox/config.yaml,
// falling back to ~/.config/glox/config.yaml.
func Path() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "glox", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "glox", "config.yaml")
}

// Load reads the config file if present, overlaying it on Default().
// A missing file is not an error -- it just means "use the defaults",
// in the teacher's LexerOption style of "sane defaults, optional
// overrides" (SPEC_FULL.md §2.3).
func Load() (Config, error) {
	cfg := Default()
	path := Path()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
