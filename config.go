package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const defaultInterval = 2 * time.Second

// Settings holds the optional user overrides for the sampling loop.
type Settings struct {
	IntervalMS  int    `json:"interval_ms"`
	CapturePath string `json:"capture_path"`
}

// Interval returns the configured poll interval, or the default when unset.
func (s Settings) Interval() time.Duration {
	if s.IntervalMS <= 0 {
		return defaultInterval
	}
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// configDir overrides the default settings directory for testing.
// When empty, the user's home directory is used.
var configDir string

func configPath() (string, error) {
	if configDir != "" {
		return filepath.Join(configDir, "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pixelpick", "config.json"), nil
}

// defaultCapturePath derives the capture file location from the current
// working directory.
func defaultCapturePath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return filepath.Join(cwd, "tempscreenshot.png"), nil
}

// LoadSettings loads the settings file if present. Returns false with no
// error when the file does not exist; the caller falls back to defaults.
func LoadSettings() (Settings, bool, error) {
	path, err := configPath()
	if err != nil {
		return Settings{}, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, false, nil
		}
		return Settings{}, false, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, true, nil
}

// SaveSettings persists the settings, creating the config directory with
// 0700 if needed.
func SaveSettings(s Settings) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
