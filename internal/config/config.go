// Package config holds the walkthrough's engine preferences: a JSON file on
// disk, with WALK_* environment variables layered on top.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jinzhu/copier"
	"github.com/pixil98/go-errors"
)

// ConfigPath is the path to the preferences file, relative to the process working directory.
const ConfigPath = "config/walk.json"

// Prefs are engine preferences. Locomotion and hotspot constants are fixed and
// deliberately not part of this struct.
type Prefs struct {
	ContentPath      string  `json:"content_path"      env:"WALK_CONTENT_PATH"`
	EnvironmentPath  string  `json:"environment_path"  env:"WALK_ENVIRONMENT_PATH"`
	ShowFPS          bool    `json:"show_fps"          env:"WALK_SHOW_FPS"`
	ShowMemAlloc     bool    `json:"show_memalloc"     env:"WALK_SHOW_MEMALLOC"`
	LogLevel         string  `json:"log_level"         env:"WALK_LOG_LEVEL"`
	MouseSensitivity float32 `json:"mouse_sensitivity" env:"WALK_MOUSE_SENSITIVITY"`
}

// Default returns default preferences (overlays off, info logging).
func Default() Prefs {
	return Prefs{
		ContentPath:      "assets/college.json",
		EnvironmentPath:  "assets/college.yaml",
		LogLevel:         "info",
		MouseSensitivity: 0.003,
	}
}

// Load reads preferences from path. A missing or unreadable file yields
// Default(); an invalid one is reported alongside Default().
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

// LoadOrCreate is Load, but first writes Default() to path when nothing exists
// there yet, leaving an editable preferences file behind.
func LoadOrCreate(path string) (Prefs, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, Default()); err != nil {
			return Default(), fmt.Errorf("writing default %s: %w", path, err)
		}
		slog.Info("wrote default preferences", "path", path)
	}
	return Load(path)
}

// ApplyEnv overlays any WALK_* variables that are set onto p.
func ApplyEnv(p Prefs) (Prefs, error) {
	var overrides Prefs
	if err := env.Parse(&overrides); err != nil {
		return p, fmt.Errorf("parse env: %w", err)
	}
	if err := copier.CopyWithOption(&p, &overrides, copier.Option{IgnoreEmpty: true}); err != nil {
		return p, fmt.Errorf("merging env overrides: %w", err)
	}
	return p, nil
}

// Validate reports every problem with p at once.
func (p Prefs) Validate() error {
	el := errors.NewErrorList()
	if p.ContentPath == "" {
		el.Add(fmt.Errorf("content_path is required"))
	}
	if p.EnvironmentPath == "" {
		el.Add(fmt.Errorf("environment_path is required"))
	}
	if p.MouseSensitivity <= 0 {
		el.Add(fmt.Errorf("mouse_sensitivity must be positive, got %v", p.MouseSensitivity))
	}
	if _, err := ParseLevel(p.LogLevel); err != nil {
		el.Add(err)
	}
	return el.Err()
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return l, nil
}

// Save writes p to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
