/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type EditorConfig struct {
	// CancelPolicy decides what a revert intent does to a move in progress:
	// "revert" restores the drag-start positions, "commit" keeps them.
	CancelPolicy string  `yaml:"cancel_policy"`
	MarkerRadius float32 `yaml:"marker_radius"`
}

type StyleConfig struct {
	Fill        string  `yaml:"fill"`
	Stroke      string  `yaml:"stroke"`
	StrokeWidth float32 `yaml:"stroke_width"`
	Handle      string  `yaml:"handle"`
	Control     string  `yaml:"control"`
	Highlight   string  `yaml:"highlight"`
	Arm         string  `yaml:"arm"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	Style         StyleConfig   `yaml:"style"`
	Logging       LoggingConfig `yaml:"logging"`
	// Bindings maps an intent name (begin_move, rotate, ...) to a key name.
	// Several intents may share a key; the editor ignores the ones that do not
	// apply to the current mode.
	Bindings map[string]string `yaml:"bindings"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Editor:        EditorConfig{CancelPolicy: "revert", MarkerRadius: 4},
		Style: StyleConfig{
			Fill:        "#808080",
			Stroke:      "#ffffff",
			StrokeWidth: 1,
			Handle:      "#ffffff",
			Control:     "#ff0000",
			Highlight:   "#ffb000",
			Arm:         "#a0a0a0",
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Bindings: map[string]string{
			"begin_move":  "g",
			"rotate":      "r",
			"scale":       "s",
			"deselect":    "escape",
			"revert":      "escape",
			"commit":      "enter",
			"constrain_x": "x",
			"constrain_y": "y",
		},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "SPLINED_CONFIG"
	EnvCancelPolicy = "SPLINED_CANCEL_POLICY"
	EnvMarkerRadius = "SPLINED_MARKER_RADIUS"
	EnvLogLevel     = "SPLINED_LOG_LEVEL"
	EnvLogFormat    = "SPLINED_LOG_FORMAT"
	EnvLogSource    = "SPLINED_LOG_SOURCE"
	EnvLogFile      = "SPLINED_LOG_FILE"
)

// ConfigPath returns the per-user config file path. SPLINED_CONFIG wins if set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Splined")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Splined")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "splined")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "splined")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an error;
// a malformed one is reported and the defaults (plus env) are returned.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	var loadErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		loadErr = fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil && loadErr == nil {
		loadErr = err
	}
	return cfg, loadErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks enumerations and numeric ranges.
func (c AppConfig) Validate() error {
	switch c.Editor.CancelPolicy {
	case "revert", "commit":
	default:
		return fmt.Errorf("editor.cancel_policy: unknown value %q (want revert or commit)", c.Editor.CancelPolicy)
	}
	if c.Editor.MarkerRadius < 0 {
		return fmt.Errorf("editor.marker_radius: must not be negative")
	}
	if c.Style.StrokeWidth < 0 {
		return fmt.Errorf("style.stroke_width: must not be negative")
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.ToLower(strings.TrimSpace(src.Editor.CancelPolicy)); v != "" {
		dst.Editor.CancelPolicy = v
	}
	if src.Editor.MarkerRadius != 0 {
		dst.Editor.MarkerRadius = src.Editor.MarkerRadius
	}
	mergeStr := func(d *string, s string) {
		if s = strings.TrimSpace(s); s != "" {
			*d = s
		}
	}
	mergeStr(&dst.Style.Fill, src.Style.Fill)
	mergeStr(&dst.Style.Stroke, src.Style.Stroke)
	mergeStr(&dst.Style.Handle, src.Style.Handle)
	mergeStr(&dst.Style.Control, src.Style.Control)
	mergeStr(&dst.Style.Highlight, src.Style.Highlight)
	mergeStr(&dst.Style.Arm, src.Style.Arm)
	if src.Style.StrokeWidth != 0 {
		dst.Style.StrokeWidth = src.Style.StrokeWidth
	}
	// logging
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	mergeStr(&dst.Logging.File, src.Logging.File)
	// bindings: file entries replace the default for the same intent; an empty key unbinds
	for intent, key := range src.Bindings {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			delete(dst.Bindings, intent)
			continue
		}
		dst.Bindings[intent] = key
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvCancelPolicy)); v != "" {
		cfg.Editor.CancelPolicy = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMarkerRadius)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Editor.MarkerRadius = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "editor.cancel_policy":
		env = EnvCancelPolicy
	case "editor.marker_radius":
		env = EnvMarkerRadius
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// KeysFor returns the intent names bound to key, sorted by intent name.
func (c AppConfig) KeysFor(key string) []string {
	key = strings.ToLower(strings.TrimSpace(key))
	var intents []string
	for intent, k := range c.Bindings {
		if k == key {
			intents = append(intents, intent)
		}
	}
	slices.Sort(intents)
	return intents
}
