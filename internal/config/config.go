// Package config owns the on-disk settings file, the filesystem locations
// the engine is allowed to touch, and the style table used by rendering.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// PresetExt is the filename extension of saved presets.
const PresetExt = ".rlpreset"

// Paths collects every directory the engine reads or writes. It is built
// once at startup and handed to the engine, so nothing deeper looks at the
// process environment.
type Paths struct {
	// UserPresetDir is the primary preset location and the default save
	// target.
	UserPresetDir string
	// LocalPresetDir is a secondary read-only preset location.
	LocalPresetDir string
	// SettingsPath is the settings file written by :save.
	SettingsPath string
	// WorkDir is the directory bare preset names fall back to.
	WorkDir string
}

// DefaultPaths derives the standard locations from the home directory.
// With no resolvable home everything degrades to the working directory.
func DefaultPaths() Paths {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{
			UserPresetDir:  cwd,
			LocalPresetDir: cwd,
			SettingsPath:   filepath.Join(cwd, "reclens.toml"),
			WorkDir:        cwd,
		}
	}

	return Paths{
		UserPresetDir:  filepath.Join(home, ".config", "reclens", "presets"),
		LocalPresetDir: filepath.Join(home, ".local", "etc", "reclens", "presets"),
		SettingsPath:   filepath.Join(home, ".config", "reclens", "settings.toml"),
		WorkDir:        cwd,
	}
}

// Settings is the persisted toggle state saved by :save and restored at
// startup.
type Settings struct {
	WrapMode      bool `toml:"wrap_mode"`
	FrequencyMode bool `toml:"frequency_mode"`
}

// LoadSettings reads the settings file. A missing file yields zero-value
// settings without error.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return s, nil
}

// Save writes the settings file, creating its directory if needed.
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}
