// Package preset persists locked-field sets as line-oriented preset files
// and auto-detects which preset fits a freshly loaded record set.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"reclens/internal/config"
	"reclens/internal/field"
)

// Store resolves, reads, and writes named presets against the directories
// it was constructed with.
type Store struct {
	paths config.Paths
}

func NewStore(paths config.Paths) Store {
	return Store{paths: paths}
}

// Resolve maps a preset name to a file path. Absolute paths pass through,
// names with a separator resolve against the working directory, and bare
// names are searched in the user preset dir, the local preset dir, and the
// working directory, defaulting to the user preset dir when none exist.
func (s Store) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	if strings.ContainsAny(name, `/\`) {
		return filepath.Join(s.paths.WorkDir, name)
	}

	candidates := []string{
		filepath.Join(s.paths.UserPresetDir, name+config.PresetExt),
		filepath.Join(s.paths.LocalPresetDir, name+config.PresetExt),
		filepath.Join(s.paths.WorkDir, name+config.PresetExt),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}

// Exists reports whether a preset file is already present under name.
func (s Store) Exists(name string) bool {
	_, err := os.Stat(s.Resolve(name))
	return err == nil
}

// Save writes the serialized registry under name in the user preset dir.
func (s Store) Save(name string, reg *field.Registry) error {
	if err := os.MkdirAll(s.paths.UserPresetDir, 0o755); err != nil {
		return fmt.Errorf("failed to create preset dir: %w", err)
	}

	path := filepath.Join(s.paths.UserPresetDir, name+config.PresetExt)
	if err := os.WriteFile(path, []byte(reg.Serialize()), 0o644); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// List names every preset under the user and local preset directories,
// deduplicated (user dir wins) and sorted. Missing directories are skipped.
func (s Store) List() []string {
	seen := make(map[string]bool)
	var names []string
	for _, dir := range []string{s.paths.UserPresetDir, s.paths.LocalPresetDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), config.PresetExt) {
				continue
			}
			name := strings.TrimSuffix(e.Name(), config.PresetExt)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Load reads and parses the named preset. The parse is all-or-nothing: on
// any error the caller's registry is left untouched.
func (s Store) Load(name string) ([]field.LockedField, error) {
	path := s.Resolve(name)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	fields, err := field.ParseFields(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return fields, nil
}
