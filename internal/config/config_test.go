package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")

	s := Settings{WrapMode: true, FrequencyMode: true}
	require.NoError(t, s.Save(path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	loaded, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, loaded)
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("wrap_mode = {"), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}
