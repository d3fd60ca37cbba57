package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDir(dir)
	t.Cleanup(func() { SetConfigDir("") })
	return dir
}

func TestLoadSettingsDefaults(t *testing.T) {
	useTempConfigDir(t)

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.True(t, s.Matching.Wildcards)
	assert.False(t, s.Matching.StrictHostBoundary)
	assert.Empty(t, s.Matching.Patterns)
	assert.Equal(t, "env", s.Referrer.Source)
}

func TestSettingsRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	s := DefaultSettings()
	s.Matching.Patterns = []string{"example.com", "*.example.com/profile/*"}
	s.Matching.StrictHostBoundary = true
	s.Referrer.Source = "file"
	s.Referrer.PayloadFile = "/tmp/payload.json"
	require.NoError(t, SaveSettings(s))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, s.Matching.Patterns, loaded.Matching.Patterns)
	assert.True(t, loaded.Matching.StrictHostBoundary)
	assert.Equal(t, "file", loaded.Referrer.Source)
}

func TestLoadSettingsMalformed(t *testing.T) {
	dir := useTempConfigDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFile), []byte("{not json"), 0o644))
	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestLoadSettingsUnknownKeysIgnored(t *testing.T) {
	dir := useTempConfigDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFile),
		[]byte(`{"matching": {"patterns": ["example.com"]}, "legacy_section": {"x": 1}}`), 0o644))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, s.Matching.Patterns)
}
