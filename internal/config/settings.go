package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all user-configurable settings organized by category.
type Settings struct {
	Matching MatchingSettings `json:"matching"`
	Referrer ReferrerSettings `json:"referrer"`
	General  GeneralSettings  `json:"general"`
}

// MatchingSettings configures the deep-link pattern matcher.
type MatchingSettings struct {
	// Patterns is the ordered allow-pattern list clipboard text is
	// resolved against.
	Patterns []string `json:"patterns"`

	Wildcards          bool `json:"wildcards"`
	StrictHostBoundary bool `json:"strict_host_boundary"`
	SegmentBoundary    bool `json:"segment_boundary"`
}

// ReferrerSettings configures the install-referrer channel.
type ReferrerSettings struct {
	// Source selects the referrer client: "file", "env" or "none".
	Source       string        `json:"source"`
	PayloadFile  string        `json:"payload_file"`
	FetchTimeout time.Duration `json:"fetch_timeout"`
	PersistCache bool          `json:"persist_cache"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	ClipboardWatch    bool `json:"clipboard_watch"`
	SkipUpdateCheck   bool `json:"skip_update_check"`
	Theme             int  `json:"theme"`
	LogRetentionCount int  `json:"log_retention_count"`
}

const (
	ThemeAdaptive = 0
	ThemeLight    = 1
	ThemeDark     = 2
)

const settingsFile = "settings.json"

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Matching: MatchingSettings{
			Patterns:  []string{},
			Wildcards: true,
		},
		Referrer: ReferrerSettings{
			Source:       "env",
			FetchTimeout: 10 * time.Second,
			PersistCache: true,
		},
		General: GeneralSettings{
			ClipboardWatch:    false,
			Theme:             ThemeAdaptive,
			LogRetentionCount: 5,
		},
	}
}

// LoadSettings reads settings from the config directory. A missing file
// yields defaults; a malformed file is an error.
func LoadSettings() (*Settings, error) {
	path := filepath.Join(GetConfigDir(), settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSettings writes settings to the config directory.
func SaveSettings(s *Settings) error {
	if err := EnsureDirs(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(GetConfigDir(), settingsFile), data, 0o644)
}
