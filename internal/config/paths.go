package config

import (
	"os"
	"path/filepath"
	"runtime"
)

var configDirOverride string

// SetConfigDir overrides the platform config directory, mainly for the
// --config-dir flag and tests.
func SetConfigDir(dir string) {
	configDirOverride = dir
}

// GetConfigDir returns the linktrace configuration directory for the
// current platform.
func GetConfigDir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, "linktrace")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "linktrace")
	default:
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, _ := os.UserHomeDir()
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, "linktrace")
	}
}

// GetStateDir returns the directory for the referrer cache database.
func GetStateDir() string {
	return filepath.Join(GetConfigDir(), "state")
}

// GetLogsDir returns the directory for debug logs.
func GetLogsDir() string {
	return filepath.Join(GetConfigDir(), "logs")
}

// EnsureDirs creates all required directories.
func EnsureDirs() error {
	dirs := []string{GetConfigDir(), GetStateDir(), GetLogsDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
