package config

import (
	"os"
	"path/filepath"
)

// SettingsFileName is the name looked up in the working directory and next to the executable.
const SettingsFileName = "settings.yaml"

// SettingsEnvVar overrides settings file discovery when set.
const SettingsEnvVar = "FILE_ANALYZER_CONFIG"

// FindSettingsFile returns the settings file path to load.
// Priority order:
//  1. explicit path (the --config flag)
//  2. FILE_ANALYZER_CONFIG environment variable
//  3. settings.yaml in the current working directory (if it exists)
//  4. settings.yaml next to the running executable
//
// The returned path is not guaranteed to exist; LoadConfig reports that.
func FindSettingsFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if env := os.Getenv(SettingsEnvVar); env != "" {
		return env
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, SettingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return SettingsFileName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(exe), SettingsFileName)
}
