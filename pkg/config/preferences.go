package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preferences are optional operator conveniences, layered under the
// environment overrides in env.go. Unlike the credentials file this is not
// session state written by the TUI — it is read-only operator
// configuration, consistent with spec.md §6's "no persisted state" (the
// tool itself never writes this file).
type Preferences struct {
	DefaultRemote string `yaml:"default_remote"`
	PageSize      int    `yaml:"page_size"`
	ConfirmDelete bool   `yaml:"confirm_delete"`
}

// DefaultPreferences matches spec.md's behavior exactly when no
// preferences file exists: no default remote, transport-chosen page size,
// and a confirmation dialog before every delete.
func DefaultPreferences() Preferences {
	return Preferences{ConfirmDelete: true}
}

func preferencesPath(configDir string) (string, error) {
	if configDir != "" {
		return filepath.Join(configDir, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "s3tui", "config.yaml"), nil
}

// LoadPreferences reads the optional preferences file. A missing file is
// not an error — defaults apply. A present-but-malformed file is, since the
// operator clearly intended to configure something and got it wrong.
func LoadPreferences(configDir string) (Preferences, error) {
	prefs := DefaultPreferences()

	path, err := preferencesPath(configDir)
	if err != nil {
		return prefs, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return prefs, nil
}
