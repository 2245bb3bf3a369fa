package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvOverrides are environment-variable overrides layered on top of the
// YAML preferences, using the same env-first binding the teacher pulls in
// via caarlos0/env for its own process configuration.
type EnvOverrides struct {
	Debug     bool   `env:"S3TUI_DEBUG"`
	ConfigDir string `env:"S3TUI_CONFIG_DIR"`
	PageSize  int    `env:"S3TUI_PAGE_SIZE"`
}

// LoadEnvOverrides parses S3TUI_* environment variables. A parse error here
// (e.g. S3TUI_PAGE_SIZE=not-a-number) is a startup error, not silently
// ignored.
func LoadEnvOverrides() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return o, err
	}
	return o, nil
}

// Apply layers non-zero environment overrides onto prefs, returning the
// merged result. Environment wins over the YAML file, matching the usual
// config-layering order (defaults < file < env < flags).
func (o EnvOverrides) Apply(prefs Preferences) Preferences {
	if o.PageSize != 0 {
		prefs.PageSize = o.PageSize
	}
	return prefs
}
