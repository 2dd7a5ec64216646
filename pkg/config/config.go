// Package config loads mdot's tool-level settings. This is not the
// manifest itself: settings control where the manifest lives and how
// output is rendered. Precedence is defaults, then the mdot.toml file
// under the config root, then MDOT_-prefixed environment variables.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/paths"
)

// EnvPrefix is stripped from environment variables before they are
// merged over file settings (MDOT_MANIFEST -> manifest).
const EnvPrefix = "MDOT_"

// Settings holds the tool-level configuration.
type Settings struct {
	// Manifest is the manifest script location; relative paths are
	// anchored at the config root.
	Manifest string `koanf:"manifest" toml:"manifest"`

	// Color controls terminal styling: auto, always or never.
	Color string `koanf:"color" toml:"color"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Manifest: paths.ManifestFile,
		Color:    "auto",
	}
}

// Load resolves the effective settings for the given path set.
// A missing settings file is not an error; a malformed one is.
func Load(p *paths.Paths) (Settings, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"manifest": defaults.Manifest,
		"color":    defaults.Color,
	}, "."), nil); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	settingsPath := p.SettingsPath()
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
			return Settings{}, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load settings from %s", settingsPath)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return Settings{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal settings")
	}
	return settings, nil
}
