// Package paths provides centralized path handling for mdot.
// It implements XDG Base Directory specification compliance and
// resolves the per-platform configuration root, honoring the
// overridable application-name identifier.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvAppName overrides the application-name segment of every
	// resolved directory. Useful for test fixtures and parallel
	// installations.
	EnvAppName = "MDOT_APPNAME"
)

// Default names
// These constants define mdot's on-disk naming and are not
// user-configurable; the manifest filename can be changed through the
// settings file instead.
const (
	// AppName is the default application-name identifier
	AppName = "mdot"

	// ManifestFile is the default manifest script filename
	ManifestFile = "packages.star"

	// SettingsFile is the name of the tool settings file
	SettingsFile = "mdot.toml"

	// LogFileName is the name of the log file
	LogFileName = "mdot.log"
)

// Paths resolves mdot's on-disk locations.
type Paths struct {
	appName    string
	configRoot string
	stateDir   string
}

// New resolves the path set for the current environment.
func New() *Paths {
	app := os.Getenv(EnvAppName)
	if app == "" {
		app = AppName
	}
	return &Paths{
		appName:    app,
		configRoot: filepath.Join(xdg.ConfigHome, app),
		stateDir:   filepath.Join(xdg.StateHome, app),
	}
}

// AppName returns the effective application-name identifier.
func (p *Paths) AppName() string { return p.appName }

// ConfigRoot returns the per-platform configuration root directory.
func (p *Paths) ConfigRoot() string { return p.configRoot }

// StateDir returns the directory for logs and other mutable state.
func (p *Paths) StateDir() string { return p.stateDir }

// ManifestPath resolves the manifest script location. A relative
// filename is anchored at the config root; an absolute one is used as
// given. An empty filename falls back to the default.
func (p *Paths) ManifestPath(filename string) string {
	if filename == "" {
		filename = ManifestFile
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.configRoot, filename)
}

// SettingsPath returns the location of the tool settings file.
func (p *Paths) SettingsPath() string {
	return filepath.Join(p.configRoot, SettingsFile)
}

// LogFilePath returns the location of the log file.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}
