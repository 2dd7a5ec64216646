// Test Type: Unit Test
// Description: Tests for path resolution and the app-name override

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/mdot/pkg/paths"
)

func setTestConfigHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	xdg.Reload()
	return tmp
}

func TestDefaultAppName(t *testing.T) {
	tmp := setTestConfigHome(t)
	t.Setenv(paths.EnvAppName, "")

	p := paths.New()
	assert.Equal(t, "mdot", p.AppName())
	assert.Equal(t, filepath.Join(tmp, "mdot"), p.ConfigRoot())
}

func TestAppNameOverride(t *testing.T) {
	tmp := setTestConfigHome(t)
	t.Setenv(paths.EnvAppName, "mdot-test")

	p := paths.New()
	assert.Equal(t, "mdot-test", p.AppName())
	assert.Equal(t, filepath.Join(tmp, "mdot-test"), p.ConfigRoot())
	assert.Equal(t, filepath.Join(tmp, "mdot-test", "mdot.toml"), p.SettingsPath())
}

func TestManifestPath(t *testing.T) {
	tmp := setTestConfigHome(t)
	t.Setenv(paths.EnvAppName, "")
	p := paths.New()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "empty uses the default filename",
			filename: "",
			want:     filepath.Join(tmp, "mdot", "packages.star"),
		},
		{
			name:     "relative is anchored at the config root",
			filename: "other.star",
			want:     filepath.Join(tmp, "mdot", "other.star"),
		},
		{
			name:     "absolute is used as given",
			filename: "/etc/mdot/packages.star",
			want:     "/etc/mdot/packages.star",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ManifestPath(tt.filename))
		})
	}
}

func TestLogFilePath(t *testing.T) {
	tmpState := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", tmpState)
	t.Setenv(paths.EnvAppName, "")
	xdg.Reload()

	p := paths.New()
	assert.Equal(t, filepath.Join(tmpState, "mdot", "mdot.log"), p.LogFilePath())
}
