// Test Type: Unit Test
// Description: Tests for manifest script evaluation

package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/loader"
	"github.com/arthur-debert/mdot/pkg/manifest"
	"github.com/arthur-debert/mdot/pkg/paths"
)

func newLoader() *loader.Loader {
	return loader.New(paths.New())
}

func TestLoadSourceList(t *testing.T) {
	src := `
packages = [
    "ly",
    "fish",
    {
        "name": "alacritty",
        "links": [
            {"source": "src", "targets": ["tar", "hello"]},
        ],
        "excludes": "as_string",
    },
]
`
	root, err := newLoader().LoadSource("packages.star", src)
	require.NoError(t, err)

	pkgs, err := manifest.NewNormalizer(&manifest.Recorder{}).NormalizeRoot(root)
	require.NoError(t, err)
	require.Len(t, pkgs, 3)
	assert.Equal(t, "ly", pkgs[0].Name)
	assert.Equal(t, "fish", pkgs[1].Name)
	assert.Equal(t, "alacritty", pkgs[2].Name)
	assert.Equal(t, []manifest.LinkObject{
		{Source: "src", Targets: []string{"tar", "hello"}},
	}, pkgs[2].Links)
	assert.Equal(t, []string{"as_string"}, pkgs[2].Excludes)
}

func TestLoadSourceDictWithNamedEntries(t *testing.T) {
	src := `
packages = {
    1: "fish",
    "hypr": {
        "package_name": {"arch": "hyprland"},
        "depends": ["fish"],
    },
}
`
	root, err := newLoader().LoadSource("packages.star", src)
	require.NoError(t, err)

	pkgs, err := manifest.NewNormalizer(&manifest.Recorder{}).NormalizeRoot(root)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "fish", pkgs[0].Name)
	assert.Equal(t, "hypr", pkgs[1].Name)
	assert.Equal(t, manifest.PackageNamePerOS, pkgs[1].PackageName.Kind)
	require.Len(t, pkgs[1].Depends, 1)
	assert.Equal(t, "fish", pkgs[1].Depends[0].Name)
}

func TestLoadSourceDeferredEnabled(t *testing.T) {
	src := `
def on_workstations():
    return True

packages = [
    {"name": "hypr", "enabled": on_workstations},
]
`
	root, err := newLoader().LoadSource("packages.star", src)
	require.NoError(t, err)

	pkgs, err := manifest.NewNormalizer(&manifest.Recorder{}).NormalizeRoot(root)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	require.True(t, pkgs[0].Enabled.Deferred())

	on, err := pkgs[0].Enabled.Resolve()
	require.NoError(t, err)
	assert.True(t, on)
}

func TestLoadSourcePredicateErrors(t *testing.T) {
	src := `
def broken():
    fail("boom")

def wrong_type():
    return "yes"

packages = [
    {"name": "a", "enabled": broken},
    {"name": "b", "enabled": wrong_type},
]
`
	root, err := newLoader().LoadSource("packages.star", src)
	require.NoError(t, err)

	pkgs, err := manifest.NewNormalizer(&manifest.Recorder{}).NormalizeRoot(root)
	require.NoError(t, err)

	_, err = pkgs[0].Enabled.Resolve()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptEval))

	_, err = pkgs[1].Enabled.Resolve()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptValue))
}

func TestLoadSourceMissingGlobal(t *testing.T) {
	_, err := newLoader().LoadSource("packages.star", `something_else = []`)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptEval))
	assert.Contains(t, err.Error(), "packages")
}

func TestLoadSourceSyntaxError(t *testing.T) {
	_, err := newLoader().LoadSource("packages.star", `packages = [`)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptEval))
}

func TestLoadSourceScalarGlobal(t *testing.T) {
	_, err := newLoader().LoadSource("packages.star", `packages = "fish"`)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptValue))
}

// setTestConfigHome points XDG_CONFIG_HOME at a temp dir for the test
// and restores the real environment afterwards.
func setTestConfigHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	xdg.Reload()
	return tmp
}

func TestLoadFromFile(t *testing.T) {
	tmp := setTestConfigHome(t)

	root := filepath.Join(tmp, "mdot")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "packages.star"),
		[]byte(`packages = ["fish"]`), 0644))

	tblRoot, err := newLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, tblRoot.Len())
}

func TestLoadMissingFile(t *testing.T) {
	setTestConfigHome(t)

	_, err := newLoader().Load("")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}
