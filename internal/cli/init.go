package cli

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdot/pkg/config"
	"github.com/arthur-debert/mdot/pkg/errors"
	"github.com/arthur-debert/mdot/pkg/paths"
)

// starterManifest is written by `mdot init` as a working example.
const starterManifest = `# mdot manifest. Assign your packages to the "packages" global.
#
# A package is a bare name, a dict keyed by the package name, or a
# dict with a "name" field. Links map a source file in the package to
# one or more target paths.

packages = [
    "fish",
    {
        "name": "git",
        "links": [
            {"source": "gitconfig", "targets": "~/.gitconfig"},
        ],
    },
]
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config root with a starter manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := paths.New()
			out := cmd.OutOrStdout()

			if err := os.MkdirAll(p.ConfigRoot(), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad,
					"cannot create config root %s", p.ConfigRoot())
			}

			wroteSettings, err := writeIfAbsent(p.SettingsPath(), settingsFileContent())
			if err != nil {
				return err
			}
			wroteManifest, err := writeIfAbsent(p.ManifestPath(""), []byte(starterManifest))
			if err != nil {
				return err
			}

			if !wroteSettings && !wroteManifest {
				fmt.Fprintf(out, "%s is already initialized\n", p.ConfigRoot())
				return nil
			}
			fmt.Fprintf(out, "Initialized %s\n", p.ConfigRoot())
			return nil
		},
	}
}

func settingsFileContent() []byte {
	data, err := toml.Marshal(config.Default())
	if err != nil {
		// Default() is a fixed struct; marshalling it cannot fail.
		panic(err)
	}
	return data
}

func writeIfAbsent(path string, content []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "cannot write %s", path)
	}
	return true, nil
}
