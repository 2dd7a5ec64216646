// Package cli wires up mdot's cobra commands. Commands stay thin: the
// manifest work happens in pkg/loader and pkg/manifest; this layer
// resolves settings, renders output and turns a fatal diagnostic into
// a non-zero exit status.
package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdot/internal/version"
	"github.com/arthur-debert/mdot/pkg/config"
	"github.com/arthur-debert/mdot/pkg/loader"
	"github.com/arthur-debert/mdot/pkg/logging"
	"github.com/arthur-debert/mdot/pkg/manifest"
	"github.com/arthur-debert/mdot/pkg/paths"
	"github.com/arthur-debert/mdot/pkg/ui"
)

var verbosity int

// NewRootCmd builds the mdot command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mdot",
		Short: "A scriptable dotfiles and package manifest manager",
		Long: `mdot manages your dotfiles and packages from a single scripted
manifest. The manifest is a Starlark file declaring packages with their
file links, exclusions and templates; mdot validates it into a typed
package list that deployment runs on.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	applyUsageFormatting(rootCmd)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mdot version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

// normalizePackages runs the full pipeline: settings, manifest
// evaluation, normalization. Warnings go to the given reporter (nil
// streams them to the log).
func normalizePackages(reporter manifest.Reporter) ([]manifest.Package, error) {
	p := paths.New()
	settings, err := config.Load(p)
	if err != nil {
		return nil, err
	}
	applyColor(settings)

	root, err := loader.New(p).Load(settings.Manifest)
	if err != nil {
		return nil, err
	}
	return manifest.NewNormalizer(reporter).NormalizeRoot(root)
}

// applyColor resolves the color setting against the terminal.
func applyColor(settings config.Settings) {
	switch settings.Color {
	case "always":
		ui.SetColorEnabled(true)
	case "never":
		ui.SetColorEnabled(false)
	default:
		ui.SetColorEnabled(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	}
}
