package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdot/pkg/manifest"
	"github.com/arthur-debert/mdot/pkg/ui"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the manifest without printing packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			recorder := &manifest.Recorder{}

			pkgs, err := normalizePackages(recorder)

			// Warnings precede the fatal diagnostic, preserving the
			// traversal order they were emitted in.
			for _, diag := range recorder.Diagnostics() {
				fmt.Fprintf(out, "%s %s\n", ui.WarningStyle.Render("warning:"), diag.Message)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%d packages, %d warnings\n",
				len(pkgs), len(recorder.Diagnostics()))
			return nil
		},
	}
}
