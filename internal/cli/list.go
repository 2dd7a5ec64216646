package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/mdot/pkg/ui"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Normalize the manifest and print the package sequence",
		Long: `List evaluates the manifest script, validates it and prints the
resulting packages in declaration order. Warnings are streamed to the
log; the first fatal issue aborts with a non-zero exit status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}
			pkgs, err := normalizePackages(nil)
			if err != nil {
				return err
			}
			return ui.RenderPackages(cmd.OutOrStdout(), pkgs, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "term", "Output format: term, json or yaml")
	return cmd
}
