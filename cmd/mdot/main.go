package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/mdot/internal/cli"
	"github.com/arthur-debert/mdot/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// One diagnostic line, then a non-zero exit. Warnings were
		// already streamed while the command ran.
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
