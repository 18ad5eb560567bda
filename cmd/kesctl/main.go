// Command kesctl is the operator tool for the prosecution case service. It
// prints the law and workflow reference tables, exports the OpenAPI document,
// and mints development tokens for hs256 deployments.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "kesctl",
		Short:        "Operator tool for PERKESO prosecution case management",
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(
		newLawsCommand(),
		newTransitionsCommand(),
		newOpenAPICommand(),
		newTokenCommand(),
	)
	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
