package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X github.com/raoulx24/sql-archiver/internal/cli.version=..."
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sql-archiver version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
