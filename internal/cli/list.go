package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raoulx24/sql-archiver/internal/inventory"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known backups, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.newStore(cmd.Context())
			if err != nil {
				return err
			}

			inv, err := inventory.Build(cmd.Context(), store, a.log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(inv) == 0 {
				fmt.Fprintln(out, "No backups found")
				return nil
			}

			fmt.Fprintf(out, "Known backups, most recent first (%d):\n", len(inv))
			for _, rec := range inv {
				fmt.Fprintf(out, "  %s  (%s)\n", rec.Name, inventory.PrettySize(rec.Size))
			}
			fmt.Fprintf(out, "All backups occupy %s\n", inventory.PrettySize(inv.TotalSize()))
			return nil
		},
	}
}
