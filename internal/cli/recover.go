package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/sql-archiver/internal/dump"
	"github.com/raoulx24/sql-archiver/internal/errs"
	"github.com/raoulx24/sql-archiver/internal/recovery"
)

func newRecoverCmd(a *app) *cobra.Command {
	var (
		name     string
		date     string
		window   time.Duration
		database string
	)

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Restore a backup (the latest by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(name, date, window)
			if err != nil {
				return err
			}

			store, err := a.newStore(cmd.Context())
			if err != nil {
				return err
			}
			restorer, err := dump.NewRestorer(a.cfg.Database)
			if err != nil {
				return err
			}

			return recovery.NewRestore(store, restorer, a.log).Run(cmd.Context(), req, database)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "restore the backup with this exact name")
	cmd.Flags().StringVar(&date, "date", "", "restore the backup closest to this RFC 3339 instant")
	cmd.Flags().DurationVar(&window, "window", 24*time.Hour, "tolerance window around --date")
	cmd.Flags().StringVar(&database, "database", "", "restore only this database instead of the whole server")
	cmd.MarkFlagsMutuallyExclusive("name", "date")
	return cmd
}

func buildRequest(name, date string, window time.Duration) (recovery.Request, error) {
	switch {
	case name != "":
		return recovery.ByName(name), nil
	case date != "":
		d, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return recovery.Request{}, errs.Wrapf(errs.KindConfig, err, "invalid --date %q", date)
		}
		return recovery.ByDate(d, window), nil
	}
	return recovery.Latest(), nil
}
