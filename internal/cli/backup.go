package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/backup"
)

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Run one backup cycle: dump, store, prune",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.newRunner(cmd.Context())
			if err != nil {
				return err
			}

			err = runner.Run(cmd.Context(), time.Now())

			// Debug aid: keep the container alive so an operator can get in
			// and look at the volume, success or failure alike.
			if sleep := a.cfg.Debug.PreExitSleep; sleep > 0 {
				a.log.Info("sleeping before exit", zap.Duration("duration", sleep))
				select {
				case <-time.After(sleep):
				case <-cmd.Context().Done():
				}
			}
			return err
		},
	}
}

func newPruneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Apply retention to the existing backups without taking a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.newStore(cmd.Context())
			if err != nil {
				return err
			}
			return backup.Prune(cmd.Context(), store, a.newEngine(), time.Now(), a.log)
		},
	}
}
