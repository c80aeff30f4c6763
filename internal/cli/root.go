// Package cli wires the subcommands: backup, recover, list, prune,
// schedule, version.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/backup"
	"github.com/raoulx24/sql-archiver/internal/config"
	"github.com/raoulx24/sql-archiver/internal/dump"
	"github.com/raoulx24/sql-archiver/internal/logging"
	"github.com/raoulx24/sql-archiver/internal/retention"
	"github.com/raoulx24/sql-archiver/internal/storage"
)

// app carries the config and logger built once per invocation and handed
// by reference into each component.
type app struct {
	cfgPath string
	cfg     *config.Config
	log     *zap.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "sql-archiver",
		Short:         "Scheduled PostgreSQL/MySQL backups with tiered retention",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "config.yaml", "path to the config file")

	root.AddCommand(
		newBackupCmd(a),
		newRecoverCmd(a),
		newListCmd(a),
		newPruneCmd(a),
		newScheduleCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI under ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) newStore(ctx context.Context) (storage.Store, error) {
	return storage.New(ctx, a.cfg.Storage)
}

func (a *app) newEngine() *retention.Engine {
	return retention.New(a.cfg.Retention, a.log)
}

func (a *app) newRunner(ctx context.Context) (*backup.Runner, error) {
	store, err := a.newStore(ctx)
	if err != nil {
		return nil, err
	}
	dumper, err := dump.NewDumper(a.cfg.Database)
	if err != nil {
		return nil, err
	}
	return backup.New(dumper, store, a.newEngine(), a.cfg.Hooks, a.log), nil
}
