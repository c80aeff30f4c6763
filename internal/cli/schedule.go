package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/config"
	"github.com/raoulx24/sql-archiver/internal/errs"
	"github.com/raoulx24/sql-archiver/internal/scheduler"
)

func newScheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run as a daemon, backing up on the configured cron cadence",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Schedule.Cron == "" {
				return errs.Newf(errs.KindConfig, "schedule.cron is required for schedule mode")
			}

			runner, err := a.newRunner(cmd.Context())
			if err != nil {
				return err
			}

			sched, err := scheduler.New(a.cfg.Schedule.Cron, runner.Run, a.log)
			if err != nil {
				return err
			}

			if a.cfg.Schedule.Reload {
				go func() {
					err := config.Watch(cmd.Context(), a.cfgPath, a.log, func(cfg *config.Config) {
						runner.UpdateConfig(cfg.Retention, cfg.Hooks)
					})
					if err != nil {
						a.log.Error("config watch stopped", zap.Error(err))
					}
				}()
			}

			return sched.Start(cmd.Context())
		},
	}
}
