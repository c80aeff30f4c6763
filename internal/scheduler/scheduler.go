// Package scheduler runs backup cycles on a cron cadence. Ticks go through
// a single-slot mailbox: at most one run is in flight and at most one is
// pending, so a run that overshoots its interval coalesces the ticks it
// missed instead of queueing them.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/errs"
	"github.com/raoulx24/sql-archiver/internal/mailbox"
)

// Job is one requested backup cycle.
type Job struct {
	Time time.Time
}

type Scheduler struct {
	cron *cron.Cron
	mb   *mailbox.Mailbox[Job]
	run  func(ctx context.Context, now time.Time) error
	log  *zap.Logger
}

// New validates the cron expression (standard 5-field) and prepares the
// schedule. Nothing fires until Start.
func New(spec string, run func(ctx context.Context, now time.Time) error, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		mb:   mailbox.New[Job](),
		run:  run,
		log:  log,
	}

	if _, err := s.cron.AddFunc(spec, func() {
		s.mb.Put(Job{Time: time.Now()})
	}); err != nil {
		return nil, errs.Wrapf(errs.KindConfig, err, "invalid cron expression %q", spec)
	}
	return s, nil
}

// Start blocks until ctx is done, running one backup cycle per mailbox job.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()
	defer s.cron.Stop()
	s.log.Info("scheduler started")

	for {
		job, ok := s.mb.Take(ctx)
		if !ok {
			s.log.Info("scheduler stopped")
			return nil
		}
		if err := s.run(ctx, job.Time); err != nil {
			// The daemon outlives individual failures; the next tick
			// gets a fresh attempt.
			s.log.Error("scheduled backup failed", zap.Error(err))
		}
	}
}
