// Package backup drives one backup cycle: dump, store under the scheme
// name, then prune what retention no longer wants.
package backup

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/config"
	"github.com/raoulx24/sql-archiver/internal/dump"
	"github.com/raoulx24/sql-archiver/internal/errs"
	"github.com/raoulx24/sql-archiver/internal/inventory"
	"github.com/raoulx24/sql-archiver/internal/naming"
	"github.com/raoulx24/sql-archiver/internal/retention"
	"github.com/raoulx24/sql-archiver/internal/storage"
)

type Runner struct {
	mu     sync.RWMutex
	dumper dump.Dumper
	store  storage.Store
	engine *retention.Engine
	hooks  config.HooksConfig
	log    *zap.Logger
}

func New(dumper dump.Dumper, store storage.Store, engine *retention.Engine, hooks config.HooksConfig, log *zap.Logger) *Runner {
	return &Runner{
		dumper: dumper,
		store:  store,
		engine: engine,
		hooks:  hooks,
		log:    log,
	}
}

// UpdateConfig hot-reloads the retention policy and hooks.
func (r *Runner) UpdateConfig(policy config.RetentionConfig, hooks config.HooksConfig) {
	r.engine.UpdatePolicy(policy)
	r.mu.Lock()
	r.hooks = hooks
	r.mu.Unlock()
}

// Run performs one full backup cycle at the given instant. A failed dump
// writes nothing and prunes nothing: existing backups are never touched by
// a run that produced no new one.
func (r *Runner) Run(ctx context.Context, now time.Time) error {
	r.mu.RLock()
	hooks := r.hooks
	r.mu.RUnlock()

	if err := r.runHooks(ctx, hooks.PreBackup, "pre-backup"); err != nil {
		return err
	}
	defer func() {
		if err := r.runHooks(ctx, hooks.PostBackup, "post-backup"); err != nil {
			r.log.Warn("post-backup hook failed", zap.Error(err))
		}
	}()

	name := naming.Encode(now, r.engine.Primary())
	r.log.Info("starting backup", zap.String("name", name))

	// The dump lands in a local spool file first so a tool failure can
	// never leave a half-written object in storage.
	spool, err := os.CreateTemp("", "sql-archiver-*.sql.gz")
	if err != nil {
		return errs.Wrapf(errs.KindExec, err, "creating spool file")
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	start := time.Now()
	if err := r.dumper.Dump(ctx, spool); err != nil {
		return err
	}
	r.log.Info("dump finished", zap.Duration("elapsed", time.Since(start)))

	if _, err := spool.Seek(0, 0); err != nil {
		return errs.Wrapf(errs.KindExec, err, "rewinding spool file")
	}

	size, err := r.store.Put(ctx, name, spool)
	if err != nil {
		return err
	}
	r.log.Info("backup stored",
		zap.String("name", name),
		zap.String("size", inventory.PrettySize(size)))

	// Pruning trouble must not fail a run that just produced a good backup.
	if err := r.Prune(ctx, now); err != nil {
		r.log.Warn("pruning failed", zap.Error(err))
	}
	return nil
}

// Prune rebuilds the inventory and deletes everything the retention engine
// no longer wants.
func (r *Runner) Prune(ctx context.Context, now time.Time) error {
	return Prune(ctx, r.store, r.engine, now, r.log)
}

// Prune is also a standalone operation for the prune subcommand. Per-name
// delete failures are logged and skipped; the next run gets another chance
// at them.
func Prune(ctx context.Context, store storage.Store, engine *retention.Engine, now time.Time, log *zap.Logger) error {
	inv, err := inventory.Build(ctx, store, log)
	if err != nil {
		return err
	}

	doomed := engine.Plan(inv, now)
	if len(doomed) == 0 {
		log.Info("no expired backups to delete")
		return nil
	}

	for _, name := range doomed {
		if err := store.Delete(ctx, name); err != nil {
			log.Warn("failed to delete expired backup",
				zap.String("name", name), zap.Error(err))
			continue
		}
		log.Info("deleted expired backup", zap.String("name", name))
	}
	return nil
}

// runHooks executes shell commands around the backup run. The mount/rsync
// glue the container images used to do lives here now.
func (r *Runner) runHooks(ctx context.Context, commands []string, kind string) error {
	for _, command := range commands {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.log.Info("executing hook", zap.String("kind", kind), zap.String("command", command))
		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return errs.Wrapf(errs.KindExec, err, "%s hook %q failed", kind, command)
		}
	}
	return nil
}
