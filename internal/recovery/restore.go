package recovery

import (
	"context"

	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/dump"
	"github.com/raoulx24/sql-archiver/internal/inventory"
	"github.com/raoulx24/sql-archiver/internal/storage"
)

// Restore streams a resolved backup from storage into the restore tool.
type Restore struct {
	store    storage.Store
	restorer dump.Restorer
	log      *zap.Logger
}

func NewRestore(store storage.Store, restorer dump.Restorer, log *zap.Logger) *Restore {
	return &Restore{store: store, restorer: restorer, log: log}
}

// Run resolves req against the live inventory and replays the chosen
// backup. database narrows the restore to a single database when non-empty.
// The inventory is read-only here; a restore never deletes or prunes.
func (r *Restore) Run(ctx context.Context, req Request, database string) error {
	inv, err := inventory.Build(ctx, r.store, r.log)
	if err != nil {
		return err
	}

	rec, err := Resolve(inv, req)
	if err != nil {
		return err
	}

	r.log.Info("recovering from backup",
		zap.String("name", rec.Name),
		zap.Time("taken", rec.Timestamp),
		zap.String("size", inventory.PrettySize(rec.Size)))

	body, err := r.store.Open(ctx, rec.Name)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := r.restorer.Restore(ctx, body, database); err != nil {
		return err
	}

	r.log.Info("recovery complete", zap.String("name", rec.Name))
	return nil
}
