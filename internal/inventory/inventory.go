// Package inventory rebuilds the live view of all backups from a storage
// listing. The listing is the source of truth; there is no persisted index.
package inventory

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/naming"
	"github.com/raoulx24/sql-archiver/internal/storage"
)

// Record is one backup. Immutable once created; identity is the name.
type Record struct {
	Name       string
	Timestamp  time.Time
	Generation naming.Generation
	Size       int64
}

// Inventory is sorted newest first. Names are unique by construction: each
// storage entry yields at most one record and storage names are unique.
type Inventory []Record

// Build lists the store and decodes every entry. Foreign files (anything the
// naming scheme rejects) are skipped, not errored; backups share the volume
// with whatever else the environment drops there.
func Build(ctx context.Context, store storage.Store, log *zap.Logger) (Inventory, error) {
	objects, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	inv := make(Inventory, 0, len(objects))
	for _, obj := range objects {
		ts, gen, err := naming.Decode(obj.Name)
		if err != nil {
			log.Debug("skipping foreign file", zap.String("name", obj.Name))
			continue
		}
		inv = append(inv, Record{
			Name:       obj.Name,
			Timestamp:  ts,
			Generation: gen,
			Size:       obj.Size,
		})
	}

	inv.sort()
	return inv, nil
}

// sort orders newest first; identical timestamps put the lexicographically
// greater name first, which under the naming scheme means the later creation.
func (inv Inventory) sort() {
	sort.Slice(inv, func(i, j int) bool {
		if !inv[i].Timestamp.Equal(inv[j].Timestamp) {
			return inv[i].Timestamp.After(inv[j].Timestamp)
		}
		return inv[i].Name > inv[j].Name
	})
}

// Latest returns the most recent record.
func (inv Inventory) Latest() (Record, bool) {
	if len(inv) == 0 {
		return Record{}, false
	}
	return inv[0], true
}

// ByName returns the record with the given name.
func (inv Inventory) ByName(name string) (Record, bool) {
	for _, rec := range inv {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// TotalSize sums the sizes of all records.
func (inv Inventory) TotalSize() int64 {
	var total int64
	for _, rec := range inv {
		total += rec.Size
	}
	return total
}
