// Package recovery resolves which backup to restore and replays it.
package recovery

import (
	"time"

	"github.com/raoulx24/sql-archiver/internal/errs"
	"github.com/raoulx24/sql-archiver/internal/inventory"
)

type Mode int

const (
	ModeLatest Mode = iota
	ModeByName
	ModeByDate
)

// Request selects one backup out of the inventory.
type Request struct {
	Mode   Mode
	Name   string
	Date   time.Time
	Window time.Duration
}

// Latest requests the most recent backup.
func Latest() Request {
	return Request{Mode: ModeLatest}
}

// ByName requests an exact name.
func ByName(name string) Request {
	return Request{Mode: ModeByName, Name: name}
}

// ByDate requests the backup closest to date within window.
func ByDate(date time.Time, window time.Duration) Request {
	return Request{Mode: ModeByDate, Date: date, Window: window}
}

// Resolve picks the single record the request identifies. Every miss is a
// not-found error; the inventory is never modified.
func Resolve(inv inventory.Inventory, req Request) (inventory.Record, error) {
	switch req.Mode {
	case ModeLatest:
		rec, ok := inv.Latest()
		if !ok {
			return inventory.Record{}, errs.Newf(errs.KindNotFound, "no backups available")
		}
		return rec, nil

	case ModeByName:
		rec, ok := inv.ByName(req.Name)
		if !ok {
			return inventory.Record{}, errs.Newf(errs.KindNotFound, "no backup named %s", req.Name)
		}
		return rec, nil

	case ModeByDate:
		return resolveByDate(inv, req.Date, req.Window)
	}
	return inventory.Record{}, errs.Newf(errs.KindNotFound, "unknown recovery mode %d", req.Mode)
}

// resolveByDate picks the record closest to date among those within window.
// Equal distances resolve toward the earlier timestamp: prefer the backup
// that existed as of the requested date over one taken after it.
func resolveByDate(inv inventory.Inventory, date time.Time, window time.Duration) (inventory.Record, error) {
	var best inventory.Record
	bestDist := time.Duration(-1)

	for _, rec := range inv {
		dist := date.Sub(rec.Timestamp)
		if dist < 0 {
			dist = -dist
		}
		if dist > window {
			continue
		}
		if bestDist < 0 || dist < bestDist ||
			(dist == bestDist && rec.Timestamp.Before(best.Timestamp)) {
			best = rec
			bestDist = dist
		}
	}

	if bestDist < 0 {
		return inventory.Record{}, errs.Newf(errs.KindNotFound,
			"no backup within %s of %s", window, date.UTC().Format(time.RFC3339))
	}
	return best, nil
}
