// Package naming encodes a backup's timestamp and generation into its file
// name and decodes them back. Names sort lexicographically in chronological
// order, so a naive string sort of a storage listing is already sorted by
// time.
//
// The timestamp is UTC at second resolution with colons replaced by dashes
// so the names are safe on any filesystem, followed by a generation tag:
//
//	backup-2018-06-25T21-05-07Z-hourly-dumpall.sql.gz
package naming

import (
	"fmt"
	"regexp"
	"time"

	"github.com/raoulx24/sql-archiver/internal/errs"
)

// Generation is the retention tier a backup was created for.
type Generation uint8

const (
	Hourly Generation = iota
	Daily
	Weekly
	Monthly
)

// Generations lists all tiers, finest first.
var Generations = [4]Generation{Hourly, Daily, Weekly, Monthly}

func (g Generation) String() string {
	switch g {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	}
	return fmt.Sprintf("generation(%d)", uint8(g))
}

// ParseGeneration is the inverse of Generation.String.
func ParseGeneration(s string) (Generation, error) {
	switch s {
	case "hourly":
		return Hourly, nil
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	}
	return 0, errs.Newf(errs.KindParse, "unknown generation %q", s)
}

const (
	prefix    = "backup-"
	suffix    = "-dumpall.sql.gz"
	tsLayout  = "2006-01-02T15-04-05"
	tsMarkUTC = "Z"
)

var namePattern = regexp.MustCompile(
	`^backup-(\d{4}-\d{2}-\d{2}T\d{2}-\d{2}-\d{2})Z-(hourly|daily|weekly|monthly)-dumpall\.sql\.gz$`)

// Encode produces the storage name for a backup taken at t under generation g.
// Sub-second precision is dropped; the scheduled cadence is at most one run
// per minute, so seconds are collision-proof in practice.
func Encode(t time.Time, g Generation) string {
	return prefix + t.UTC().Format(tsLayout) + tsMarkUTC + "-" + g.String() + suffix
}

// Decode is the exact inverse of Encode. Any name Encode did not produce
// yields a ParseError, so callers can tell a foreign file from a corrupt
// record.
func Decode(name string) (time.Time, Generation, error) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, 0, errs.Newf(errs.KindParse, "name %q does not match the backup naming scheme", name)
	}

	// The pattern only guarantees digit shape; reject impossible dates here.
	t, err := time.Parse(tsLayout, m[1])
	if err != nil {
		return time.Time{}, 0, errs.Wrapf(errs.KindParse, err, "name %q carries an invalid timestamp", name)
	}

	g, err := ParseGeneration(m[2])
	if err != nil {
		return time.Time{}, 0, err
	}
	return t.UTC(), g, nil
}
