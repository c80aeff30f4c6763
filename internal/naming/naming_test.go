package naming

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/sql-archiver/internal/errs"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2018, 6, 25, 21, 5, 7, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, ts := range times {
		for _, g := range Generations {
			name := Encode(ts, g)

			got, gen, err := Decode(name)
			require.NoError(t, err, name)
			assert.True(t, got.Equal(ts), "timestamp must round-trip for %s", name)
			assert.Equal(t, g, gen)
		}
	}
}

func TestEncodeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	local := time.Date(2023, 3, 10, 1, 30, 0, 0, loc)

	name := Encode(local, Hourly)
	ts, _, err := Decode(name)
	require.NoError(t, err)
	assert.True(t, ts.Equal(local))
	assert.Equal(t, "backup-2023-03-10T00-30-00Z-hourly-dumpall.sql.gz", name)
}

func TestDecodeRejectsForeignNames(t *testing.T) {
	bad := []string{
		"",
		"dumpall.sql.gz",
		"backup-2023-01-02-dumpall.sql.gz",                         // no time portion
		"backup-2023-01-02T03-04-05-hourly-dumpall.sql.gz",        // missing Z
		"backup-2023-01-02T03-04-05Z-yearly-dumpall.sql.gz",       // unknown tier
		"backup-2023-13-40T03-04-05Z-hourly-dumpall.sql.gz",       // impossible date
		"backup-2023-01-02T03-04-05Z-hourly-dumpall.sql",          // wrong suffix
		"xbackup-2023-01-02T03-04-05Z-hourly-dumpall.sql.gz",      // wrong prefix
		"backup-2023-01-02T03:04:05Z-hourly-dumpall.sql.gz",       // colons
		".tmp-backup-2023-01-02T03-04-05Z-hourly-dumpall.sql.gz",  // temp artifact
	}

	for _, name := range bad {
		_, _, err := Decode(name)
		require.Error(t, err, "name %q must be rejected", name)
		assert.True(t, errs.IsKind(err, errs.KindParse), "name %q must yield a parse error", name)
	}
}

func TestLexicographicOrderMatchesChronology(t *testing.T) {
	base := time.Date(2023, 1, 31, 22, 0, 0, 0, time.UTC)

	var names []string
	var byTime []string
	for i := 0; i < 8; i++ {
		// Crosses a day and a month boundary.
		name := Encode(base.Add(time.Duration(i)*time.Hour), Hourly)
		names = append(names, name)
		byTime = append(byTime, name)
	}

	sort.Strings(names)
	assert.Equal(t, byTime, names)
}
