package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/config"
	"github.com/raoulx24/sql-archiver/internal/inventory"
	"github.com/raoulx24/sql-archiver/internal/naming"
)

func record(t time.Time) inventory.Record {
	return inventory.Record{
		Name:       naming.Encode(t, naming.Hourly),
		Timestamp:  t.UTC(),
		Generation: naming.Hourly,
	}
}

// makeInventory builds a newest-first inventory from arbitrary-order times.
func makeInventory(times ...time.Time) inventory.Inventory {
	var inv inventory.Inventory
	for _, t := range times {
		inv = append(inv, record(t))
	}
	for i := 0; i < len(inv); i++ {
		for j := i + 1; j < len(inv); j++ {
			if inv[j].Timestamp.After(inv[i].Timestamp) {
				inv[i], inv[j] = inv[j], inv[i]
			}
		}
	}
	return inv
}

func newEngine(policy config.RetentionConfig) *Engine {
	return New(policy, zap.NewNop())
}

func TestClassifySameInstantSatisfiesAllTiers(t *testing.T) {
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	set := Classify(now, now)
	for _, g := range naming.Generations {
		assert.True(t, set.Has(g), "tier %s", g)
	}
}

func TestClassifyOlderTimestamps(t *testing.T) {
	// A Wednesday mid-month, so day/week/month boundaries are all distinct.
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		ts   time.Time
		want map[naming.Generation]bool
	}{
		{
			name: "same day, earlier hour",
			ts:   time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC),
			want: map[naming.Generation]bool{
				naming.Hourly: false, naming.Daily: true, naming.Weekly: true, naming.Monthly: true,
			},
		},
		{
			name: "same ISO week, previous day",
			ts:   time.Date(2023, 5, 8, 23, 0, 0, 0, time.UTC), // Monday
			want: map[naming.Generation]bool{
				naming.Hourly: false, naming.Daily: false, naming.Weekly: true, naming.Monthly: true,
			},
		},
		{
			name: "same month, previous ISO week",
			ts:   time.Date(2023, 5, 3, 12, 0, 0, 0, time.UTC),
			want: map[naming.Generation]bool{
				naming.Hourly: false, naming.Daily: false, naming.Weekly: false, naming.Monthly: true,
			},
		},
		{
			name: "previous month",
			ts:   time.Date(2023, 4, 28, 12, 0, 0, 0, time.UTC),
			want: map[naming.Generation]bool{
				naming.Hourly: false, naming.Daily: false, naming.Weekly: false, naming.Monthly: false,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set := Classify(tc.ts, now)
			for g, want := range tc.want {
				assert.Equal(t, want, set.Has(g), "tier %s", g)
			}
		})
	}
}

func TestClassifyISOWeekSpansMonthBoundary(t *testing.T) {
	// 2023-05-31 (Wed) and 2023-06-01 (Thu) share ISO week 22 but not a month.
	now := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	ts := time.Date(2023, 5, 31, 10, 0, 0, 0, time.UTC)

	set := Classify(ts, now)
	assert.True(t, set.Has(naming.Weekly))
	assert.False(t, set.Has(naming.Monthly))
}

func TestPlanEmptyInventory(t *testing.T) {
	e := newEngine(config.RetentionConfig{KeepHourly: 3})
	assert.Empty(t, e.Plan(nil, time.Now()))
}

func TestPlanNeverDeletesNewest(t *testing.T) {
	now := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	inv := makeInventory(
		now.Add(-1*time.Hour),
		now.Add(-2*time.Hour),
		now.Add(-3*time.Hour),
	)

	// All tiers disabled: everything but the newest is eligible.
	e := newEngine(config.RetentionConfig{})
	doomed := e.Plan(inv, now)

	assert.NotContains(t, doomed, inv[0].Name)
	assert.Len(t, doomed, 2)
}

func TestPlanThirtyHourlyRuns(t *testing.T) {
	// Hourly backups at :30 past each hour for 30 hours.
	start := time.Date(2023, 5, 10, 0, 30, 0, 0, time.UTC)
	var times []time.Time
	for i := 0; i < 30; i++ {
		times = append(times, start.Add(time.Duration(i)*time.Hour))
	}
	now := times[len(times)-1] // 2023-05-11T05:30Z
	inv := makeInventory(times...)

	e := newEngine(config.RetentionConfig{KeepHourly: 3, KeepDaily: 2})
	doomed := e.Plan(inv, now)

	// Retained: the 3 most recent hourly buckets' representatives plus the
	// representatives of May 11 (== newest, deduplicated) and May 10.
	wantKept := []string{
		naming.Encode(time.Date(2023, 5, 11, 5, 30, 0, 0, time.UTC), naming.Hourly),
		naming.Encode(time.Date(2023, 5, 11, 4, 30, 0, 0, time.UTC), naming.Hourly),
		naming.Encode(time.Date(2023, 5, 11, 3, 30, 0, 0, time.UTC), naming.Hourly),
		naming.Encode(time.Date(2023, 5, 10, 23, 30, 0, 0, time.UTC), naming.Hourly),
	}

	assert.Len(t, doomed, len(inv)-len(wantKept))
	for _, name := range wantKept {
		assert.NotContains(t, doomed, name)
	}
}

func TestPlanRecordSurvivesWhileAnyTierWantsIt(t *testing.T) {
	// Two records: the newest, and one that is both the previous day's and
	// the previous ISO week's representative.
	now := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC) // Wednesday
	older := time.Date(2023, 5, 7, 23, 0, 0, 0, time.UTC) // Sunday, week before
	inv := makeInventory(now, older)

	e := newEngine(config.RetentionConfig{KeepDaily: 2, KeepWeekly: 2})
	assert.Empty(t, e.Plan(inv, now))

	// Daily no longer reaches it, weekly still does.
	e = newEngine(config.RetentionConfig{KeepDaily: 1, KeepWeekly: 2})
	assert.Empty(t, e.Plan(inv, now))

	// Neither tier wants it anymore.
	e = newEngine(config.RetentionConfig{KeepDaily: 1, KeepWeekly: 1})
	doomed := e.Plan(inv, now)
	require.Len(t, doomed, 1)
	assert.Equal(t, naming.Encode(older, naming.Hourly), doomed[0])
}

func TestPlanBucketRepresentativeIsNewest(t *testing.T) {
	// Three backups inside one hour: only the newest represents the bucket.
	now := time.Date(2023, 5, 10, 12, 50, 0, 0, time.UTC)
	inv := makeInventory(
		now,
		now.Add(-10*time.Minute),
		now.Add(-20*time.Minute),
	)

	e := newEngine(config.RetentionConfig{KeepHourly: 24})
	doomed := e.Plan(inv, now)

	assert.ElementsMatch(t, []string{inv[1].Name, inv[2].Name}, doomed)
}

func TestPlanIdenticalTimestampsPreferGreaterName(t *testing.T) {
	now := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)

	// Same second, different generation tags: the weekly-tagged name sorts
	// after the hourly one and wins the bucket.
	recA := inventory.Record{
		Name:      naming.Encode(now, naming.Hourly),
		Timestamp: now,
	}
	recB := inventory.Record{
		Name:      naming.Encode(now, naming.Weekly),
		Timestamp: now,
	}
	inv := inventory.Inventory{recB, recA} // sorted: "weekly" > "hourly"

	e := newEngine(config.RetentionConfig{KeepHourly: 1})
	doomed := e.Plan(inv, now)

	require.Len(t, doomed, 1)
	assert.Equal(t, recA.Name, doomed[0])
}

func TestPlanResultIsSubsetOfInventory(t *testing.T) {
	now := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	var times []time.Time
	for i := 0; i < 50; i++ {
		times = append(times, now.Add(-time.Duration(i*7)*time.Hour))
	}
	inv := makeInventory(times...)

	e := newEngine(config.RetentionConfig{KeepHourly: 5, KeepDaily: 3, KeepWeekly: 2, KeepMonthly: 1})
	doomed := e.Plan(inv, now)

	names := make(map[string]bool, len(inv))
	for _, rec := range inv {
		names[rec.Name] = true
	}
	for _, name := range doomed {
		assert.True(t, names[name], "planned name %s must exist in the inventory", name)
	}
}

func TestPrimaryPicksFinestEnabledTier(t *testing.T) {
	assert.Equal(t, naming.Hourly, newEngine(config.RetentionConfig{KeepHourly: 1, KeepDaily: 1}).Primary())
	assert.Equal(t, naming.Daily, newEngine(config.RetentionConfig{KeepDaily: 1}).Primary())
	assert.Equal(t, naming.Monthly, newEngine(config.RetentionConfig{KeepMonthly: 2}).Primary())
	assert.Equal(t, naming.Hourly, newEngine(config.RetentionConfig{}).Primary())
}
