// Package retention decides which backups to keep. Every tier groups the
// inventory into calendar buckets (hour, day, ISO week, month, all UTC),
// the newest record per bucket is that bucket's representative, and the
// policy keeps the N most recent representatives per tier. A record
// survives as long as at least one tier still wants it.
package retention

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/raoulx24/sql-archiver/internal/config"
	"github.com/raoulx24/sql-archiver/internal/inventory"
	"github.com/raoulx24/sql-archiver/internal/naming"
)

// Set is a set of generations.
type Set uint8

func (s Set) Has(g naming.Generation) bool { return s&(1<<g) != 0 }
func (s *Set) Add(g naming.Generation)     { *s |= 1 << g }

// Classify returns the tiers for which ts falls into the same calendar
// bucket as now. A backup taken at now therefore satisfies all four tiers;
// an older one only the tiers whose current bucket it still lives in.
func Classify(ts, now time.Time) Set {
	var set Set
	for _, g := range naming.Generations {
		if bucketKey(g, ts) == bucketKey(g, now) {
			set.Add(g)
		}
	}
	return set
}

// bucketKey maps a timestamp to its calendar bucket for a tier. Keys are
// only compared for equality; ordering always comes from record timestamps.
func bucketKey(g naming.Generation, t time.Time) string {
	t = t.UTC()
	switch g {
	case naming.Hourly:
		return t.Format("2006-01-02T15")
	case naming.Daily:
		return t.Format("2006-01-02")
	case naming.Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}

// Engine computes prune plans against a retention policy.
type Engine struct {
	mu     sync.RWMutex
	policy config.RetentionConfig
	log    *zap.Logger
}

func New(policy config.RetentionConfig, log *zap.Logger) *Engine {
	return &Engine{policy: policy, log: log}
}

// UpdatePolicy swaps the policy on hot-reload.
func (e *Engine) UpdatePolicy(policy config.RetentionConfig) {
	e.mu.Lock()
	e.policy = policy
	e.mu.Unlock()
}

// Primary picks the finest enabled tier for naming a new backup. With every
// tier disabled it falls back to hourly.
func (e *Engine) Primary() naming.Generation {
	for _, g := range naming.Generations {
		if e.keep(g) > 0 {
			return g
		}
	}
	return naming.Hourly
}

func (e *Engine) keep(g naming.Generation) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	switch g {
	case naming.Hourly:
		return e.policy.KeepHourly
	case naming.Daily:
		return e.policy.KeepDaily
	case naming.Weekly:
		return e.policy.KeepWeekly
	default:
		return e.policy.KeepMonthly
	}
}

// Plan returns the names eligible for deletion under the policy at the
// given instant. The newest record overall is never in the plan; a failed
// next run must never leave the volume empty. Classification is recomputed
// from timestamps here, nothing cached at creation time is trusted.
func (e *Engine) Plan(inv inventory.Inventory, now time.Time) []string {
	if len(inv) == 0 {
		return nil
	}

	keep := make(map[string]struct{}, len(inv))
	keep[inv[0].Name] = struct{}{}

	for _, g := range naming.Generations {
		count := e.keep(g)
		if count == 0 {
			continue
		}

		// The inventory is sorted newest first with name as tiebreaker, so
		// the first record seen per bucket is its representative and buckets
		// are discovered in most-recent-first order.
		seen := make(map[string]struct{})
		kept := 0
		for _, rec := range inv {
			key := bucketKey(g, rec.Timestamp)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keep[rec.Name] = struct{}{}
			kept++
			if kept == count {
				break
			}
		}
	}

	var doomed []string
	for _, rec := range inv {
		if _, ok := keep[rec.Name]; !ok {
			doomed = append(doomed, rec.Name)
		}
	}

	e.log.Debug("prune plan computed",
		zap.Time("now", now),
		zap.Int("records", len(inv)),
		zap.Int("retained", len(inv)-len(doomed)),
		zap.Int("doomed", len(doomed)))
	return doomed
}
