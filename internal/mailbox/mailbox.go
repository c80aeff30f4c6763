// Package mailbox provides a single-slot buffer where the latest job always
// wins. It is NOT a queue: it holds at most one pending job, so a burst of
// cron ticks collapses into a single backup run instead of piling up.
package mailbox

import (
	"context"
	"sync"
)

type Mailbox[T any] struct {
	mu     sync.Mutex
	job    *T
	notify chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{notify: make(chan struct{}, 1)}
}

// Put stores a job, replacing any pending one. It never blocks.
func (m *Mailbox[T]) Put(j T) {
	m.mu.Lock()
	m.job = &j
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Take blocks until a job is available or ctx is done. The second return
// value is false only on cancellation.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	for {
		m.mu.Lock()
		if m.job != nil {
			j := *m.job
			m.job = nil
			m.mu.Unlock()
			return j, true
		}
		m.mu.Unlock()

		select {
		case <-m.notify:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// TryTake returns the pending job if present. It never blocks.
func (m *Mailbox[T]) TryTake() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.job == nil {
		var zero T
		return zero, false
	}
	j := *m.job
	m.job = nil
	return j, true
}

// HasJob reports whether a job is currently waiting.
func (m *Mailbox[T]) HasJob() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.job != nil
}
