package fs

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// retry logic with exponential backoff, used by write, rename and remove to
// ride out transient errors on flaky mounted volumes.

func retry(ctx context.Context, opName string, fn func() error) error {
	const maxRetries = 5
	base := 100 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !isTransient(err) {
			return errors.Wrapf(err, "%s failed permanently", opName)
		}

		if attempt == maxRetries {
			break
		}

		sleep := base * (1 << (attempt - 1))
		time.Sleep(sleep)
	}

	return errors.Wrapf(lastErr, "%s failed after %d retries", opName, maxRetries)
}
