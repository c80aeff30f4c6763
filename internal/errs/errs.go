// Package errs defines the error taxonomy shared by backup and recovery.
// Each kind maps to a distinct process exit code in cmd.
package errs

import (
	"github.com/cockroachdb/errors"
)

// Kind classifies an error for exit-code mapping.
type Kind int

const (
	KindInternal Kind = iota
	// KindConfig: missing or invalid configuration. Fatal before any I/O.
	KindConfig
	// KindExec: dump/restore tool failed. Fatal for the run, never destructive.
	KindExec
	// KindParse: a storage entry does not match the naming scheme.
	// Inventory construction skips these, it never propagates them.
	KindParse
	// KindNotFound: no backup matches a recovery request.
	KindNotFound
	// KindDelete: pruning a stale backup failed. Logged, non-fatal.
	KindDelete
)

type kindedError struct {
	kind Kind
	err  error
}

func (e *kindedError) Error() string { return e.err.Error() }
func (e *kindedError) Unwrap() error { return e.err }

// WithKind tags err with a kind. The kind survives wrapping with
// errors.Wrap / fmt.Errorf("%w").
func WithKind(err error, k Kind) error {
	if err == nil {
		return nil
	}
	return &kindedError{kind: k, err: err}
}

// Newf builds a new error of the given kind.
func Newf(k Kind, format string, args ...any) error {
	return WithKind(errors.Newf(format, args...), k)
}

// Wrapf annotates err and tags the result with the given kind.
func Wrapf(k Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return WithKind(errors.Wrapf(err, format, args...), k)
}

// KindOf returns the innermost kind attached to err, or KindInternal.
func KindOf(err error) Kind {
	var ke *kindedError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
