package cli

import "github.com/raoulx24/sql-archiver/internal/errs"

// Exit codes, one per fatal error kind so wrappers can tell them apart.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitConfig   = 2
	ExitExec     = 3
	ExitNotFound = 4
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errs.KindOf(err) {
	case errs.KindConfig:
		return ExitConfig
	case errs.KindExec:
		return ExitExec
	case errs.KindNotFound:
		return ExitNotFound
	}
	return ExitInternal
}
