// Package dump shells out to the database client tools. The archiver never
// speaks the wire protocol itself; pg_dumpall/pg_dump/psql and
// mysqldump/mysql do the real work.
package dump

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/raoulx24/sql-archiver/internal/config"
	"github.com/raoulx24/sql-archiver/internal/errs"
)

// Dumper produces one gzip-compressed SQL artifact per call.
type Dumper interface {
	// Dump writes the compressed dump to w. On tool failure nothing useful
	// has been written and the caller must discard the output.
	Dump(ctx context.Context, w io.Writer) error
}

// Restorer feeds a gzip-compressed SQL artifact back into the server.
type Restorer interface {
	// Restore replays r. database narrows the restore to a single database
	// when non-empty; otherwise the whole server is restored.
	Restore(ctx context.Context, r io.Reader, database string) error
}

// NewDumper selects the client tool for the configured database kind.
func NewDumper(cfg config.DatabaseConfig) (Dumper, error) {
	switch cfg.Kind {
	case "postgres":
		return &postgresTool{cfg: cfg}, nil
	case "mysql":
		return &mysqlTool{cfg: cfg}, nil
	}
	return nil, errs.Newf(errs.KindConfig, "no dump tool for database kind %q", cfg.Kind)
}

// NewRestorer selects the client tool for the configured database kind.
func NewRestorer(cfg config.DatabaseConfig) (Restorer, error) {
	switch cfg.Kind {
	case "postgres":
		return &postgresTool{cfg: cfg}, nil
	case "mysql":
		return &mysqlTool{cfg: cfg}, nil
	}
	return nil, errs.Newf(errs.KindConfig, "no restore tool for database kind %q", cfg.Kind)
}

// runDump executes the client, gzipping its stdout into w. The password
// goes through the child environment, never the command line.
func runDump(ctx context.Context, w io.Writer, env []string, name string, args ...string) error {
	gzw := gzip.NewWriter(w)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = gzw

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = gzw.Close()
		return errs.Wrapf(errs.KindExec, err, "%s failed: %s", name, stderrTail(&stderr))
	}
	if err := gzw.Close(); err != nil {
		return errs.Wrapf(errs.KindExec, err, "flushing %s output", name)
	}
	return nil
}

// runRestore gunzips r into the client's stdin.
func runRestore(ctx context.Context, r io.Reader, env []string, name string, args ...string) error {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return errs.Wrapf(errs.KindExec, err, "unpacking backup")
	}
	defer gzr.Close()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = gzr

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errs.Wrapf(errs.KindExec, err, "%s failed: %s", name, stderrTail(&stderr))
	}
	return nil
}

// stderrTail keeps error messages bounded; client tools can be chatty.
func stderrTail(buf *bytes.Buffer) string {
	const max = 2048
	b := buf.Bytes()
	if len(b) > max {
		b = b[len(b)-max:]
	}
	return string(bytes.TrimSpace(b))
}
