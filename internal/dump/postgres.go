package dump

import (
	"context"
	"fmt"
	"io"

	"github.com/raoulx24/sql-archiver/internal/config"
)

// postgresTool wraps pg_dumpall/pg_dump for backups and psql for restores.
type postgresTool struct {
	cfg config.DatabaseConfig
}

func (p *postgresTool) env() []string {
	if p.cfg.Password == "" {
		// Fall back on whatever .pgpass the environment provides.
		return nil
	}
	return []string{"PGPASSWORD=" + p.cfg.Password}
}

func (p *postgresTool) connArgs() []string {
	return []string{
		"--host", p.cfg.Host,
		"--port", fmt.Sprintf("%d", p.cfg.Port),
		"--username", p.cfg.User,
		"--no-password",
	}
}

func (p *postgresTool) Dump(ctx context.Context, w io.Writer) error {
	if p.cfg.Name == "" {
		// Whole server, roles included.
		args := append(p.connArgs(), "--clean")
		return runDump(ctx, w, p.env(), "pg_dumpall", args...)
	}
	args := append(p.connArgs(), "--clean", "--if-exists", "--dbname", p.cfg.Name)
	return runDump(ctx, w, p.env(), "pg_dump", args...)
}

func (p *postgresTool) Restore(ctx context.Context, r io.Reader, database string) error {
	args := append(p.connArgs(), "--quiet")
	if database != "" {
		args = append(args, "--dbname", database)
	} else {
		// A full-server dump carries its own \connect statements; template1
		// is only the entry point.
		args = append(args, "--dbname", "template1")
	}
	return runRestore(ctx, r, p.env(), "psql", args...)
}
