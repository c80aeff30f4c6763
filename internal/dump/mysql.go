package dump

import (
	"context"
	"fmt"
	"io"

	"github.com/raoulx24/sql-archiver/internal/config"
)

// mysqlTool wraps mysqldump for backups and the mysql client for restores.
type mysqlTool struct {
	cfg config.DatabaseConfig
}

func (m *mysqlTool) env() []string {
	if m.cfg.Password == "" {
		return nil
	}
	return []string{"MYSQL_PWD=" + m.cfg.Password}
}

func (m *mysqlTool) connArgs() []string {
	return []string{
		"--host", m.cfg.Host,
		"--port", fmt.Sprintf("%d", m.cfg.Port),
		"--user", m.cfg.User,
	}
}

func (m *mysqlTool) Dump(ctx context.Context, w io.Writer) error {
	args := append(m.connArgs(), "--single-transaction", "--routines", "--triggers")
	if m.cfg.Name == "" {
		args = append(args, "--all-databases")
	} else {
		args = append(args, "--databases", m.cfg.Name)
	}
	return runDump(ctx, w, m.env(), "mysqldump", args...)
}

func (m *mysqlTool) Restore(ctx context.Context, r io.Reader, database string) error {
	args := m.connArgs()
	if database != "" {
		args = append(args, database)
	}
	return runRestore(ctx, r, m.env(), "mysql", args...)
}
