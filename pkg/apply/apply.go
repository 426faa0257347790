// Package apply executes generated DDL against a live target database.
// It is an optional collaborator: the core pipeline never touches the
// network.
package apply

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/microsoft/go-mssqldb" // registers the sqlserver driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers the sqlite driver

	"github.com/dataprof-io/dataprof/pkg/logging"
)

// Executor runs DDL on the dialects backed by an available driver:
// postgres (native pgx), sqlserver and sqlite (database/sql). Oracle and
// BigQuery DDL is export-only.
type Executor struct {
	logger *zap.Logger
}

// NewExecutor creates an Executor. If logger is nil, a no-op logger is
// used.
func NewExecutor(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{logger: logger.Named("apply")}
}

// Apply executes ddl against the database described by dsn.
func (e *Executor) Apply(ctx context.Context, dialect, dsn, ddl string) error {
	e.logger.Info("applying DDL",
		zap.String("dialect", dialect),
		zap.String("dsn", logging.SanitizeDSN(dsn)))

	switch dialect {
	case "postgres":
		return e.applyPostgres(ctx, dsn, ddl)
	case "sqlserver":
		return e.applySQL(ctx, "sqlserver", dsn, ddl)
	case "sqlite":
		return e.applySQL(ctx, "sqlite", dsn, ddl)
	default:
		return fmt.Errorf("dialect %q has no apply support; use the exported DDL file", dialect)
	}
}

func (e *Executor) applyPostgres(ctx context.Context, dsn, ddl string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("execute DDL: %w", err)
	}
	return nil
}

func (e *Executor) applySQL(ctx context.Context, driver, dsn, ddl string) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("execute DDL: %w", err)
	}
	return nil
}
