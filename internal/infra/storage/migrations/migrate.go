package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var files embed.FS

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrate применяет встроенные миграции по порядку имён, каждую в своей транзакции
func Migrate(ctx context.Context, db *sql.DB, logger Logger) error {
	if _, err := db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now())",
	); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrMigrate, err)
	}

	names, err := fs.Glob(files, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("%w: list migrations: %v", ErrMigrate, err)
	}
	sort.Strings(names)

	for _, name := range names {
		version := strings.TrimSuffix(strings.TrimPrefix(name, "sql/"), ".sql")

		var applied bool
		if err := db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version,
		).Scan(&applied); err != nil {
			return fmt.Errorf("%w: check %s: %v", ErrMigrate, version, err)
		}
		if applied {
			continue
		}

		body, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", ErrMigrate, version, err)
		}

		if err := apply(ctx, db, version, string(body)); err != nil {
			return err
		}
		logger.Info("Migration %s applied", version)
	}

	return nil
}

func apply(ctx context.Context, db *sql.DB, version, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %v", ErrMigrate, version, err)
	}

	if _, err := tx.ExecContext(ctx, body); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: migration %s failed: %v", ErrMigrate, version, err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: record %s: %v", ErrMigrate, version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", ErrMigrate, version, err)
	}
	return nil
}
