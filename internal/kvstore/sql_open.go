package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/ticketly/ticketly/internal/dbx"
	"github.com/ticketly/ticketly/internal/filex"
	"github.com/ticketly/ticketly/internal/kvstore/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// RunMigrations brings the kv schema of db up to date.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := migrations.DirSQLite
	if dialect == dbx.DialectPostgres {
		dir = migrations.DirPostgres
	}
	return goose.UpContext(ctx, db, dir)
}

// OpenSQLite opens (creating if needed) the database file at path and
// migrates it. Missing parent directories are created. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
	}
	return openSQL(ctx, dbx.DialectSQLite, path)
}

// OpenPostgres connects with a pgx DSN and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	return openSQL(ctx, dbx.DialectPostgres, dsn)
}

func openSQL(ctx context.Context, dialect dbx.Dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if dialect == dbx.DialectSQLite {
		// one connection keeps ":memory:" databases whole and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return NewSQLStore(db, dialect), nil
}
