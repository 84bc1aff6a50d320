package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ticketly/ticketly/internal/dbx"
)

// SQLStore implements Store on a single kv(key, value) table.
type SQLStore struct {
	db      *sql.DB
	dialect dbx.Dialect
}

// NewSQLStore binds a store to an open database. The kv table must exist;
// Open applies the migrations that create it.
func NewSQLStore(db *sql.DB, dialect dbx.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`SELECT value FROM kv WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	return s.set(ctx, s.db, key, value)
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	return s.remove(ctx, s.db, key)
}

// Batch applies ops in one transaction.
func (s *SQLStore) Batch(ctx context.Context, ops []Op) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, op := range ops {
			var err error
			if op.Delete {
				err = s.remove(ctx, tx, op.Key)
			} else {
				err = s.set(ctx, tx, op.Key, op.Value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`), key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLStore) remove(ctx context.Context, db dbx.DBTX, key string) error {
	_, err := db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM kv WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}
