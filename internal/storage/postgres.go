package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is the subset of *pgxpool.Pool the slot needs.
type PgxIface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresSlot struct {
	db  PgxIface
	key string
}

var _ Slot = (*PostgresSlot)(nil)

func NewPostgresSlot(db PgxIface, key string) *PostgresSlot {
	return &PostgresSlot{db: db, key: key}
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	query := `
SELECT value
FROM slots
WHERE key = $1
`
	var value []byte
	err := s.db.QueryRow(ctx, query, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("select slot %s: %w", s.key, err)
	}
	return value, nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	query := `
INSERT INTO slots (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`
	if _, err := s.db.Exec(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("upsert slot %s: %w", s.key, err)
	}
	return nil
}
