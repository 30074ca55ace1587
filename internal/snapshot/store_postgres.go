package snapshot

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps snapshots in the kv_snapshots table (see internal/db).
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO kv_snapshots (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value,
		              updated_at = now()
	`, namespace, key, string(value))

	return err
}

func (s *PostgresStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var value string

	err := s.db.QueryRow(ctx, `
		SELECT value
		FROM kv_snapshots
		WHERE namespace = $1
		  AND key = $2
	`, namespace, key).Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return []byte(value), nil
}
