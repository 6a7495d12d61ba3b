package quiz

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLStateStore keeps session snapshots in the session_state table, one row
// per storage name. Works against both supported drivers; the upsert syntax
// is shared.
type SQLStateStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStateStore(db *sql.DB, driver string) *SQLStateStore {
	return &SQLStateStore{db: db, driver: driver}
}

func (s *SQLStateStore) Save(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_state (name, data, updated_at) VALUES ($1,$2,$3)
		 ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		name, string(data), time.Now().Unix())
	return err
}

func (s *SQLStateStore) Load(ctx context.Context, name string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM session_state WHERE name=$1`, name)
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return []byte(data), nil
}
