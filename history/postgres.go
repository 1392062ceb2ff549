package history

import (
	"context"
	"database/sql"
	"errors"
)

const schema = `CREATE TABLE IF NOT EXISTS launch_history (
	id         UUID PRIMARY KEY,
	game_id    TEXT NOT NULL,
	game_name  TEXT NOT NULL DEFAULT '',
	provider   TEXT NOT NULL DEFAULT '',
	mode       TEXT NOT NULL DEFAULT '',
	player_id  TEXT NOT NULL DEFAULT '',
	url        TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`

// PGStore keeps history in the launch_history table.
type PGStore struct {
	db *sql.DB
}

var _ Store = &PGStore{}

// NewPGStore creates the table if needed.
func NewPGStore(ctx context.Context, db *sql.DB) (*PGStore, error) {
	if db == nil {
		return nil, errors.New("history: nil db")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, err
	}
	return &PGStore{db: db}, nil
}

func (s *PGStore) Record(ctx context.Context, e Entry) error {
	e = prepare(e)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO launch_history (id, game_id, game_name, provider, mode, player_id, url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.GameID, e.GameName, e.Provider, e.Mode, e.PlayerID, e.URL, e.CreatedAt)
	return err
}

func (s *PGStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT id, game_id, game_name, provider, mode, player_id, url, created_at
	      FROM launch_history ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.GameID, &e.GameName, &e.Provider, &e.Mode, &e.PlayerID, &e.URL, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PGStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM launch_history`).Scan(&n)
	return n, err
}

// Open picks the Postgres store when dsn is set and the file store otherwise.
func Open(ctx context.Context, dsn, dataDir string) (Store, error) {
	db, err := OpenPostgres(dsn)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return NewFileStore(dataDir), nil
	}
	s, err := NewPGStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
