package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

// SQLiteRepository stores room state in a local SQLite file. Intended for
// single-process deployments and local development; the postgres repository
// is the production path.
type SQLiteRepository struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS rooms (
	code TEXT PRIMARY KEY,
	state TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (unixepoch())
)`

// NewSQLiteRepository opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure rooms table: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) SaveRoom(ctx context.Context, state *models.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", state.RoomID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO rooms (code, state, updated_at) VALUES (?, ?, unixepoch())
		ON CONFLICT (code) DO UPDATE SET state = excluded.state, updated_at = unixepoch()`,
		state.RoomID, string(data))
	if err != nil {
		return fmt.Errorf("save room %s: %w", state.RoomID, err)
	}
	return nil
}

func (r *SQLiteRepository) LoadRoom(ctx context.Context, code string) (*models.GameState, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT state FROM rooms WHERE code = ?`, code).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", code, err)
	}
	var state models.GameState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", code, err)
	}
	return &state, nil
}

func (r *SQLiteRepository) Close(_ context.Context) error {
	return r.db.Close()
}
