package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Prem-Healthinformatics/pruno/internal/models"
)

// PostgresRepository stores room state as JSONB rows keyed by room code.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS rooms (
	code TEXT PRIMARY KEY,
	state JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresRepository connects to connString and ensures the schema exists.
func NewPostgresRepository(ctx context.Context, connString string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure rooms table: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) SaveRoom(ctx context.Context, state *models.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", state.RoomID, err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO rooms (code, state, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (code) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		state.RoomID, data)
	if err != nil {
		return fmt.Errorf("save room %s: %w", state.RoomID, err)
	}
	return nil
}

func (r *PostgresRepository) LoadRoom(ctx context.Context, code string) (*models.GameState, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT state FROM rooms WHERE code = $1`, code).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", code, err)
	}
	var state models.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal room %s: %w", code, err)
	}
	return &state, nil
}

func (r *PostgresRepository) Close(_ context.Context) error {
	r.pool.Close()
	return nil
}
