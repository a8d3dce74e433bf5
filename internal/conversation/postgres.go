package conversation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore persists conversation state in the admin_states table.
// One row per admin; Set upserts, so concurrent writers resolve
// last-writer-wins without locking.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps db into a Store backed by admin_states.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Set replaces the admin's state and payload.
func (s *PostgresStore) Set(ctx context.Context, adminID int64, state State, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("conversation: marshal payload: %w", err)
	}
	const q = `
		INSERT INTO admin_states (admin_id, state, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (admin_id)
		DO UPDATE SET state = EXCLUDED.state, data = EXCLUDED.data, updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, q, adminID, string(state), payload); err != nil {
		return fmt.Errorf("conversation: set state: %w", err)
	}
	return nil
}

// Get returns the admin's state and payload, or ErrNoState when absent.
func (s *PostgresStore) Get(ctx context.Context, adminID int64) (State, Data, error) {
	var row struct {
		State string `db:"state"`
		Data  []byte `db:"data"`
	}
	const q = `SELECT state, data FROM admin_states WHERE admin_id = $1`
	if err := s.db.GetContext(ctx, &row, q, adminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StateIdle, Data{}, ErrNoState
		}
		return StateIdle, Data{}, fmt.Errorf("conversation: get state: %w", err)
	}
	var data Data
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return StateIdle, Data{}, fmt.Errorf("conversation: unmarshal payload: %w", err)
		}
	}
	return State(row.State), data, nil
}

// Clear removes the admin's state.
func (s *PostgresStore) Clear(ctx context.Context, adminID int64) error {
	const q = `DELETE FROM admin_states WHERE admin_id = $1`
	if _, err := s.db.ExecContext(ctx, q, adminID); err != nil {
		return fmt.Errorf("conversation: clear state: %w", err)
	}
	return nil
}
