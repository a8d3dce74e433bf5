package conversation

import "context"

// Store persists at most one pending conversation per admin. Writes replace
// whatever was stored before; concurrent updates resolve last-writer-wins.
type Store interface {
	// Set replaces the admin's state and payload.
	Set(ctx context.Context, adminID int64, state State, data Data) error
	// Get returns the admin's state and payload, or ErrNoState when absent.
	Get(ctx context.Context, adminID int64) (State, Data, error)
	// Clear removes the admin's state. Clearing an absent state is a no-op.
	Clear(ctx context.Context, adminID int64) error
}
