package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CounterRepository hands out monotonically increasing integers, one
// sequence per scope. Increments run inside a transaction so concurrent
// resolutions never observe the same value.
type CounterRepository struct {
	db *DB
}

// NewCounterRepository creates a new CounterRepository.
func NewCounterRepository(db *DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next atomically increments and returns the counter for scope. The first
// call on a fresh scope returns 1.
func (r *CounterRepository) Next(ctx context.Context, scope string) (int64, error) {
	var next int64
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO counters (scope, value) VALUES (?, 0)
			ON CONFLICT (scope) DO NOTHING
		`, scope); err != nil {
			return fmt.Errorf("seed counter: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE counters SET value = value + 1 WHERE scope = ?
		`, scope); err != nil {
			return fmt.Errorf("increment counter: %w", err)
		}

		if err := tx.QueryRowContext(ctx, `
			SELECT value FROM counters WHERE scope = ?
		`, scope).Scan(&next); err != nil {
			return fmt.Errorf("read counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Peek returns the current counter value without incrementing. A fresh scope
// reads 0.
func (r *CounterRepository) Peek(ctx context.Context, scope string) (int64, error) {
	var value int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT value FROM counters WHERE scope = ?), 0)
	`, scope).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	return value, nil
}

// ScopedCounter binds a repository to one scope, satisfying the engine's
// Counter interface.
type ScopedCounter struct {
	repo  *CounterRepository
	scope string
}

// Scoped returns a counter bound to scope.
func (r *CounterRepository) Scoped(scope string) *ScopedCounter {
	return &ScopedCounter{repo: r, scope: scope}
}

// Next draws the next value for the bound scope.
func (c *ScopedCounter) Next(ctx context.Context) (int64, error) {
	return c.repo.Next(ctx, c.scope)
}
