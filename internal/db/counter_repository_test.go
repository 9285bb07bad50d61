package db

import (
	"context"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func TestCounterRepository_NextIsMonotonic(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewCounterRepository(db)
	ctx := context.Background()

	var prev int64
	for i := 1; i <= 5; i++ {
		value, err := repo.Next(ctx, "/tmp/experiments")
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if value != int64(i) {
			t.Fatalf("expected %d, got %d", i, value)
		}
		if value <= prev {
			t.Fatalf("expected strictly increasing values, got %d after %d", value, prev)
		}
		prev = value
	}
}

func TestCounterRepository_ScopesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewCounterRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.Next(ctx, "/root-a"); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
	}

	value, err := repo.Next(ctx, "/root-b")
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if value != 1 {
		t.Fatalf("expected fresh scope to start at 1, got %d", value)
	}
}

func TestCounterRepository_PeekDoesNotAdvance(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewCounterRepository(db)
	ctx := context.Background()

	value, err := repo.Peek(ctx, "/fresh")
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if value != 0 {
		t.Fatalf("expected fresh scope to peek 0, got %d", value)
	}

	if _, err := repo.Next(ctx, "/fresh"); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	value, err = repo.Peek(ctx, "/fresh")
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if value != 1 {
		t.Fatalf("expected peek 1 after one draw, got %d", value)
	}

	next, err := repo.Scoped("/fresh").Next(ctx)
	if err != nil {
		t.Fatalf("scoped Next failed: %v", err)
	}
	if next != 2 {
		t.Fatalf("expected scoped counter to continue at 2, got %d", next)
	}
}
