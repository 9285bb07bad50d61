package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

type fakeCounter struct {
	value int64
	err   error
}

func (c *fakeCounter) Next(ctx context.Context) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.value++
	return c.value, nil
}

type fakeUUIDSource struct{ id string }

func (s fakeUUIDSource) New() string { return s.id }

func TestGenerateIDSequential(t *testing.T) {
	counter := &fakeCounter{}
	gen := GenerationContext{Counter: counter}

	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 5; i++ {
		id, err := GenerateID(context.Background(), profile.IDModeSequential, gen)
		if err != nil {
			t.Fatalf("GenerateID failed: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier %q", id)
		}
		seen[id] = struct{}{}
		if id <= prev {
			t.Fatalf("expected increasing identifiers, got %q after %q", id, prev)
		}
		prev = id
	}

	if prev != "exp_0005" {
		t.Fatalf("expected exp_0005 after five draws, got %q", prev)
	}
}

func TestGenerateIDSequentialCounterUnavailable(t *testing.T) {
	cases := []GenerationContext{
		{},
		{Counter: &fakeCounter{err: fmt.Errorf("database locked")}},
	}
	for _, gen := range cases {
		_, err := GenerateID(context.Background(), profile.IDModeSequential, gen)
		var rerr *Error
		if !errors.As(err, &rerr) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if rerr.Code != ErrCodeCounterUnavailable {
			t.Fatalf("expected %s, got %s", ErrCodeCounterUnavailable, rerr.Code)
		}
	}
}

func TestGenerateIDHashDeterministic(t *testing.T) {
	cfg := map[string]any{
		"optimizer": map[string]any{"lr": 0.001, "name": "adam"},
		"data":      map[string]any{"name": "cifar10"},
	}
	gen := GenerationContext{RawConfig: cfg, HashLength: 8}

	first, err := GenerateID(context.Background(), profile.IDModeHash, gen)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	second, err := GenerateID(context.Background(), profile.IDModeHash, gen)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}

	if first != second {
		t.Fatalf("expected deterministic hash, got %q and %q", first, second)
	}
	if len(first) != len("exp_")+8 {
		t.Fatalf("expected 8-char truncation, got %q", first)
	}
}

func TestGenerateIDHashKeyOrderIndependent(t *testing.T) {
	a := map[string]any{
		"data":      map[string]any{"name": "cifar10", "batch_size": 128},
		"optimizer": map[string]any{"lr": 0.001},
	}
	b := map[string]any{
		"optimizer": map[string]any{"lr": 0.001},
		"data":      map[string]any{"batch_size": 128, "name": "cifar10"},
	}

	idA, err := GenerateID(context.Background(), profile.IDModeHash, GenerationContext{RawConfig: a, HashLength: 8})
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	idB, err := GenerateID(context.Background(), profile.IDModeHash, GenerationContext{RawConfig: b, HashLength: 8})
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}

	if idA != idB {
		t.Fatalf("expected key order not to matter, got %q and %q", idA, idB)
	}
}

func TestGenerateIDHashInvalidLength(t *testing.T) {
	for _, length := range []int{0, -1, 999} {
		_, err := GenerateID(context.Background(), profile.IDModeHash, GenerationContext{
			RawConfig:  map[string]any{"a": 1},
			HashLength: length,
		})
		var rerr *Error
		if !errors.As(err, &rerr) {
			t.Fatalf("length %d: expected *Error, got %T", length, err)
		}
		if rerr.Code != profile.ErrCodeInvalidHashLength {
			t.Fatalf("length %d: expected %s, got %s", length, profile.ErrCodeInvalidHashLength, rerr.Code)
		}
	}
}

func TestGenerateIDTimestamp(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	gen := GenerationContext{Now: func() time.Time { return fixed }}

	id, err := GenerateID(context.Background(), profile.IDModeTimestamp, gen)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id != "exp_20240102_150405" {
		t.Fatalf("expected exp_20240102_150405, got %q", id)
	}
}

func TestGenerateIDUUID(t *testing.T) {
	gen := GenerationContext{UUIDs: fakeUUIDSource{id: "0f8fad5b-d9cb-469f-a165-70867728950e"}}

	id, err := GenerateID(context.Background(), profile.IDModeUUID, gen)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id != "exp_0f8fad5b-d9cb-469f-a165-70867728950e" {
		t.Fatalf("unexpected uuid identifier %q", id)
	}

	// Default source kicks in when no collaborator is supplied.
	id, err = GenerateID(context.Background(), profile.IDModeUUID, GenerationContext{})
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if !strings.HasPrefix(id, "exp_") || len(id) != len("exp_")+36 {
		t.Fatalf("unexpected default uuid identifier %q", id)
	}
}

func TestGenerateIDUnknownMode(t *testing.T) {
	_, err := GenerateID(context.Background(), profile.IDMode("bogus"), GenerationContext{})
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if rerr.Code != profile.ErrCodeUnknownIDMode {
		t.Fatalf("expected %s, got %s", profile.ErrCodeUnknownIDMode, rerr.Code)
	}
	if rerr.Mode != "bogus" {
		t.Fatalf("expected offending mode in error, got %q", rerr.Mode)
	}
}
