package resolve

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

// runIDPrefix is shared by every identifier mode so experiment directories
// sort together under the experiments root.
const runIDPrefix = "exp_"

// sequentialWidth is the zero-padded width of sequential identifiers.
const sequentialWidth = 4

// timestampLayout is second-resolution and lexicographically sortable.
const timestampLayout = "20060102_150405"

// Counter supplies monotonically increasing integers for sequential
// identifiers. Persistence and atomicity are the implementation's concern;
// the engine only calls Next.
type Counter interface {
	Next(ctx context.Context) (int64, error)
}

// UUIDSource supplies universally unique identifiers for uuid mode.
type UUIDSource interface {
	New() string
}

// GenerationContext carries the collaborators each identifier mode may need.
// Only the fields relevant to the selected mode are consulted.
type GenerationContext struct {
	// Counter backs sequential mode. Required for that mode only.
	Counter Counter

	// UUIDs backs uuid mode. Defaults to google/uuid.
	UUIDs UUIDSource

	// Now supplies the current time for timestamp mode. Defaults to time.Now.
	Now func() time.Time

	// RawConfig is the full run configuration, hashed in hash mode.
	RawConfig map[string]any

	// HashLength truncates the hex digest in hash mode.
	HashLength int
}

// GenerateID produces a run identifier using the given mode. Each mode is a
// pure function over the context; no state is shared between modes.
func GenerateID(ctx context.Context, mode profile.IDMode, gen GenerationContext) (string, error) {
	switch mode {
	case profile.IDModeSequential:
		return sequentialID(ctx, gen.Counter)
	case profile.IDModeHash:
		return hashID(gen.RawConfig, gen.HashLength)
	case profile.IDModeTimestamp:
		return timestampID(gen.Now), nil
	case profile.IDModeUUID:
		return uuidID(gen.UUIDs), nil
	default:
		return "", &Error{
			Code:    profile.ErrCodeUnknownIDMode,
			Mode:    string(mode),
			Message: "unknown id_mode",
		}
	}
}

func sequentialID(ctx context.Context, counter Counter) (string, error) {
	if counter == nil {
		return "", counterUnavailableError(nil)
	}
	n, err := counter.Next(ctx)
	if err != nil {
		return "", counterUnavailableError(err)
	}
	return fmt.Sprintf("%s%0*d", runIDPrefix, sequentialWidth, n), nil
}

func hashID(rawConfig map[string]any, length int) (string, error) {
	if length < 1 || length > profile.MaxHashLength {
		return "", &Error{
			Code:    profile.ErrCodeInvalidHashLength,
			Mode:    "hash",
			Message: fmt.Sprintf("hash_length %d out of range 1..%d", length, profile.MaxHashLength),
		}
	}

	canonical, err := canonicalJSON(rawConfig)
	if err != nil {
		return "", fmt.Errorf("canonicalize config for hashing: %w", err)
	}

	digest := sha1.Sum(canonical)
	return runIDPrefix + hex.EncodeToString(digest[:])[:length], nil
}

func timestampID(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return runIDPrefix + now().Format(timestampLayout)
}

func uuidID(source UUIDSource) string {
	if source == nil {
		source = defaultUUIDSource{}
	}
	return runIDPrefix + source.New()
}

// canonicalJSON renders a config tree in a key-order-independent form: two
// configs differing only in key order hash identically.
func canonicalJSON(cfg map[string]any) ([]byte, error) {
	if cfg == nil {
		cfg = map[string]any{}
	}
	// encoding/json sorts map keys, which is exactly the canonical order.
	return json.Marshal(cfg)
}

type defaultUUIDSource struct{}

func (defaultUUIDSource) New() string { return uuid.NewString() }

// NewUUIDSource returns the default google/uuid-backed source.
func NewUUIDSource() UUIDSource { return defaultUUIDSource{} }
