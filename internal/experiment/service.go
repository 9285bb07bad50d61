// Package experiment wraps finished runs into archived experiment
// directories and answers registry queries.
package experiment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/LaurentVidal95/LocalMLManager/internal/db"
	"github.com/LaurentVidal95/LocalMLManager/internal/idcard"
	"github.com/LaurentVidal95/LocalMLManager/internal/logging"
	"github.com/LaurentVidal95/LocalMLManager/internal/models"
	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
	"github.com/LaurentVidal95/LocalMLManager/internal/resolve"
)

// artifactDirs are the run subdirectories copied into the experiment dir
// when present.
var artifactDirs = []string{"checkpoints", "wandb", ".hydra"}

// Service orchestrates run resolution, archival, and registry bookkeeping.
type Service struct {
	experiments *db.ExperimentRepository
	counters    *db.CounterRepository
	logger      zerolog.Logger
}

// NewService creates a Service backed by database.
func NewService(database *db.DB) *Service {
	return &Service{
		experiments: db.NewExperimentRepository(database),
		counters:    db.NewCounterRepository(database),
		logger:      logging.Component("experiment"),
	}
}

// CreateRequest describes one run to archive.
type CreateRequest struct {
	// Profile governs identity, kept config, tags, and extra files.
	Profile *profile.Profile

	// RawConfig is the full run configuration.
	RawConfig map[string]any

	// ExpRoot is the experiments root directory.
	ExpRoot string

	// InputDir is the original run directory whose artifacts are copied.
	InputDir string
}

// Create resolves the run against the profile, creates the experiment
// directory, copies artifacts, writes the id card, and registers the
// experiment. The sequential counter is scoped to the experiments root.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Experiment, *idcard.Card, error) {
	expRoot, err := filepath.Abs(req.ExpRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve experiments root: %w", err)
	}
	if err := os.MkdirAll(expRoot, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create experiments root: %w", err)
	}

	gen := resolve.GenerationContext{
		Counter: s.counters.Scoped(expRoot),
		UUIDs:   resolve.NewUUIDSource(),
	}
	desc, err := resolve.Resolve(ctx, req.Profile, req.RawConfig, resolve.FilesystemContext{BaseDir: req.InputDir}, gen)
	if err != nil {
		return nil, nil, err
	}

	expDir := filepath.Join(expRoot, desc.RunID)
	if _, err := os.Stat(expDir); err == nil {
		// Identifier collisions (truncated hashes, same-second timestamps)
		// are surfaced to the caller, never resolved silently.
		return nil, nil, fmt.Errorf("experiment %s already exists at %s", desc.RunID, expDir)
	}
	if err := os.MkdirAll(expDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create experiment directory: %w", err)
	}

	if req.InputDir != "" {
		if err := copyArtifacts(req.InputDir, expDir); err != nil {
			return nil, nil, err
		}
	}

	card := idcard.FromDescriptor(desc)
	if err := idcard.Write(expDir, card, req.Profile.IDCardName); err != nil {
		return nil, nil, err
	}

	// Pick up checkpoints that arrived with the copied artifacts.
	card, err = idcard.Refresh(expDir, req.Profile.IDCardName)
	if err != nil {
		return nil, nil, err
	}

	exp := &models.Experiment{
		ID:          desc.RunID,
		Dir:         expDir,
		Description: desc.Description,
		IDMode:      string(req.Profile.IDMode),
		Tags:        desc.Tags,
		Summary:     desc.KeptConfig,
		CreatedAt:   card.CreatedAt,
	}
	if err := s.experiments.Create(ctx, expRoot, exp); err != nil {
		s.logger.Warn().Err(err).Str("dir", expDir).Msg("experiment created on disk but not registered")
		return nil, nil, err
	}

	s.logger.Info().
		Str("id", exp.ID).
		Str("dir", expDir).
		Str("id_mode", exp.IDMode).
		Msg("experiment created")

	return exp, card, nil
}

// Get returns one registered experiment.
func (s *Service) Get(ctx context.Context, expRoot, id string) (*models.Experiment, error) {
	scope, err := filepath.Abs(expRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve experiments root: %w", err)
	}
	return s.experiments.Get(ctx, scope, id)
}

// List returns registered experiments under expRoot matching filters.
func (s *Service) List(ctx context.Context, expRoot string, filters map[string]string) ([]*models.Experiment, error) {
	scope, err := filepath.Abs(expRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve experiments root: %w", err)
	}
	return s.experiments.List(ctx, scope, filters)
}

// DryRunCounter returns a counter for resolution previews: it reports the
// value a real creation would draw next without committing the increment.
func (s *Service) DryRunCounter(expRoot string) resolve.Counter {
	scope, err := filepath.Abs(expRoot)
	if err != nil {
		scope = expRoot
	}
	return peekCounter{repo: s.counters, scope: scope}
}

type peekCounter struct {
	repo  *db.CounterRepository
	scope string
}

func (c peekCounter) Next(ctx context.Context) (int64, error) {
	value, err := c.repo.Peek(ctx, c.scope)
	if err != nil {
		return 0, err
	}
	return value + 1, nil
}

func copyArtifacts(inputDir, expDir string) error {
	for _, sub := range artifactDirs {
		src := filepath.Join(inputDir, sub)
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			continue
		}
		dst := filepath.Join(expDir, sub)
		if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
			return fmt.Errorf("copy %s: %w", sub, err)
		}
	}
	return nil
}
