// Package resolve implements the profile resolution and run-identification
// engine: given a profile, a raw run configuration, and a filesystem
// snapshot, it produces a run identifier, the kept configuration subset, the
// discovered auxiliary files, and the attached tag/metadata bundle.
//
// The engine is pure. It never writes to the filesystem; glob expansion is
// its only (read-only) I/O. Persistence of the result, of the sequential
// counter, and any collision retry policy belong to the caller.
package resolve

import (
	"context"
	"time"

	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

// FilesystemContext points the artifact collector at a run's working
// directory. A zero value disables collection only when the profile lists no
// extra file patterns.
type FilesystemContext struct {
	// BaseDir is the run directory extra_files patterns are expanded under.
	BaseDir string
}

// Descriptor is the engine's sole output: everything an orchestrator needs
// to archive one run.
type Descriptor struct {
	RunID       string         `json:"run_id"`
	Description string         `json:"description,omitempty"`
	KeptConfig  map[string]any `json:"kept_config"`
	Tags        []string       `json:"tags,omitempty"`
	ExtraFiles  []string       `json:"extra_files"`
	ModelRepo   string         `json:"model_repo,omitempty"`

	// GeneratedAt is set only when the profile enables metadata inclusion.
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// Resolve validates the profile and runs the pipeline: key filtering,
// identifier generation, artifact collection. Any failure aborts the call;
// a partial descriptor is never returned.
func Resolve(ctx context.Context, p *profile.Profile, rawConfig map[string]any, fsCtx FilesystemContext, gen GenerationContext) (*Descriptor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	kept, err := FilterConfig(rawConfig, p.KeepKeys)
	if err != nil {
		return nil, err
	}

	gen.RawConfig = rawConfig
	if gen.HashLength == 0 {
		gen.HashLength = p.HashLength
	}
	runID, err := GenerateID(ctx, p.IDMode, gen)
	if err != nil {
		return nil, err
	}

	extraFiles := []string{}
	if len(p.ExtraFiles) > 0 {
		extraFiles, err = CollectArtifacts(p.ExtraFiles, fsCtx.BaseDir)
		if err != nil {
			return nil, err
		}
	}

	desc := &Descriptor{
		RunID:       runID,
		Description: p.Description,
		KeptConfig:  kept,
		ExtraFiles:  extraFiles,
		ModelRepo:   p.ModelRepo,
	}

	if p.IncludeMeta {
		now := time.Now().UTC()
		if gen.Now != nil {
			now = gen.Now().UTC()
		}
		desc.GeneratedAt = &now
		desc.Tags = dedupeTags(p.Tags)
	}

	return desc, nil
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
