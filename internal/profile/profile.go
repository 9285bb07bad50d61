// Package profile defines experiment profile schemas and helpers.
//
// A profile is a declarative description of how a run's identity, retained
// configuration subset, tags, and auxiliary files are derived when an
// experiment is created. Profiles carry no logic themselves; they are
// interpreted by the resolution engine in internal/resolve.
package profile

import (
	"fmt"
	"strings"
)

// IDMode selects the run-identifier generation strategy.
type IDMode string

const (
	IDModeSequential IDMode = "sequential"
	IDModeHash       IDMode = "hash"
	IDModeTimestamp  IDMode = "timestamp"
	IDModeUUID       IDMode = "uuid"
)

var validIDModes = map[IDMode]struct{}{
	IDModeSequential: {},
	IDModeHash:       {},
	IDModeTimestamp:  {},
	IDModeUUID:       {},
}

// ValidIDMode reports whether mode is part of the closed enumeration.
func ValidIDMode(mode IDMode) bool {
	_, ok := validIDModes[mode]
	return ok
}

// MaxHashLength is the hex length of the underlying SHA-1 digest; hash
// identifiers are truncations of it.
const MaxHashLength = 40

// DefaultIDCardName is the id-card file written into each experiment dir.
const DefaultIDCardName = "id_card.json"

// Profile is an experiment profile file model.
type Profile struct {
	// Description is a free-text label with no semantic effect.
	Description string `yaml:"description" toml:"description" json:"description"`

	// KeepKeys lists dotted key paths (e.g. "data.name") of the raw run
	// configuration to retain in the config summary. Empty keeps everything.
	KeepKeys []string `yaml:"keep_keys" toml:"keep_keys" json:"keep_keys"`

	// IDMode selects how run identifiers are generated.
	IDMode IDMode `yaml:"id_mode" toml:"id_mode" json:"id_mode"`

	// HashLength truncates hash identifiers; meaningful only for id_mode hash.
	HashLength int `yaml:"hash_length" toml:"hash_length" json:"hash_length"`

	// IncludeMeta attaches derived metadata (timestamp, tags, host/git info)
	// to resolved runs.
	IncludeMeta bool `yaml:"include_meta" toml:"include_meta" json:"include_meta"`

	// Tags are free-text labels to help filtering experiments.
	Tags []string `yaml:"tags" toml:"tags" json:"tags"`

	// ExtraFiles are glob patterns, relative to a run's working directory,
	// of auxiliary files to list in the id card.
	ExtraFiles []string `yaml:"extra_files" toml:"extra_files" json:"extra_files"`

	// ModelRepo is an optional path to the model source repository. Passed
	// through opaquely; used only for best-effort git metadata.
	ModelRepo string `yaml:"model_repo" toml:"model_repo" json:"model_repo,omitempty"`

	// IDCardName is the id-card file name written into the experiment dir.
	IDCardName string `yaml:"id_card_name" toml:"id_card_name" json:"id_card_name"`

	// Source is the file path the profile was loaded from, if any.
	Source string `yaml:"-" toml:"-" json:"-"`
}

// Default returns a profile with the built-in defaults applied.
func Default() Profile {
	return Profile{
		IDMode:      IDModeHash,
		HashLength:  8,
		IncludeMeta: true,
		IDCardName:  DefaultIDCardName,
	}
}

// Validate checks the profile shape. It returns an *ErrorList collecting
// every violation, or nil when the profile is valid.
func (p *Profile) Validate() error {
	list := &ErrorList{}
	if p == nil {
		list.Add(ProfileError{Code: ErrCodeMissingField, Message: "profile is required"})
		return list
	}

	path := p.Source

	if !ValidIDMode(p.IDMode) {
		list.Add(ProfileError{
			Code:    ErrCodeUnknownIDMode,
			Message: fmt.Sprintf("unknown id_mode %q", string(p.IDMode)),
			Path:    path,
			Field:   "id_mode",
		})
	}

	if p.IDMode == IDModeHash {
		if p.HashLength < 1 || p.HashLength > MaxHashLength {
			list.Add(ProfileError{
				Code:    ErrCodeInvalidHashLength,
				Message: "hash_length must be between 1 and 40",
				Path:    path,
				Field:   "hash_length",
			})
		}
	}

	seen := make(map[string]struct{}, len(p.KeepKeys))
	for _, key := range p.KeepKeys {
		if strings.TrimSpace(key) == "" {
			list.Add(ProfileError{
				Code:    ErrCodeBlankKeepKey,
				Message: "keep_keys entries must be non-empty",
				Path:    path,
				Field:   "keep_keys",
			})
			continue
		}
		if _, exists := seen[key]; exists {
			list.Add(ProfileError{
				Code:    ErrCodeDuplicateKeepKey,
				Message: fmt.Sprintf("duplicate keep key %q", key),
				Path:    path,
				Field:   "keep_keys",
				Key:     key,
			})
			continue
		}
		seen[key] = struct{}{}
	}

	if list.Empty() {
		return nil
	}
	return list
}
