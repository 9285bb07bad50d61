// Package models defines core data models for the experiment registry.
package models

import (
	"errors"
	"strings"
	"time"
)

// Experiment is a registry row describing one archived run.
type Experiment struct {
	// ID is the run identifier, also the experiment directory name.
	ID string `json:"id"`

	// Dir is the absolute experiment directory path.
	Dir string `json:"dir"`

	// Description comes from the profile.
	Description string `json:"description,omitempty"`

	// IDMode records which identifier strategy produced ID.
	IDMode string `json:"id_mode"`

	// Tags are the profile tags attached at creation.
	Tags []string `json:"tags,omitempty"`

	// Summary is the kept configuration subset.
	Summary map[string]any `json:"summary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks required fields before persistence.
func (e *Experiment) Validate() error {
	if e == nil {
		return errors.New("experiment is required")
	}
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("experiment id is required")
	}
	if strings.TrimSpace(e.Dir) == "" {
		return errors.New("experiment dir is required")
	}
	return nil
}

// SummaryLeaves flattens the kept configuration to dotted leaf paths, the
// shape `ls --filter` matches against.
func (e *Experiment) SummaryLeaves() map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", e.Summary)
	return out
}

func flattenInto(out map[string]any, prefix string, node map[string]any) {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if child, ok := value.(map[string]any); ok {
			flattenInto(out, path, child)
			continue
		}
		out[path] = value
	}
}
