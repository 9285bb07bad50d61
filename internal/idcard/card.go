// Package idcard reads and writes the id_card.json document that identifies
// an archived experiment directory.
package idcard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/LaurentVidal95/LocalMLManager/internal/meta"
	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
	"github.com/LaurentVidal95/LocalMLManager/internal/resolve"
)

// Files lists the well-known artifacts discovered inside an experiment dir.
type Files struct {
	Checkpoints []string `json:"checkpoints,omitempty"`
	Best        string   `json:"best,omitempty"`
	Wandb       string   `json:"wandb,omitempty"`
	Extra       []string `json:"extra,omitempty"`
}

// Card is the id-card document.
type Card struct {
	ID            string         `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	Description   string         `json:"description,omitempty"`
	ConfigSummary map[string]any `json:"config_summary"`
	Tags          []string       `json:"tags,omitempty"`
	Meta          *meta.Snapshot `json:"meta,omitempty"`
	Files         Files          `json:"files"`
}

// FromDescriptor builds a card from a resolved run descriptor. Metadata is
// attached only when the descriptor carries a generation timestamp, i.e. the
// profile enabled metadata inclusion.
func FromDescriptor(desc *resolve.Descriptor) *Card {
	card := &Card{
		ID:            desc.RunID,
		Description:   desc.Description,
		ConfigSummary: desc.KeptConfig,
		Files:         Files{Extra: desc.ExtraFiles},
	}

	if desc.GeneratedAt != nil {
		card.CreatedAt = *desc.GeneratedAt
		card.Tags = desc.Tags
		card.Meta = meta.Collect(desc.ModelRepo)
	} else {
		card.CreatedAt = time.Now().UTC()
	}

	return card
}

// Write persists the card atomically (temp file + rename) as name inside dir.
func Write(dir string, card *Card, name string) error {
	if name == "" {
		name = profile.DefaultIDCardName
	}

	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return fmt.Errorf("encode id card: %w", err)
	}
	data = append(data, '\n')

	tmp := filepath.Join(dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write id card: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace id card: %w", err)
	}
	return nil
}

// Read loads the card named name from dir.
func Read(dir, name string) (*Card, error) {
	if name == "" {
		name = profile.DefaultIDCardName
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read id card: %w", err)
	}

	var card Card
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("decode id card %s: %w", filepath.Join(dir, name), err)
	}
	return &card, nil
}

// Refresh re-discovers checkpoints and the wandb directory under dir and
// rewrites the card. Used after training has produced artifacts the original
// card could not know about.
func Refresh(dir, name string) (*Card, error) {
	card, err := Read(dir, name)
	if err != nil {
		return nil, err
	}

	if ckpts := FindCheckpoints(dir); len(ckpts) > 0 {
		card.Files.Checkpoints = ckpts
		card.Files.Best = ckpts[0]
	}
	if wandb := FindWandbDir(dir); wandb != "" {
		card.Files.Wandb = wandb
	}

	if err := Write(dir, card, name); err != nil {
		return nil, err
	}
	return card, nil
}
