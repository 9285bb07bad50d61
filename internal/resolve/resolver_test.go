package resolve

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/LaurentVidal95/LocalMLManager/internal/profile"
)

func validProfile() *profile.Profile {
	p := profile.Default()
	p.Description = "resnet sweep"
	p.KeepKeys = []string{"data.name", "optimizer.lr"}
	p.Tags = []string{"baseline", "cifar", "baseline"}
	return &p
}

func TestResolveHashProfile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "logs/train.log")

	p := validProfile()
	p.ExtraFiles = []string{"logs/*.log"}

	desc, err := Resolve(context.Background(), p, sampleConfig(), FilesystemContext{BaseDir: dir}, GenerationContext{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(desc.RunID) != len("exp_")+8 {
		t.Fatalf("unexpected run id %q", desc.RunID)
	}
	wantKept := map[string]any{
		"data":      map[string]any{"name": "cifar10"},
		"optimizer": map[string]any{"lr": 0.001},
	}
	if !reflect.DeepEqual(desc.KeptConfig, wantKept) {
		t.Fatalf("expected kept config %v, got %v", wantKept, desc.KeptConfig)
	}
	if !reflect.DeepEqual(desc.Tags, []string{"baseline", "cifar"}) {
		t.Fatalf("expected deduplicated tags, got %v", desc.Tags)
	}
	if !reflect.DeepEqual(desc.ExtraFiles, []string{"logs/train.log"}) {
		t.Fatalf("expected extra files, got %v", desc.ExtraFiles)
	}
	if desc.GeneratedAt == nil {
		t.Fatalf("expected generated_at with include_meta enabled")
	}
}

func TestResolveWithoutMeta(t *testing.T) {
	p := validProfile()
	p.IncludeMeta = false

	desc, err := Resolve(context.Background(), p, sampleConfig(), FilesystemContext{}, GenerationContext{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if desc.GeneratedAt != nil {
		t.Fatalf("expected no generated_at with include_meta disabled")
	}
	if len(desc.Tags) != 0 {
		t.Fatalf("expected no tags with include_meta disabled, got %v", desc.Tags)
	}
}

func TestResolveUnknownIDModeFailsBeforeAnyWork(t *testing.T) {
	p := validProfile()
	p.IDMode = profile.IDMode("bogus")

	desc, err := Resolve(context.Background(), p, sampleConfig(), FilesystemContext{}, GenerationContext{})
	if desc != nil {
		t.Fatalf("expected no descriptor, got %+v", desc)
	}

	var list *profile.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected profile.ErrorList, got %T", err)
	}
	if !list.Has(profile.ErrCodeUnknownIDMode) {
		t.Fatalf("expected %s, got %v", profile.ErrCodeUnknownIDMode, list)
	}
}

func TestResolveInvalidHashLengthFailsValidation(t *testing.T) {
	p := validProfile()
	p.HashLength = 999

	desc, err := Resolve(context.Background(), p, sampleConfig(), FilesystemContext{}, GenerationContext{})
	if desc != nil {
		t.Fatalf("expected no descriptor, got %+v", desc)
	}

	var list *profile.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected profile.ErrorList, got %T", err)
	}
	if !list.Has(profile.ErrCodeInvalidHashLength) {
		t.Fatalf("expected %s, got %v", profile.ErrCodeInvalidHashLength, list)
	}
}

func TestResolveDuplicateKeepKeysFailsValidation(t *testing.T) {
	p := validProfile()
	p.KeepKeys = []string{"data.name", "data.name"}

	_, err := Resolve(context.Background(), p, sampleConfig(), FilesystemContext{}, GenerationContext{})
	var list *profile.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected profile.ErrorList, got %T", err)
	}
	if !list.Has(profile.ErrCodeDuplicateKeepKey) {
		t.Fatalf("expected %s, got %v", profile.ErrCodeDuplicateKeepKey, list)
	}
}

func TestResolveComponentFailurePropagates(t *testing.T) {
	p := validProfile()
	p.ExtraFiles = []string{"../*"}

	desc, err := Resolve(context.Background(), p, sampleConfig(), FilesystemContext{BaseDir: t.TempDir()}, GenerationContext{})
	if desc != nil {
		t.Fatalf("expected no partial descriptor, got %+v", desc)
	}

	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if rerr.Code != ErrCodePatternEscapesBase {
		t.Fatalf("expected %s, got %s", ErrCodePatternEscapesBase, rerr.Code)
	}
}

func TestResolveNoPatternsSkipsCollection(t *testing.T) {
	// With no extra_files patterns the base dir is never consulted, so an
	// empty FilesystemContext is fine.
	desc, err := Resolve(context.Background(), validProfile(), sampleConfig(), FilesystemContext{}, GenerationContext{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(desc.ExtraFiles) != 0 {
		t.Fatalf("expected no extra files, got %v", desc.ExtraFiles)
	}
}
