package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadYAMLAppliesDefaults(t *testing.T) {
	path := writeProfile(t, "base.yaml", `
description: resnet baseline
keep_keys:
  - data.name
  - optimizer.lr
tags: [baseline]
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Description != "resnet baseline" {
		t.Fatalf("unexpected description %q", p.Description)
	}
	if p.IDMode != IDModeHash {
		t.Fatalf("expected default id_mode hash, got %q", p.IDMode)
	}
	if p.HashLength != 8 {
		t.Fatalf("expected default hash_length 8, got %d", p.HashLength)
	}
	if !p.IncludeMeta {
		t.Fatalf("expected include_meta to default to true")
	}
	if p.IDCardName != DefaultIDCardName {
		t.Fatalf("expected default id card name, got %q", p.IDCardName)
	}
	if p.Source != path {
		t.Fatalf("expected source %q, got %q", path, p.Source)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeProfile(t, "seq.yml", `
id_mode: sequential
include_meta: false
extra_files:
  - "logs/*.log"
  - "best*.txt"
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.IDMode != IDModeSequential {
		t.Fatalf("expected sequential, got %q", p.IDMode)
	}
	if p.IncludeMeta {
		t.Fatalf("expected include_meta false")
	}
	if len(p.ExtraFiles) != 2 {
		t.Fatalf("expected 2 extra file patterns, got %v", p.ExtraFiles)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeProfile(t, "hash.toml", `
description = "uuid runs"
id_mode = "uuid"
tags = ["sweep", "gpu"]
model_repo = "~/src/model"
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.IDMode != IDModeUUID {
		t.Fatalf("expected uuid, got %q", p.IDMode)
	}
	if p.ModelRepo != "~/src/model" {
		t.Fatalf("expected model_repo passthrough, got %q", p.ModelRepo)
	}
}

func TestLoadEmptyFileIsAllDefaults(t *testing.T) {
	path := writeProfile(t, "empty.yaml", "")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.IDMode != IDModeHash || p.HashLength != 8 {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeProfile(t, "typo.yaml", "keep_keyz: [data.name]\n")

	_, err := Load(path)
	var list *ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %T", err)
	}
	if !list.Has(ErrCodeParse) {
		t.Fatalf("expected parse error, got %v", list)
	}
	if list.Errors[0].Path != path {
		t.Fatalf("expected path %q in error, got %q", path, list.Errors[0].Path)
	}
}

func TestLoadValidatesProfile(t *testing.T) {
	path := writeProfile(t, "bad.yaml", `
id_mode: carrier-pigeon
keep_keys:
  - data.name
  - data.name
  - " "
`)

	_, err := Load(path)
	var list *ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %T", err)
	}
	for _, code := range []string{ErrCodeUnknownIDMode, ErrCodeDuplicateKeepKey, ErrCodeBlankKeepKey} {
		if !list.Has(code) {
			t.Fatalf("expected %s in %v", code, list)
		}
	}
}

func TestValidateHashLengthBounds(t *testing.T) {
	for _, tc := range []struct {
		length int
		valid  bool
	}{
		{1, true},
		{8, true},
		{40, true},
		{0, false},
		{41, false},
		{999, false},
	} {
		p := Default()
		p.HashLength = tc.length
		err := p.Validate()
		if tc.valid && err != nil {
			t.Fatalf("length %d: unexpected error %v", tc.length, err)
		}
		if !tc.valid {
			var list *ErrorList
			if !errors.As(err, &list) || !list.Has(ErrCodeInvalidHashLength) {
				t.Fatalf("length %d: expected invalid hash length error, got %v", tc.length, err)
			}
		}
	}
}

func TestValidateHashLengthIgnoredForOtherModes(t *testing.T) {
	p := Default()
	p.IDMode = IDModeTimestamp
	p.HashLength = 999
	if err := p.Validate(); err != nil {
		t.Fatalf("hash_length must be ignored outside hash mode: %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.yaml":     "description: second\n",
		"a.toml":     "description = \"first\"\n",
		"notes.txt":  "not a profile\n",
		"c.disabled": "ignored\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	profiles, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].Description != "first" || profiles[1].Description != "second" {
		t.Fatalf("expected name-sorted profiles, got %q then %q",
			profiles[0].Description, profiles[1].Description)
	}
}

func TestLoadDirMissingIsEmpty(t *testing.T) {
	profiles, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no profiles, got %d", len(profiles))
	}
}
