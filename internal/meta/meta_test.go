package meta

import (
	"runtime"
	"testing"
)

func TestCollect_WithoutModelRepo(t *testing.T) {
	s := Collect("")

	if s.OS != runtime.GOOS {
		t.Fatalf("expected OS %q, got %q", runtime.GOOS, s.OS)
	}
	if s.Arch != runtime.GOARCH {
		t.Fatalf("expected arch %q, got %q", runtime.GOARCH, s.Arch)
	}
	if s.Git != nil {
		t.Fatalf("expected no git info without a model repo, got %+v", s.Git)
	}
}

func TestCollect_NonGitDir(t *testing.T) {
	s := Collect(t.TempDir())

	// A plain directory is not a work tree; git info stays absent instead of
	// failing the snapshot.
	if s.Git != nil {
		t.Fatalf("expected no git info for a non-git dir, got %+v", s.Git)
	}
}
