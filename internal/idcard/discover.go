package idcard

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// checkpointPatterns covers the common training-framework extensions.
var checkpointPatterns = []string{"**/*.ckpt", "**/*.pt", "**/*.pth"}

// FindCheckpoints returns checkpoint files under dir, newest first. Paths are
// relative to dir.
func FindCheckpoints(dir string) []string {
	fsys := os.DirFS(dir)

	type entry struct {
		path  string
		mtime time.Time
	}
	found := make([]entry, 0)
	seen := make(map[string]struct{})

	for _, pattern := range checkpointPatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}
			info, err := fs.Stat(fsys, match)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[match] = struct{}{}
			found = append(found, entry{path: match, mtime: info.ModTime()})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].mtime.After(found[j].mtime)
	})

	out := make([]string, 0, len(found))
	for _, e := range found {
		out = append(out, e.path)
	}
	return out
}

// FindWandbDir locates a wandb log directory under dir, if any. The usual
// location is a top-level "wandb" folder; nested wandb* directories are a
// fallback.
func FindWandbDir(dir string) string {
	direct := filepath.Join(dir, "wandb")
	if info, err := os.Stat(direct); err == nil && info.IsDir() {
		return "wandb"
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, "**/wandb*")
	if err != nil {
		return ""
	}
	for _, match := range matches {
		if info, err := fs.Stat(fsys, match); err == nil && info.IsDir() {
			return match
		}
	}
	return ""
}
