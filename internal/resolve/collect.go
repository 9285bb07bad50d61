package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectArtifacts expands glob patterns against the filesystem rooted at
// baseDir and returns the merged, deduplicated match list. Paths are
// slash-separated and relative to baseDir, in first-match order. Patterns
// support *, **, ? and character classes. A pattern with no matches is not
// an error.
//
// Patterns are configuration-supplied and not trusted: absolute patterns and
// patterns reaching outside baseDir via ".." are rejected.
func CollectArtifacts(patterns []string, baseDir string) ([]string, error) {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, &Error{
			Code:    ErrCodeBaseDirNotFound,
			Message: "base directory not found: " + baseDir,
		}
	}

	fsys := os.DirFS(baseDir)
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		if escapesBase(pattern) {
			return nil, &Error{
				Code:    ErrCodePatternEscapesBase,
				Pattern: pattern,
				Message: "pattern escapes the base directory",
			}
		}

		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, &Error{
					Code:    ErrCodeBadPattern,
					Pattern: pattern,
					Message: "malformed glob pattern",
				}
			}
			return nil, err
		}

		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			out = append(out, match)
		}
	}

	return out, nil
}

func escapesBase(pattern string) bool {
	if filepath.IsAbs(pattern) || strings.HasPrefix(filepath.ToSlash(pattern), "/") {
		return true
	}
	for _, segment := range strings.Split(filepath.ToSlash(pattern), "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}
