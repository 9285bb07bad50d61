package meta

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitInfo identifies the model repository state at archive time.
type GitInfo struct {
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	Remote string `json:"remote,omitempty"`
}

// gitInfo reads commit/branch/remote from a repository path. Returns nil when
// the path is not a git work tree or git is unavailable.
func gitInfo(repo string) *GitInfo {
	if _, err := os.Stat(filepath.Join(repo, ".git")); err != nil {
		return nil
	}

	info := &GitInfo{
		Commit: gitOutput(repo, "rev-parse", "HEAD"),
		Branch: gitOutput(repo, "rev-parse", "--abbrev-ref", "HEAD"),
		Remote: gitOutput(repo, "config", "--get", "remote.origin.url"),
	}
	if info.Commit == "" && info.Branch == "" && info.Remote == "" {
		return nil
	}
	return info
}

func gitOutput(repo string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = repo
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
