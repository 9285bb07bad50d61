// Package meta snapshots run environment metadata for id cards.
package meta

import (
	"os"
	"os/user"
	"runtime"
)

// Snapshot captures who/where an experiment was archived from. Everything is
// best effort; missing pieces stay empty rather than failing the run.
type Snapshot struct {
	User string   `json:"user,omitempty"`
	Host string   `json:"host,omitempty"`
	OS   string   `json:"os,omitempty"`
	Arch string   `json:"arch,omitempty"`
	Git  *GitInfo `json:"git,omitempty"`
}

// Collect gathers a metadata snapshot. When modelRepo names a git work tree,
// commit/branch/remote are included.
func Collect(modelRepo string) *Snapshot {
	s := &Snapshot{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if u, err := user.Current(); err == nil {
		s.User = u.Username
	}
	if host, err := os.Hostname(); err == nil {
		s.Host = host
	}
	if modelRepo != "" {
		s.Git = gitInfo(modelRepo)
	}

	return s
}
