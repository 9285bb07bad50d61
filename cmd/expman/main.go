// Package main is the entry point for the expman CLI. expman archives
// finished ML training runs as experiment directories with a stable
// identity, an id-card summary, and a searchable registry.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/LaurentVidal95/LocalMLManager/internal/cli"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
