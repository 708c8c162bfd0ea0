// ABOUTME: CLI entry point for popgrid
// ABOUTME: Builds the cobra command tree and exits non-zero on error

package main

import (
	"fmt"
	"os"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/popgrid/internal/termfix"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	root := newRootCmd(buildInfo{Version: version, Commit: commit, Date: date}, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
