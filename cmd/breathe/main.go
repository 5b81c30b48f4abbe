// Package main provides the entry point for the breathe CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/breathe/internal/cli"
	"github.com/mrz1836/breathe/internal/signal"
)

// Set at build time via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // ldflags target
	commit  = "none"    //nolint:gochecknoglobals // ldflags target
	date    = "unknown" //nolint:gochecknoglobals // ldflags target
)

func main() {
	h := signal.NewHandler(context.Background())
	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})
	h.Stop()

	if code, ok := h.ExitCode(); ok {
		os.Exit(code)
	}
	os.Exit(cli.ExitCodeForError(err))
}
