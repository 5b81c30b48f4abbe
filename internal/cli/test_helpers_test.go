package cli

// This file contains test utilities for the CLI tests.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/breathe/internal/config"
)

const validPatternYAML = `name: Slow Box
type: 4-phase
inhale: 5
holdTop: 5
exhale: 5
holdBottom: 5
level: intermediate
category: focus
description: A slower box.
`

const invalidPatternYAML = `name: Too Long
type: 3-phase
inhale: 4
holdTop: 90
exhale: 6
level: advanced
category: focus
description: Hold is past the limit.
`

const warningPatternYAML = `name: Long Exhale
type: 3-phase
inhale: 4
holdTop: 0
exhale: 40
level: advanced
category: sleep
description: Valid but slow.
`

// isolate points the breathe home at a temp dir and moves into an empty
// project dir, so tests never read the developer's configuration.
// Tests using it cannot run in parallel.
func isolate(t *testing.T) (home, project string) {
	t.Helper()

	home = t.TempDir()
	project = t.TempDir()
	t.Setenv(config.HomeEnvVar, home)
	t.Chdir(project)
	t.Cleanup(CloseLogFile)
	return home, project
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// executeRoot runs the root command with args and returns stdout and stderr.
func executeRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
