package main

// Notes:
// - This file contains test helpers used across the command tests.
// - These are not functions under test themselves, but supporting infrastructure.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fixedNow is the clock of every test environment: Wednesday 2026-03-04.
var fixedNow = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

// testEnv is an Environment with captured output and a private variable set.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
}

// newTestEnv returns an environment that never reads the real process
// environment. The preset store lives in a temp directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars: map[string]string{
			"HANDSCRIPT_PRESETS": filepath.Join(t.TempDir(), "presets.db"),
		},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdin:  strings.NewReader(""),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return te
}

// run invokes the CLI with args after the program name.
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"handscript"}, args...), te.Environment)
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// listFiles returns the sorted base names of the files in dir.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
