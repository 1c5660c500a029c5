package main

// Notes:
// - Shared fixtures and a buffered Environment for command tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-chat2md/internal/config"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// chatPage is a saved chat page with one user and one assistant message.
const chatPage = `<!DOCTYPE html>
<html><head><title>Go generics</title></head><body>
<div class="text-base"><img src="a.png"><div class="whitespace-pre-wrap">How do I use a_b?</div></div>
<div class="text-base"><div class="whitespace-pre-wrap"><p>Use <b>type</b> params.</p></div></div>
</body></html>`

// emptyPage renders no message blocks.
const emptyPage = `<html><head><title>New chat</title></head><body><main></main></body></html>`

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers with a frozen clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return now },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// writePage writes content to dir/name and returns the path.
func writePage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

// Config aliases the config type for shorter test code.
type Config = config.Config
