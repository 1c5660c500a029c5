package main

// Notes:
// - run: we test dispatch and exit codes for every command without a
//   browser; live fetches are covered by the integration test.
// - looksLikeHTML / hasFlag: we test argument sniffing.
// - newLogger: we test the level chosen for quiet and verbose.
// - reportError: we test that hints are appended and that the
//   no-messages case stays silent (the notice prints it).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chat2md "github.com/alnah/go-chat2md"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, ExitUsage, "", "Usage: chat2md"},
		{"version", []string{"version"}, ExitSuccess, "go-chat2md " + Version, ""},
		{"--version", []string{"--version"}, ExitSuccess, "go-chat2md", ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"--help", []string{"--help"}, ExitSuccess, "convert", ""},
		{"help convert", []string{"help", "convert"}, ExitSuccess, "chat2md convert <input>", ""},
		{"help fetch", []string{"help", "fetch"}, ExitSuccess, "--control-url", ""},
		{"help unknown", []string{"help", "bogus"}, ExitUsage, "", "Unknown command: bogus"},
		{"unknown command", []string{"bogus"}, ExitUsage, "", "unknown command: bogus"},
		{"convert bad flag", []string{"convert", "--bogus"}, ExitUsage, "", "unknown flag"},
		{"convert --help", []string{"convert", "--help"}, ExitSuccess, "", "Usage: chat2md convert"},
		{"fetch without url", []string{"fetch"}, ExitIO, "", "no input specified"},
		{"fetch bad url", []string{"fetch", "example.com"}, ExitUsage, "", "invalid page URL"},
		{"bad workers", []string{"convert", "-w", "99", "x.html"}, ExitUsage, "", "invalid worker count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := run(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("run(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRun_BareHTMLArgumentConverts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := writePage(t, dir, "saved.html", chatPage)

	env, stdout, stderr := testEnv()
	code := run(context.Background(), []string{page}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}

	out := filepath.Join(dir, "Go generics.md")
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected %s: %v", out, err)
	}
	if !strings.Contains(stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q, want Created line", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeHTML - Saved page detection
// ---------------------------------------------------------------------------

func TestLooksLikeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"chat.html", true},
		{"chat.HTM", true},
		{"dir/page.htm", true},
		{"chat.md", false},
		{"convert", false},
		{"html", false},
	}

	for _, tt := range tests {
		if got := looksLikeHTML(tt.arg); got != tt.want {
			t.Errorf("looksLikeHTML(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHasFlag - Pre-parse flag sniffing
// ---------------------------------------------------------------------------

func TestHasFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short", []string{"convert", "-v", "x.html"}, true},
		{"long", []string{"fetch", "--verbose"}, true},
		{"absent", []string{"convert", "x.html"}, false},
		{"after terminator", []string{"convert", "--", "-v"}, false},
	}

	for _, tt := range tests {
		if got := hasFlag(tt.args, "-v", "--verbose"); got != tt.want {
			t.Errorf("%s: hasFlag = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		quiet, verbose bool
		enabled        slog.Level
		disabled       slog.Level
	}{
		{"default", false, false, slog.LevelInfo, slog.LevelDebug},
		{"verbose", false, true, slog.LevelDebug, slog.LevelDebug - 1},
		{"quiet", true, false, slog.LevelError, slog.LevelWarn},
		{"quiet wins", true, true, slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		env, _, _ := testEnv()
		l := newLogger(env.Stderr, tt.quiet, tt.verbose)
		ctx := context.Background()
		if !l.Enabled(ctx, tt.enabled) {
			t.Errorf("%s: level %v should be enabled", tt.name, tt.enabled)
		}
		if l.Enabled(ctx, tt.disabled) {
			t.Errorf("%s: level %v should be disabled", tt.name, tt.disabled)
		}
	}
}

// ---------------------------------------------------------------------------
// TestReportError - Error output and exit code
// ---------------------------------------------------------------------------

func TestReportError(t *testing.T) {
	t.Parallel()

	t.Run("prints error with hint", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		err := fmt.Errorf("bad: %w", chat2md.ErrInvalidSelector)
		if code := reportError(env, err); code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
		if !strings.HasPrefix(stderr.String(), "Error: bad: invalid selector") {
			t.Errorf("stderr = %q", stderr.String())
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr should carry a hint, got %q", stderr.String())
		}
	})

	t.Run("no messages stays silent", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		err := fmt.Errorf("page.html: %w", chat2md.ErrNoMessages)
		if code := reportError(env, err); code != ExitNoMessages {
			t.Errorf("code = %d, want %d", code, ExitNoMessages)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", stderr.String())
		}
	})

	t.Run("general error", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		if code := reportError(env, errors.New("boom")); code != ExitGeneral {
			t.Errorf("code = %d, want %d", code, ExitGeneral)
		}
	})
}

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}
