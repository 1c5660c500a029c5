package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config and CLI,
//   plus wrapped errors to verify the errors.Is() chain.
// - hintFor / triedPaths: we test which errors carry hints.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	chat2md "github.com/alnah/go-chat2md"
	"github.com/alnah/go-chat2md/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// No messages (exit 5)
		{"no messages", chat2md.ErrNoMessages, ExitNoMessages},
		{"wrapped no messages", fmt.Errorf("a.html: %w", chat2md.ErrNoMessages), ExitNoMessages},

		// Browser errors (exit 4)
		{"browser connect", chat2md.ErrBrowserConnect, ExitBrowser},
		{"page create", chat2md.ErrPageCreate, ExitBrowser},
		{"page load", chat2md.ErrPageLoad, ExitBrowser},
		{"page query", chat2md.ErrPageQuery, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("acquiring transcript: %w", chat2md.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"parse html", chat2md.ErrParseHTML, ExitIO},
		{"write document", chat2md.ErrWriteDocument, ExitIO},
		{"write preview", chat2md.ErrWritePreview, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("discovering files: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config too large", config.ErrConfigTooLarge, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"invalid selector", chat2md.ErrInvalidSelector, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid url", ErrInvalidURL, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"wrapped config", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Exit code values follow conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitNoMessages}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d conflicts with shell-reserved range", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hints attached to errors
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"browser connect", chat2md.ErrBrowserConnect, "--control-url"},
		{"deadline", fmt.Errorf("x: %w", context.DeadlineExceeded), "--timeout"},
		{"config not found", fmt.Errorf("%w: tried a.yaml, /home/u/.config/go-chat2md/a.yaml", config.ErrConfigNotFound), "create /home/u/.config/go-chat2md/a.yaml"},
		{"write document", chat2md.ErrWriteDocument, "writable"},
		{"invalid selector", chat2md.ErrInvalidSelector, "CSS syntax"},
		{"no hint", errors.New("plain"), ""},
		{"no messages handled by notice", chat2md.ErrNoMessages, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}

func TestTriedPaths(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading config: %w", fmt.Errorf("%w: tried work.yaml, work.yml", config.ErrConfigNotFound))
	got := triedPaths(err)
	if len(got) != 2 || got[0] != "work.yaml" || got[1] != "work.yml" {
		t.Errorf("triedPaths() = %v", got)
	}

	if got := triedPaths(errors.New("other")); got != nil {
		t.Errorf("triedPaths(other) = %v, want nil", got)
	}
}
