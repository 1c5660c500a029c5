package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func withContainer(t *testing.T, in bool) {
	t.Helper()

	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		ci          string
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{"in CI", false, "true", "", "", true, true},
		{"in Docker", true, "", "", "", true, true},
		{"sandbox already disabled", true, "", "1", "", false, true},
		{"browser bin already set", false, "", "", "/usr/bin/chrome", false, false},
		{"all configured", true, "true", "1", "/usr/bin/chrome", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "")
			t.Setenv("GITLAB_CI", "")
			t.Setenv("JENKINS_URL", "")
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", hint)
			}
			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("sandbox hint = %v, want %v: %q", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("browser bin hint = %v, want %v: %q", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "--control-url") {
				t.Errorf("expected --control-url suggestion: %q", hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		contains string
		absent   string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
			absent:   "create",
		},
		{
			name:     "user path suggested",
			paths:    []string{"foo.yaml", "/home/u/.config/go-chat2md/foo.yaml"},
			contains: "create /home/u/.config/go-chat2md/foo.yaml",
		},
		{
			name:     "local paths only",
			paths:    []string{"foo.yaml", "foo.yml"},
			contains: "--config",
			absent:   "create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
			if tt.absent != "" && strings.Contains(hint, tt.absent) {
				t.Errorf("hint should not contain %q, got %q", tt.absent, hint)
			}
		})
	}
}

func TestStaticHints(t *testing.T) {
	tests := []struct {
		name     string
		hint     string
		contains string
	}{
		{"timeout", ForTimeout(), "--timeout"},
		{"output directory", ForOutputDirectory(), "parent directory"},
		{"no messages", ForNoMessages(), "--message-selector"},
		{"invalid selector", ForInvalidSelector(), "CSS syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint format inconsistent: %q", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, tt.hint)
			}
		})
	}
}

func TestFormatHints_Empty(t *testing.T) {
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
