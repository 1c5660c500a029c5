package fileutil_test

// Notes:
// - WriteFileAtomic write/close failure branches are not tested: triggering
//   disk write failures is platform-specific.
// - SanitizeFileName cases double as documentation of the naming rules.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-chat2md/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestSanitizeFileName - Title to file name stem
// ---------------------------------------------------------------------------

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain title kept", input: "My chat", want: "My chat"},
		{name: "separators replaced", input: "Q&A: part 1/2", want: "Q&A_ part 1_2"},
		{name: "backslash replaced", input: `a\b`, want: "a_b"},
		{name: "reserved punctuation replaced", input: `a<b>c"d|e?f*g`, want: "a_b_c_d_e_f_g"},
		{name: "control character replaced", input: "a\x01b", want: "a_b"},
		{name: "whitespace collapsed", input: "a \t\n b", want: "a b"},
		{name: "leading and trailing dots and spaces dropped", input: "  ..hidden.. ", want: "hidden"},
		{name: "unicode kept", input: "Résumé 日本", want: "Résumé 日本"},
		{name: "empty uses fallback", input: "", want: "chat"},
		{name: "only dots uses fallback", input: "...", want: "chat"},
		{name: "only spaces uses fallback", input: "   ", want: "chat"},
		{name: "reserved device name prefixed", input: "CON", want: "_CON"},
		{name: "reserved device name case-insensitive", input: "lpt1", want: "_lpt1"},
		{name: "device name as prefix untouched", input: "CONSOLE", want: "CONSOLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.SanitizeFileName(tt.input, "chat")
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName_Truncates(t *testing.T) {
	t.Parallel()

	t.Run("ascii cut at limit", func(t *testing.T) {
		t.Parallel()

		got := fileutil.SanitizeFileName(strings.Repeat("a", 300), "chat")
		if len(got) != fileutil.MaxFileNameBytes {
			t.Errorf("len = %d, want %d", len(got), fileutil.MaxFileNameBytes)
		}
	})

	t.Run("never splits a rune", func(t *testing.T) {
		t.Parallel()

		got := fileutil.SanitizeFileName("a"+strings.Repeat("é", 100), "chat")
		want := "a" + strings.Repeat("é", 99)
		if got != want {
			t.Errorf("len = %d, want %d", len(got), len(want))
		}
	})
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Whole-file replacement
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	if err := fileutil.WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error: %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.md")
	if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("expected error for missing directory")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - File existence check
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()

	// Create a test file
	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	// Create a test directory
	testDir := filepath.Join(tempDir, "testdir")
	if err := os.Mkdir(testDir, 0755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{
			name: "existing file returns true",
			path: testFile,
			want: true,
		},
		{
			name: "directory returns false",
			path: testDir,
			want: false,
		},
		{
			name: "nonexistent path returns false",
			path: filepath.Join(tempDir, "nonexistent"),
			want: false,
		},
		{
			name: "empty path returns false",
			path: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.FileExists(tt.path)
			if got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - File path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "simple name returns false",
			input: "work",
			want:  false,
		},
		{
			name:  "relative path with dot-slash returns true",
			input: "./work.yaml",
			want:  true,
		},
		{
			name:  "parent path returns true",
			input: "../shared/work.yaml",
			want:  true,
		},
		{
			name:  "absolute Unix path returns true",
			input: "/absolute/path.yaml",
			want:  true,
		},
		{
			name:  "Windows path with backslash returns true",
			input: "C:\\configs\\work.yaml",
			want:  true,
		},
		{
			name:  "hyphenated name returns false",
			input: "my-config",
			want:  false,
		},
		{
			name:  "path with subdirectory returns true",
			input: "sub/dir",
			want:  true,
		},
		{
			name:  "empty string returns false",
			input: "",
			want:  false,
		},
		{
			name:  "name with dots but no slash returns false",
			input: "name.with.dots",
			want:  false,
		},
		{
			name:  "underscore name returns false",
			input: "my_config",
			want:  false,
		},
		{
			name:  "single forward slash returns true",
			input: "/",
			want:  true,
		},
		{
			name:  "single backslash returns true",
			input: "\\",
			want:  true,
		},
		{
			name:  "Windows drive letter path returns true",
			input: "D:/Documents/work.yaml",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.IsFilePath(tt.input)
			if got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsURL - URL detection
// ---------------------------------------------------------------------------

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "http URL returns true",
			input: "http://example.com",
			want:  true,
		},
		{
			name:  "https URL returns true",
			input: "https://example.com",
			want:  true,
		},
		{
			name:  "file path returns false",
			input: "/path/to/file",
			want:  false,
		},
		{
			name:  "relative path returns false",
			input: "./file.txt",
			want:  false,
		},
		{
			name:  "empty string returns false",
			input: "",
			want:  false,
		},
		{
			name:  "ftp URL returns false",
			input: "ftp://example.com",
			want:  false,
		},
		{
			name:  "HTTP uppercase returns false",
			input: "HTTP://example.com",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fileutil.IsURL(tt.input)
			if got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
