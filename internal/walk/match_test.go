package prowl

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/unicode/norm"
)

func statDir(t *testing.T) (string, os.FileInfo) {
	t.Helper()
	dir := t.TempDir()
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Failed to stat temp dir: %v", err)
	}
	return dir, info
}

// TestPruneWorker tests glob-based directory pruning.
func TestPruneWorker(t *testing.T) {
	dir, dirInfo := statDir(t)
	file := filepath.Join(dir, "vendor")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	fileInfo, err := os.Stat(file)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}

	tests := []struct {
		name     string
		patterns []string
		path     string
		info     os.FileInfo
		expected bool
	}{
		{
			name:     "No patterns",
			patterns: nil,
			path:     filepath.Join(dir, "vendor"),
			info:     dirInfo,
			expected: true,
		},
		{
			name:     "Exact match prunes directory",
			patterns: []string{"vendor"},
			path:     filepath.Join(dir, "vendor"),
			info:     dirInfo,
			expected: false,
		},
		{
			name:     "Glob match prunes directory",
			patterns: []string{".*"},
			path:     filepath.Join(dir, ".git"),
			info:     dirInfo,
			expected: false,
		},
		{
			name:     "Non-matching directory survives",
			patterns: []string{"vendor", ".*"},
			path:     filepath.Join(dir, "src"),
			info:     dirInfo,
			expected: true,
		},
		{
			name:     "Files are never pruned",
			patterns: []string{"vendor"},
			path:     file,
			info:     fileInfo,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := PruneWorker(tt.patterns)
			if got := worker(tt.path, tt.info); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestPruneWorkerNormalizesNames tests that decomposed and precomposed
// spellings of the same name compare equal.
func TestPruneWorkerNormalizesNames(t *testing.T) {
	_, dirInfo := statDir(t)

	precomposed := "café"
	decomposed := norm.NFD.String(precomposed)
	if precomposed == decomposed {
		t.Fatal("Fixture names unexpectedly identical")
	}

	worker := PruneWorker([]string{precomposed})
	if worker(filepath.Join("x", decomposed), dirInfo) {
		t.Errorf("Decomposed spelling was not pruned")
	}
}

// TestNameMatch tests base-name and path-component matching.
func TestNameMatch(t *testing.T) {
	tests := []struct {
		pattern  string
		path     string
		expected bool
	}{
		{"*.go", "/src/main.go", true},
		{"*.go", "/src/main.txt", false},
		{"main*", "/src/main.go", true},
		{"src", "/src/main.go", true},
		{"missing", "/src/main.go", false},
	}

	for _, tt := range tests {
		if got := nameMatch(tt.pattern, tt.path); got != tt.expected {
			t.Errorf("nameMatch(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.expected)
		}
	}
}

// TestIsHidden tests hidden-entry detection.
func TestIsHidden(t *testing.T) {
	if !isHidden("/a/.git") {
		t.Errorf("Expected .git to be hidden")
	}
	if isHidden("/a/src") {
		t.Errorf("Expected src to be visible")
	}
}

// TestFormatMessage tests the placeholder template rendering.
func TestFormatMessage(t *testing.T) {
	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := WatchMessage{
		Path:  "/data/file.txt",
		Name:  "file.txt",
		Dir:   "/data",
		Size:  42,
		Time:  when,
		Event: EventModify,
	}

	got := formatMessage("{event}: {base} in {dir} ({size} bytes) at {time}", msg)
	want := "modify: file.txt in /data (42 bytes) at " + when.Format(time.RFC3339)
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := formatMessage(`{""}`, msg); got != `"/data/file.txt"` {
		t.Errorf("Quoted placeholder rendered %q", got)
	}
}
