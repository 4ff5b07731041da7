package prowl

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/karrick/godirwalk"
)

// createBenchmarkTree creates a directory structure with the specified depth
// and files per directory.
func createBenchmarkTree(b *testing.B, root string, depth, filesPerDir int) {
	if depth <= 0 {
		return
	}

	for i := 0; i < filesPerDir; i++ {
		filename := filepath.Join(root, fmt.Sprintf("file%02d.txt", i))
		if err := os.WriteFile(filename, []byte("test"), 0644); err != nil {
			b.Fatalf("Failed to create test file: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		subdir := filepath.Join(root, "dir"+string(rune('a'+i)))
		if err := os.Mkdir(subdir, 0755); err != nil {
			b.Fatalf("Failed to create test directory: %v", err)
		}
		createBenchmarkTree(b, subdir, depth-1, filesPerDir)
	}
}

// BenchmarkTraversalComparison compares the prowl engine against the standard
// library's WalkDir and godirwalk on the same tree. The semantics differ (the
// callers here never prune), but the entry counts match.
func BenchmarkTraversalComparison(b *testing.B) {
	tmpDir := b.TempDir()
	createBenchmarkTree(b, tmpDir, 5, 10)

	b.ResetTimer()

	b.Run("prowl.Run", func(b *testing.B) {
		opts := Options{LogLevel: LogLevelError}
		for i := 0; i < b.N; i++ {
			var count int64
			err := RunWithOptions(tmpDir, func(path string, info os.FileInfo) bool {
				atomic.AddInt64(&count, 1)
				return true
			}, opts)
			if err != nil {
				b.Fatalf("Error walking directory: %v", err)
			}
			if count == 0 {
				b.Fatal("No entries visited")
			}
		}
	})

	b.Run("filepath.WalkDir", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			count := 0
			err := filepath.WalkDir(tmpDir, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				count++
				return nil
			})
			if err != nil {
				b.Fatalf("Error walking directory: %v", err)
			}
			if count == 0 {
				b.Fatal("No entries visited")
			}
		}
	})

	b.Run("godirwalk.Walk", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			count := 0
			err := godirwalk.Walk(tmpDir, &godirwalk.Options{
				Callback: func(path string, de *godirwalk.Dirent) error {
					count++
					return nil
				},
				Unsorted: true,
			})
			if err != nil {
				b.Fatalf("Error walking directory: %v", err)
			}
			if count == 0 {
				b.Fatal("No entries visited")
			}
		}
	})
}

// BenchmarkPruneWorker benchmarks the glob-based pruning decision.
func BenchmarkPruneWorker(b *testing.B) {
	dir := b.TempDir()
	info, err := os.Stat(dir)
	if err != nil {
		b.Fatalf("Failed to stat temp dir: %v", err)
	}

	worker := PruneWorker([]string{".git", "node_modules", "vendor", "*.bak"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		worker(filepath.Join(dir, "src"), info)
	}
}

// BenchmarkWideFanOut benchmarks a single directory with many children.
func BenchmarkWideFanOut(b *testing.B) {
	tmpDir := b.TempDir()
	for i := 0; i < 1000; i++ {
		name := filepath.Join(tmpDir, fmt.Sprintf("file%04d", i))
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			b.Fatalf("Failed to create test file: %v", err)
		}
	}

	opts := Options{LogLevel: LogLevelError}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := RunWithOptions(tmpDir, func(string, os.FileInfo) bool { return true }, opts); err != nil {
			b.Fatalf("Error walking directory: %v", err)
		}
	}
}
