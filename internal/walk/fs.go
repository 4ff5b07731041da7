package prowl

import (
	"os"
	"path/filepath"
)

// FS is the set of filesystem collaborators a traversal consumes. The engine
// never touches the filesystem directly, which lets tests substitute failing
// or synthetic trees.
type FS interface {
	// Stat resolves the metadata of one entry.
	Stat(path string) (os.FileInfo, error)

	// ReadDir lists the immediate child names of a directory. Names, not
	// full paths.
	ReadDir(path string) ([]string, error)

	// Join combines a parent path with a child name.
	Join(parent, name string) string
}

// OSFS returns the FS backed by the host filesystem.
func OSFS() FS { return osFS{} }

type osFS struct{}

func (osFS) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }

func (osFS) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}

func (osFS) Join(parent, name string) string { return filepath.Join(parent, name) }
