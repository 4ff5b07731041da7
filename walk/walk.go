package walk

import (
	"context"

	internal "github.com/TFMV/prowl/internal/walk"
)

// Re-export the core types from the internal package.
type (
	// WorkerFunc decides whether traversal continues beneath an entry.
	WorkerFunc = internal.WorkerFunc

	// CompletionFunc receives the single terminal report of a traversal.
	CompletionFunc = internal.CompletionFunc

	// Options configures a traversal.
	Options = internal.Options

	// FS is the set of filesystem collaborators a traversal consumes.
	FS = internal.FS

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// Watch types.
	WatchEvent   = internal.WatchEvent
	WatchOptions = internal.WatchOptions
	WatchMessage = internal.WatchMessage
	WatchResult  = internal.WatchResult
	WatchHandler = internal.WatchHandler
)

// Re-export the constants.
const (
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	EventCreate = internal.EventCreate
	EventModify = internal.EventModify
	EventDelete = internal.EventDelete
	EventRename = internal.EventRename
	EventChmod  = internal.EventChmod
)

// Input-shape errors reported through the completion channel.
var (
	ErrInvalidPath = internal.ErrInvalidPath
	ErrNilWorker   = internal.ErrNilWorker
)

// Walk begins a traversal rooted at root and returns immediately, reporting
// exclusively through completion, which is invoked exactly once.
func Walk(root string, worker WorkerFunc, completion CompletionFunc) {
	internal.Walk(root, worker, completion)
}

// WalkWithOptions is Walk with explicit configuration.
func WalkWithOptions(root string, worker WorkerFunc, completion CompletionFunc, opts Options) {
	internal.WalkWithOptions(root, worker, completion, opts)
}

// Run begins a traversal and blocks until it completes.
func Run(root string, worker WorkerFunc) error {
	return internal.Run(root, worker)
}

// RunWithOptions is Run with explicit configuration.
func RunWithOptions(root string, worker WorkerFunc, opts Options) error {
	return internal.RunWithOptions(root, worker, opts)
}

// OSFS returns the FS backed by the host filesystem.
func OSFS() FS {
	return internal.OSFS()
}

// PruneWorker builds a WorkerFunc that prunes directories whose base name
// matches any of the given glob patterns.
func PruneWorker(patterns []string) WorkerFunc {
	return internal.PruneWorker(patterns)
}

// Watch monitors a directory tree for filesystem changes.
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	return internal.Watch(ctx, root, opts, handler)
}

// WatchWithFormat watches for filesystem changes and formats output for each
// event.
func WatchWithFormat(ctx context.Context, root string, opts WatchOptions, formatTemplate string) error {
	return internal.WatchWithFormat(ctx, root, opts, formatTemplate)
}
