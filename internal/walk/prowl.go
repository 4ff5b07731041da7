// Package prowl provides caller-controlled concurrent filesystem traversal.
//
// Unlike filepath.Walk, descent is decided entry by entry: a caller-supplied
// worker is consulted at every visited entry, and a directory's children are
// listed only when the worker approves. Each directory fans out over its
// children concurrently and the whole traversal reports through a single
// completion call.
package prowl

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WorkerFunc is consulted once per visited entry. Returning false prunes the
// entry's subtree: for directories the children are never listed, for other
// entries the branch simply ends. Implementations must be safe for concurrent
// use, as sibling entries are visited in parallel.
type WorkerFunc func(path string, info os.FileInfo) bool

// CompletionFunc receives the single terminal report of a traversal: nil on
// success, or the error that surfaced from a failed branch.
type CompletionFunc func(err error)

// Input-shape errors reported through the completion channel by Walk.
var (
	ErrInvalidPath = errors.New("prowl: root must be a non-empty UTF-8 path")
	ErrNilWorker   = errors.New("prowl: worker must not be nil")
)

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Options configures a traversal.
type Options struct {
	// Logger receives traversal diagnostics. When nil, a logger is built
	// from LogLevel.
	Logger *zap.Logger

	// LogLevel selects the verbosity of the default logger.
	LogLevel LogLevel

	// FS supplies the filesystem collaborators. Defaults to the host
	// filesystem.
	FS FS

	// CollectErrors joins every failed branch's error into the completion
	// report. When false (the default), a directory whose children fail
	// concurrently surfaces only the error carried by the last child to
	// complete.
	CollectErrors bool
}

// Walk begins a traversal rooted at root and returns immediately. The worker
// is consulted for every entry below the root; the root itself is always
// entered. completion is invoked exactly once, after every reachable entry has
// been visited or pruned.
//
// Malformed inputs are reported through completion, not panicked: an empty or
// non-UTF-8 root yields ErrInvalidPath, a nil worker yields ErrNilWorker. If
// completion is nil, a default is substituted that panics on any error.
func Walk(root string, worker WorkerFunc, completion CompletionFunc) {
	WalkWithOptions(root, worker, completion, Options{})
}

// WalkWithOptions is Walk with explicit configuration.
func WalkWithOptions(root string, worker WorkerFunc, completion CompletionFunc, opts Options) {
	if completion == nil {
		completion = defaultCompletion
	}
	if root == "" || !utf8.ValidString(root) {
		go completion(fmt.Errorf("%w: %q", ErrInvalidPath, root))
		return
	}
	if worker == nil {
		go completion(ErrNilWorker)
		return
	}

	logger := opts.Logger
	if logger == nil {
		logger = createLogger(opts.LogLevel)
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = OSFS()
	}

	w := &walker{
		fs:      fsys,
		worker:  worker,
		logger:  logger,
		collect: opts.CollectErrors,
	}

	logger.Debug("starting traversal", zap.String("root", root))
	go w.step(root, true, completion)
}

// Run begins a traversal and blocks until it completes, returning the
// traversal's terminal error. It is the form most callers want.
func Run(root string, worker WorkerFunc) error {
	return RunWithOptions(root, worker, Options{})
}

// RunWithOptions is Run with explicit configuration.
func RunWithOptions(root string, worker WorkerFunc, opts Options) error {
	done := make(chan error, 1)
	WalkWithOptions(root, worker, func(err error) { done <- err }, opts)
	return <-done
}

// defaultCompletion stands in when the caller supplies no completion handler.
// Errors must not vanish silently, so an unrecovered traversal failure is
// fatal.
func defaultCompletion(err error) {
	if err != nil {
		panic(fmt.Sprintf("prowl: unhandled traversal error: %v", err))
	}
}

// walker carries the per-traversal collaborators shared by every step.
type walker struct {
	fs      FS
	worker  WorkerFunc
	logger  *zap.Logger
	collect bool
}

// step visits one entry. seed marks the traversal root, which is entered
// without consulting the worker. done is invoked exactly once per step, after
// the entry and (for approved directories) its whole subtree have completed.
func (w *walker) step(path string, seed bool, done CompletionFunc) {
	info, err := w.fs.Stat(path)
	if err != nil {
		w.logger.Warn("stat failed", zap.String("path", path), zap.Error(err))
		done(fmt.Errorf("path %q: %w", path, err))
		return
	}

	if !seed && !w.worker(path, info) {
		// Pruned. For a directory this means the children are never
		// listed.
		done(nil)
		return
	}

	if !info.IsDir() {
		done(nil)
		return
	}

	names, err := w.fs.ReadDir(path)
	if err != nil {
		w.logger.Warn("list failed", zap.String("path", path), zap.Error(err))
		done(fmt.Errorf("path %q: %w", path, err))
		return
	}
	if len(names) == 0 {
		done(nil)
		return
	}

	// Pending-count for this directory's fan-out. It belongs to this frame
	// alone and is decremented only by the completions of the children
	// spawned below; the decrement that reaches zero fires this
	// directory's own completion.
	var (
		pending = int64(len(names))
		joinMu  sync.Mutex
		joined  error
	)
	childDone := func(err error) {
		if w.collect && err != nil {
			joinMu.Lock()
			joined = errors.Join(joined, err)
			joinMu.Unlock()
		}
		if atomic.AddInt64(&pending, -1) == 0 {
			if w.collect {
				joinMu.Lock()
				err = joined
				joinMu.Unlock()
			}
			done(err)
		}
	}

	for _, name := range names {
		go w.step(w.fs.Join(path, name), false, childDone)
	}
}

// createLogger creates a zap logger with the specified log level.
func createLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	switch level {
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case LogLevelInfo:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	logger, _ := config.Build()
	return logger
}
