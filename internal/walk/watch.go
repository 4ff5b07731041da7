// Filesystem change monitoring built on fsnotify, with watch registration
// driven by the prowl traversal engine: the same worker that prunes a
// traversal decides which directories get watched.
package prowl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchEvent represents a filesystem event type.
type WatchEvent string

// Watch event types.
const (
	EventCreate WatchEvent = "create"
	EventModify WatchEvent = "modify"
	EventDelete WatchEvent = "delete"
	EventRename WatchEvent = "rename"
	EventChmod  WatchEvent = "chmod"
)

// WatchOptions defines options for watching filesystem changes.
type WatchOptions struct {
	// Events to watch for. If empty, all events are watched.
	Events []WatchEvent

	// Recursive watches subdirectories as well as the root.
	Recursive bool

	// Worker decides, during recursive registration, which directories
	// are watched. A false result prunes the directory and everything
	// beneath it from the watch set. Nil watches every directory.
	Worker WorkerFunc

	// Pattern restricts reported events to matching base names.
	Pattern string

	// IgnorePattern suppresses events for matching base names.
	IgnorePattern string

	// IncludeHidden reports events for hidden files and directories.
	IncludeHidden bool

	// Timeout stops the watch after the given duration. Zero means no
	// timeout.
	Timeout time.Duration
}

// WatchMessage contains information about a filesystem event.
type WatchMessage struct {
	Path  string     // Full path to the entry
	Name  string     // Base name of the entry
	Dir   string     // Directory containing the entry
	Size  int64      // Size in bytes (0 for deleted entries)
	Time  time.Time  // Modification time
	IsDir bool       // Whether the entry is a directory
	Event WatchEvent // Event type
}

// WatchResult represents a watch event result.
type WatchResult struct {
	Message WatchMessage
	Error   error
}

// WatchHandler is a function that processes watch events.
type WatchHandler func(ctx context.Context, result WatchResult) error

// defaultWatchHandler returns a handler that prints events.
func defaultWatchHandler() WatchHandler {
	return func(ctx context.Context, result WatchResult) error {
		if result.Error != nil {
			return result.Error
		}
		fmt.Printf("%s: %s\n", strings.ToUpper(string(result.Message.Event)), result.Message.Path)
		return nil
	}
}

// Watch monitors a directory tree for filesystem changes until the context is
// done. When opts.Recursive is set, the watched directory set is built by a
// prowl traversal using opts.Worker, so pruning applies to watch registration
// the same way it applies to a walk.
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	if handler == nil {
		handler = defaultWatchHandler()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("error watching directory %s: %w", root, err)
	}

	if opts.Recursive {
		if err := registerTree(root, opts, watcher); err != nil {
			return fmt.Errorf("error registering directory tree: %w", err)
		}
	}

	eventMap := watchedOps(opts.Events)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				eventType, wanted := classifyEvent(event, eventMap)
				if !wanted {
					continue
				}

				var info os.FileInfo
				if !event.Has(fsnotify.Remove) {
					var err error
					info, err = os.Stat(event.Name)
					if err != nil {
						handler(ctx, WatchResult{
							Error: fmt.Errorf("error getting file info for %s: %w", event.Name, err),
						})
						continue
					}

					// New directories join the watch set, subject to
					// the same worker decision as the initial
					// registration.
					if opts.Recursive && info.IsDir() && event.Has(fsnotify.Create) {
						if opts.Worker == nil || opts.Worker(event.Name, info) {
							if err := watcher.Add(event.Name); err != nil {
								handler(ctx, WatchResult{
									Error: fmt.Errorf("error watching new directory %s: %w", event.Name, err),
								})
							}
						}
					}
				}

				if opts.Pattern != "" && !nameMatch(opts.Pattern, event.Name) {
					continue
				}
				if opts.IgnorePattern != "" && nameMatch(opts.IgnorePattern, event.Name) {
					continue
				}
				if !opts.IncludeHidden && isHidden(event.Name) {
					continue
				}

				msg := WatchMessage{
					Path:  event.Name,
					Name:  filepath.Base(event.Name),
					Dir:   filepath.Dir(event.Name),
					Time:  time.Now(),
					Event: eventType,
				}
				if info != nil {
					msg.Size = info.Size()
					msg.IsDir = info.IsDir()
					msg.Time = info.ModTime()
				}

				if err := handler(ctx, WatchResult{Message: msg}); err != nil {
					handler(ctx, WatchResult{
						Error: fmt.Errorf("error handling event: %w", err),
					})
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				handler(ctx, WatchResult{
					Error: fmt.Errorf("watcher error: %w", err),
				})

			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	wg.Wait()

	return nil
}

// WatchWithFormat watches for filesystem changes and prints each event
// rendered through a placeholder template.
func WatchWithFormat(ctx context.Context, root string, opts WatchOptions, formatTemplate string) error {
	return Watch(ctx, root, opts, func(ctx context.Context, result WatchResult) error {
		if result.Error != nil {
			return result.Error
		}
		fmt.Println(formatMessage(formatTemplate, result.Message))
		return nil
	})
}

// registerTree walks the tree rooted at root and adds every approved
// directory to the watcher. The root itself is already registered.
func registerTree(root string, opts WatchOptions, watcher *fsnotify.Watcher) error {
	var addMu sync.Mutex
	worker := func(path string, info os.FileInfo) bool {
		if !info.IsDir() {
			return false
		}
		if !opts.IncludeHidden && isHidden(path) {
			return false
		}
		if opts.Worker != nil && !opts.Worker(path, info) {
			return false
		}
		addMu.Lock()
		defer addMu.Unlock()
		if err := watcher.Add(path); err != nil {
			// Report but keep descending; one unwatchable directory
			// should not abort registration.
			fmt.Fprintf(os.Stderr, "error watching directory %s: %v\n", path, err)
		}
		return true
	}
	return RunWithOptions(root, worker, Options{LogLevel: LogLevelError})
}

// watchedOps converts the requested event set into fsnotify operations.
func watchedOps(events []WatchEvent) map[fsnotify.Op]bool {
	ops := make(map[fsnotify.Op]bool)
	if len(events) == 0 {
		for _, op := range []fsnotify.Op{fsnotify.Create, fsnotify.Write, fsnotify.Remove, fsnotify.Rename, fsnotify.Chmod} {
			ops[op] = true
		}
		return ops
	}
	for _, e := range events {
		switch e {
		case EventCreate:
			ops[fsnotify.Create] = true
		case EventModify:
			ops[fsnotify.Write] = true
		case EventDelete:
			ops[fsnotify.Remove] = true
		case EventRename:
			ops[fsnotify.Rename] = true
		case EventChmod:
			ops[fsnotify.Chmod] = true
		}
	}
	return ops
}

// classifyEvent maps an fsnotify event to a WatchEvent, honoring the
// requested event set.
func classifyEvent(event fsnotify.Event, ops map[fsnotify.Op]bool) (WatchEvent, bool) {
	switch {
	case event.Has(fsnotify.Create) && ops[fsnotify.Create]:
		return EventCreate, true
	case event.Has(fsnotify.Write) && ops[fsnotify.Write]:
		return EventModify, true
	case event.Has(fsnotify.Remove) && ops[fsnotify.Remove]:
		return EventDelete, true
	case event.Has(fsnotify.Rename) && ops[fsnotify.Rename]:
		return EventRename, true
	case event.Has(fsnotify.Chmod) && ops[fsnotify.Chmod]:
		return EventChmod, true
	}
	return "", false
}
