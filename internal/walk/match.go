package prowl

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// PruneWorker builds a WorkerFunc that prunes directories whose base name
// matches any of the given glob patterns. Non-directory entries are never
// pruned. Patterns and names are NFC-normalized before matching so that
// decomposed and precomposed spellings compare equal.
func PruneWorker(patterns []string) WorkerFunc {
	normalized := make([]string, len(patterns))
	for i, p := range patterns {
		normalized[i] = norm.NFC.String(p)
	}
	return func(path string, info os.FileInfo) bool {
		if !info.IsDir() {
			return true
		}
		base := norm.NFC.String(filepath.Base(path))
		for _, pattern := range normalized {
			if matched, err := filepath.Match(pattern, base); err == nil && matched {
				return false
			}
		}
		return true
	}
}

// nameMatch checks if an entry's base name matches the given glob pattern,
// falling back to exact matches against each path component.
func nameMatch(pattern, path string) bool {
	matched, err := filepath.Match(pattern, filepath.Base(path))
	if err != nil {
		return false
	}
	if !matched {
		for _, component := range strings.Split(path, string(os.PathSeparator)) {
			if component == pattern {
				return true
			}
		}
	}
	return matched
}

// isHidden checks if an entry is hidden.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// formatMessage replaces placeholders in a template with values from the
// watch message.
func formatMessage(template string, msg WatchMessage) string {
	str := template

	str = strings.ReplaceAll(str, "{}", msg.Path)
	str = strings.ReplaceAll(str, "{base}", msg.Name)
	str = strings.ReplaceAll(str, "{dir}", msg.Dir)
	str = strings.ReplaceAll(str, "{size}", fmt.Sprintf("%d", msg.Size))
	str = strings.ReplaceAll(str, "{time}", msg.Time.Format(time.RFC3339))
	str = strings.ReplaceAll(str, "{event}", string(msg.Event))

	// Quoted variants.
	str = strings.ReplaceAll(str, `{""}`, strconv.Quote(msg.Path))
	str = strings.ReplaceAll(str, `{"base"}`, strconv.Quote(msg.Name))
	str = strings.ReplaceAll(str, `{"dir"}`, strconv.Quote(msg.Dir))

	return str
}
