// Package walk provides caller-controlled concurrent filesystem traversal.
//
// A traversal visits a root and its descendants, consulting a caller-supplied
// worker at each entry. The worker's boolean result is the only control lever:
// returning false prunes that entry's subtree. Directory children are visited
// concurrently, in no particular order, and the whole traversal reports
// through a single completion call once every reachable entry has been visited
// or pruned.
//
//	// Fire-and-forget, completion invoked exactly once
//	walk.Walk("/data", func(path string, info os.FileInfo) bool {
//		fmt.Println(path)
//		return true
//	}, func(err error) {
//		if err != nil {
//			log.Fatal(err)
//		}
//	})
//
//	// Blocking form
//	err := walk.Run("/data", func(path string, info os.FileInfo) bool {
//		return info.Name() != "node_modules"
//	})
//
//	// Prune by glob pattern
//	err := walk.Run("/data", walk.PruneWorker([]string{".git", "vendor"}))
//
// The root entry is always entered; the worker is never consulted for it.
// Passing a nil completion substitutes a default that panics on error, so
// traversal failures are loud unless the caller chooses otherwise.
package walk
