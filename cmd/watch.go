package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	prowl "github.com/TFMV/prowl/walk"
)

var (
	// Watch command options
	watchEvents        []string
	watchRecursive     bool
	watchFormat        string
	watchPattern       string
	watchIgnore        string
	watchPrune         []string
	watchTimeout       time.Duration
	watchIncludeHidden bool
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch for filesystem changes",
	Long: `Watch a directory tree for filesystem changes. With --recursive the
watched directory set is built by a prowl traversal, so --prune patterns keep
whole subtrees out of the watch set.

Examples:
  prowl watch /path/to/watch
  prowl watch --events=create,modify /path/to/watch
  prowl watch --recursive --prune=.git,node_modules /path/to/watch
  prowl watch --pattern="*.go" --format="{base} was {event} at {time}" /path/to/watch`,
	Run: func(cmd *cobra.Command, args []string) {
		var watchDir string
		if len(args) > 0 {
			watchDir = args[0]
		} else {
			var err error
			watchDir, err = os.Getwd()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting current directory: %v\n", err)
				os.Exit(1)
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var events []prowl.WatchEvent
		for _, e := range watchEvents {
			switch strings.ToLower(e) {
			case "create":
				events = append(events, prowl.EventCreate)
			case "write", "modify":
				events = append(events, prowl.EventModify)
			case "remove", "delete":
				events = append(events, prowl.EventDelete)
			case "rename":
				events = append(events, prowl.EventRename)
			case "chmod":
				events = append(events, prowl.EventChmod)
			default:
				fmt.Fprintf(os.Stderr, "Unknown event type: %s\n", e)
			}
		}

		opts := prowl.WatchOptions{
			Events:        events,
			Recursive:     watchRecursive,
			Pattern:       watchPattern,
			IgnorePattern: watchIgnore,
			IncludeHidden: watchIncludeHidden,
			Timeout:       watchTimeout,
		}
		if len(watchPrune) > 0 {
			opts.Worker = prowl.PruneWorker(watchPrune)
		}

		var err error
		if watchFormat != "" {
			err = prowl.WatchWithFormat(ctx, watchDir, opts, watchFormat)
		} else {
			err = prowl.Watch(ctx, watchDir, opts, nil)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching directory: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVar(&watchEvents, "events", nil, "Events to watch for (create, modify, delete, rename, chmod)")
	watchCmd.Flags().BoolVarP(&watchRecursive, "recursive", "r", false, "Watch subdirectories recursively")
	watchCmd.Flags().StringVar(&watchFormat, "format", "", "Format template for event output")
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only report events for matching base names")
	watchCmd.Flags().StringVar(&watchIgnore, "ignore", "", "Suppress events for matching base names")
	watchCmd.Flags().StringSliceVar(&watchPrune, "prune", nil, "Directory patterns to keep out of the watch set")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "Stop watching after this duration (0 = forever)")
	watchCmd.Flags().BoolVar(&watchIncludeHidden, "hidden", false, "Include hidden files and directories")
}
