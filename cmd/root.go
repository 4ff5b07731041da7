package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	prowl "github.com/TFMV/prowl/internal/walk"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prowl [options] <path>",
	Short: "Caller-controlled concurrent filesystem traversal",
	Long: `prowl walks a directory tree concurrently, consulting a pruning
decision at every entry. Directories matching a prune pattern are never
entered, so their descendants are never listed or visited.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProwl(args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Flags
	rootCmd.Flags().StringSlice("prune", nil, "Directory name patterns to prune (comma-separated globs)")
	rootCmd.Flags().Bool("dirs-only", false, "Print directories only")
	rootCmd.Flags().String("format", "text", "Output format (text|json)")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().Bool("silent", false, "Disable all output except errors")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")
	rootCmd.Flags().Bool("collect-errors", false, "Report every failed branch instead of the last one")

	// Bind flags to viper
	viper.BindPFlag("prune", rootCmd.Flags().Lookup("prune"))
	viper.BindPFlag("dirs-only", rootCmd.Flags().Lookup("dirs-only"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.Flags().Lookup("silent"))
	viper.BindPFlag("no-color", rootCmd.Flags().Lookup("no-color"))
	viper.BindPFlag("collect-errors", rootCmd.Flags().Lookup("collect-errors"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".prowl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".prowl")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runProwl(root string) error {
	opts := prowl.Options{
		CollectErrors: viper.GetBool("collect-errors"),
	}

	if viper.GetBool("verbose") {
		opts.LogLevel = prowl.LogLevelDebug
	} else if viper.GetBool("silent") {
		opts.LogLevel = prowl.LogLevelError
	} else {
		opts.LogLevel = prowl.LogLevelWarn
	}

	prune := prowl.PruneWorker(viper.GetStringSlice("prune"))

	useColor := !viper.GetBool("no-color") && isatty.IsTerminal(os.Stdout.Fd())
	dirColor := color.New(color.FgBlue, color.Bold)
	silent := viper.GetBool("silent")
	dirsOnly := viper.GetBool("dirs-only")
	jsonOut := viper.GetString("format") == "json"

	// Sibling entries are visited concurrently, so printing needs a lock
	// to keep lines whole.
	var outMu sync.Mutex

	worker := func(path string, info os.FileInfo) bool {
		descend := prune(path, info)
		if silent || (dirsOnly && !info.IsDir()) {
			return descend
		}

		outMu.Lock()
		defer outMu.Unlock()
		if jsonOut {
			entry := map[string]interface{}{
				"path":          path,
				"dir":           info.IsDir(),
				"size":          info.Size(),
				"mode":          info.Mode().String(),
				"last_modified": info.ModTime().Format(time.RFC3339),
			}
			if info.IsDir() {
				entry["pruned"] = !descend
			}
			line, _ := json.Marshal(entry)
			fmt.Println(string(line))
			return descend
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		switch {
		case info.IsDir() && useColor:
			dirColor.Println(rel + string(os.PathSeparator))
		case info.IsDir():
			fmt.Println(rel + string(os.PathSeparator))
		default:
			fmt.Printf("%s (%d bytes)\n", rel, info.Size())
		}
		return descend
	}

	return prowl.RunWithOptions(root, worker, opts)
}
