package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"fastfinder/internal/finder"
)

var (
	homeDir  string
	logLevel string
)

// formatSize formats file size in human-readable form
func formatSize(size int64) string {
	switch {
	case size >= 1024*1024*1024:
		return fmt.Sprintf("%.2f GB", float64(size)/(1024*1024*1024))
	case size >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	case size >= 1024:
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// printResults renders one result per line with kind, date and path.
func printResults(results []finder.SearchResult) {
	for _, r := range results {
		size := ""
		if !r.IsFolder {
			size = " (" + formatSize(r.FileSize) + ")"
		}
		date := ""
		if r.DateValue > 0 {
			date = time.Unix(r.DateValue, 0).Format("2006-01-02 15:04")
		}
		fmt.Printf("%-20s %-16s %s%s\n", r.FileKind, date, r.FilePath, size)
	}
	fmt.Printf("Total: %d\n", len(results))
}

// printOpResult reports a file-operation outcome, failing the process on
// error so scripts can branch on the exit code.
func printOpResult(res finder.FileOpResult) {
	fmt.Println(res.Message)
	if !res.Success {
		os.Exit(1)
	}
}

func newFinder() *finder.Finder {
	if homeDir != "" {
		return finder.NewAt(homeDir)
	}
	return finder.New()
}

// withSpinner runs fn while animating an indeterminate progress bar.
func withSpinner(desc string, fn func() []finder.SearchResult) []finder.SearchResult {
	bar := progressbar.Default(-1, desc)
	done := make(chan []finder.SearchResult, 1)
	go func() { done <- fn() }()
	for {
		select {
		case results := <-done:
			bar.Finish()
			fmt.Println()
			return results
		case <-time.After(100 * time.Millisecond):
			bar.Add(1)
		}
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "fastfinder",
		Short: "Fast local file search with a persisted index",
		Long: `Locates files by name across the home directory, keeps a recency-ranked
index of the curated folders, and serves recent files from a cached snapshot.`,
		Version: finder.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				finder.SetLogLevel(logLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "Override the home directory to scan")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "index",
		Short: "Rebuild the file index and persist the snapshot",
		Run: func(cmd *cobra.Command, args []string) {
			f := newFinder()
			results := withSpinner("Indexing", f.RebuildIndex)
			fmt.Printf("Indexed %d entries under %s\n", len(results), f.Home())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search file names across the home directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			results := withSpinner("Searching", func() []finder.SearchResult {
				return newFinder().SearchFiles(args[0])
			})
			printResults(results)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "recent",
		Short: "List files touched in the last 7 days (from the cached index)",
		Run: func(cmd *cobra.Command, args []string) {
			printResults(newFinder().GetRecentFiles())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "cached",
		Short: "Dump the cached index without rescanning",
		Run: func(cmd *cobra.Command, args []string) {
			printResults(newFinder().LoadCachedIndex())
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Watch the curated folders and rebuild the index on changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				fmt.Println("\nStopping watcher")
				cancel()
			}()

			return newFinder().Watch(ctx, func(results []finder.SearchResult) {
				fmt.Printf("Index rebuilt: %d entries\n", len(results))
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "mv <target-dir> <path>...",
		Short: "Move files into a directory",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printOpResult(newFinder().MoveFiles(args[1:], args[0]))
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "cp <target-dir> <path>...",
		Short: "Copy files into a directory",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printOpResult(newFinder().CopyFiles(args[1:], args[0]))
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "trash <path>...",
		Short: "Move files to the user trash",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printOpResult(newFinder().TrashFiles(args))
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a file or folder in place",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printOpResult(newFinder().RenameFile(args[0], args[1]))
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "mkdir <parent> <name>",
		Short: "Create a new folder",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printOpResult(newFinder().CreateFolder(args[0], args[1]))
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "zip <archive.zip> <path>...",
		Short: "Compress files and folders into a ZIP archive",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			printOpResult(newFinder().CompressFiles(args[1:], args[0]))
		},
	})

	defer finder.CloseLogger()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
