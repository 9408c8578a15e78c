// jobscout is the job aggregation and alert engine: it scrapes the configured
// boards, deduplicates against history, ranks by fit, and delivers batches
// over Telegram on a schedule.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagDebug   bool
)

func main() {
	root := &cobra.Command{
		Use:           "jobscout",
		Short:         "job aggregation, dedup and fit-ranking engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $JOBSCOUT_DATA_DIR or .)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newStatusCmd(),
		newResumeCmd(),
		newTokenCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if dir := os.Getenv("JOBSCOUT_DATA_DIR"); dir != "" {
		return dir
	}
	return "."
}
