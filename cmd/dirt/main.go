package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/kirpit/dirtools3/internal/logger"
)

var version = "3.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dirt [path]",
	Short: "Collect size and age statistics for the entries of a folder",
	Long: heredoc.Doc(`
		dirt scans a folder down to a chosen depth and reports one summary
		line per entry found there: its total size, file count, how deep its
		contents go and its creation and modification times. Items stream
		out in the requested order, and --trim-down deletes from the front
		of that order until the folder fits a size limit.
	`),
	Example: heredoc.Doc(`
		# list the biggest direct entries of the current folder
		dirt -s largest

		# one level deeper, CSV output, raw byte counts
		dirt /var/log -d 1 -o csv --no-human

		# delete the oldest items until the folder is below 10 Gb
		dirt /srv/cache -s oldest --trim-down "10 Gb"
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: runDirt,
}

var (
	dirtSortBy     string
	dirtOutput     string
	dirtPrecision  int
	dirtDepth      int
	dirtNoHuman    bool
	dirtTrimDown   string
	dirtWorkers    int
	dirtMaxStats   int
	dirtTimeFormat string
	dirtTimes      string
	dirtVerbose    bool
)

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(browseCmd)

	rootCmd.Flags().StringVarP(&dirtSortBy, "sort-by", "s", "newest", "Sort criterion (oldest|newest|coldest|hottest|smallest|largest|least_files|most_files|least_depth|most_depth)")
	rootCmd.Flags().StringVarP(&dirtOutput, "output", "o", "simple", "Output format: simple|csv")
	rootCmd.Flags().IntVarP(&dirtPrecision, "precision", "p", 2, "Decimal precision of humanised sizes")
	rootCmd.Flags().IntVarP(&dirtDepth, "depth", "d", 0, "Folder depth whose entries become items (0 = direct children)")
	rootCmd.Flags().BoolVarP(&dirtNoHuman, "no-human", "H", false, "Print raw byte counts and unix timestamps")
	rootCmd.Flags().StringVar(&dirtTrimDown, "trim-down", "", "Delete items until the folder total is at most this size, e.g. \"10 Gb\"")
	rootCmd.Flags().IntVarP(&dirtWorkers, "workers", "w", 8, "Number of concurrent stat workers per folder item")
	rootCmd.Flags().IntVar(&dirtMaxStats, "max-stats-per-sec", 0, "Throttle stat calls during scanning (0 = unlimited)")
	rootCmd.Flags().StringVarP(&dirtTimeFormat, "time-format", "t", "%Y %b %d %H:%M", "strftime pattern for humanised timestamps")
	rootCmd.Flags().StringVar(&dirtTimes, "times", "created", "Timestamp set to report: created|stat")
	rootCmd.PersistentFlags().BoolVarP(&dirtVerbose, "verbose", "v", false, "Enable debug logging")
}

func initLogging() {
	if dirtVerbose {
		logger.Init("debug")
		return
	}
	logger.Init("warning")
}
