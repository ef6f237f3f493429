package main

import (
	"fmt"

	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/pathutil"
	"github.com/kirpit/dirtools3/internal/scan"
	"github.com/kirpit/dirtools3/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Browse scanned items interactively",
	Long:  `Scan a folder and open an interactive TUI to sort, filter and delete its items.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

var (
	browseSortBy   string
	browseDepth    int
	browseWorkers  int
	browseMaxStats int
	browseTimes    string
)

func init() {
	browseCmd.Flags().StringVarP(&browseSortBy, "sort-by", "s", "newest", "Initial sort criterion")
	browseCmd.Flags().IntVarP(&browseDepth, "depth", "d", 0, "Folder depth whose entries become items (0 = direct children)")
	browseCmd.Flags().IntVarP(&browseWorkers, "workers", "w", 8, "Number of concurrent stat workers per folder item")
	browseCmd.Flags().IntVar(&browseMaxStats, "max-stats-per-sec", 0, "Throttle stat calls during scanning (0 = unlimited)")
	browseCmd.Flags().StringVar(&browseTimes, "times", "created", "Timestamp set to report: created|stat")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	initLogging()

	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	path = pathutil.Normalize(path)

	by, err := item.ParseSortBy(browseSortBy)
	if err != nil {
		return err
	}
	variant, err := scan.ParseTimesVariant(browseTimes)
	if err != nil {
		return err
	}

	opts := scan.DefaultOptions().
		WithLevel(browseDepth).
		WithWorkers(browseWorkers).
		WithTimes(variant).
		WithMaxStatsPerSecond(browseMaxStats)

	sc := scan.New(path, by, opts).Start()

	model := tui.NewModel(sc)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
