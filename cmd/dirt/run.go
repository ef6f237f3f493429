package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/pathutil"
	"github.com/kirpit/dirtools3/internal/scan"
)

func runDirt(cmd *cobra.Command, args []string) error {
	initLogging()

	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	path = pathutil.Normalize(path)

	by, err := item.ParseSortBy(dirtSortBy)
	if err != nil {
		return err
	}
	variant, err := scan.ParseTimesVariant(dirtTimes)
	if err != nil {
		return err
	}
	switch dirtOutput {
	case "simple", "csv":
	default:
		return fmt.Errorf("invalid output format %q (expected simple|csv)", dirtOutput)
	}
	if dirtTrimDown != "" {
		if _, err := strconv.ParseFloat(strings.TrimSpace(dirtTrimDown), 64); err == nil {
			return errors.New("--trim-down value cannot be only numeric")
		}
	}

	opts := scan.DefaultOptions().
		WithLevel(dirtDepth).
		WithWorkers(dirtWorkers).
		WithTimeFormat(dirtTimeFormat).
		WithTimes(variant).
		WithMaxStatsPerSecond(dirtMaxStats)

	sc := scan.New(path, by, opts).Start()
	waitScan(sc)
	if err := sc.Err(); err != nil {
		return err
	}

	if dirtTrimDown != "" {
		return runTrim(sc)
	}
	return runList(sc)
}

// waitScan blocks until the scan finishes, spinning a progress counter on
// stderr when one is worth showing.
func waitScan(sc *scan.Scan) {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		<-sc.Done()
		return
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("scanning "+sc.Root()),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var shown int64
	for {
		select {
		case <-sc.Done():
			_ = bar.Finish()
			return
		case <-ticker.C:
			n := sc.Progress()
			_ = bar.Add(int(n - shown))
			shown = n
		}
	}
}

func runList(sc *scan.Scan) error {
	items := sc.Items()
	info := fmt.Sprintf("%d items with total of %s data; took %s",
		sc.Count(), formatTotal(sc.TotalSize()), sc.ExecTook())
	writeItems(os.Stdout, sc.Options(), items, info)
	return nil
}

func runTrim(sc *scan.Scan) error {
	iter, err := sc.CleanupItems(dirtTrimDown)
	if err != nil {
		return err
	}

	var deleted []item.Summary
	var freed int64
	for iter.Next() {
		sum := iter.Item()
		deleted = append(deleted, sum)
		freed += sum.Size
	}
	info := fmt.Sprintf("%d items with total of %s data has been deleted.",
		len(deleted), formatTotal(freed))
	writeItems(os.Stdout, sc.Options(), deleted, info)
	return iter.Err()
}

func writeItems(out io.Writer, opts *scan.Options, items []item.Summary, info string) {
	if dirtOutput == "csv" {
		writeCSV(out, opts, items, info)
		return
	}
	writeTable(out, opts, items, info)
}
