package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/scan"
	"github.com/kirpit/dirtools3/internal/sizeconv"
)

func tableColumns(variant scan.TimesVariant) []string {
	if variant == scan.TimesStat {
		return []string{"NAME", "SIZE", "DEPTH", "FILES", "ACCESSED", "MODIFIED", "CHANGED"}
	}
	return []string{"NAME", "SIZE", "DEPTH", "FILES", "CREATED", "MODIFIED"}
}

// rowCells renders one summary as display cells. numeric marks the cells
// that stay unquoted in CSV output.
func rowCells(sum item.Summary, opts *scan.Options) (cells []string, numeric []bool) {
	if dirtNoHuman {
		cells = []string{
			sum.Name,
			strconv.FormatInt(sum.Size, 10),
			strconv.Itoa(sum.Depth),
			strconv.FormatInt(sum.NumFiles, 10),
		}
		numeric = []bool{false, true, true, true}
		if opts.Times == scan.TimesStat {
			cells = append(cells,
				strconv.FormatInt(sum.AccessedAt, 10),
				strconv.FormatInt(sum.ModifiedAt, 10),
				strconv.FormatInt(sum.ChangedAt, 10))
			numeric = append(numeric, true, true, true)
			return cells, numeric
		}
		cells = append(cells,
			strconv.FormatInt(sum.CreatedAt, 10),
			strconv.FormatInt(sum.ModifiedAt, 10))
		numeric = append(numeric, true, true)
		return cells, numeric
	}

	h := item.Humanise(sum, opts.TimeFormat, dirtPrecision)
	cells = []string{
		h.Name,
		h.Size,
		strconv.Itoa(h.Depth),
		strconv.FormatInt(h.NumFiles, 10),
	}
	numeric = []bool{false, false, true, true}
	if opts.Times == scan.TimesStat {
		cells = append(cells, h.AccessedAt, h.ModifiedAt, h.ChangedAt)
		numeric = append(numeric, false, false, false)
		return cells, numeric
	}
	cells = append(cells, h.CreatedAt, h.ModifiedAt)
	numeric = append(numeric, false, false)
	return cells, numeric
}

func writeTable(out io.Writer, opts *scan.Options, items []item.Summary, info string) {
	cols := tableColumns(opts.Times)
	dashes := make([]string, len(cols))
	for i, c := range cols {
		dashes[i] = strings.Repeat("-", len(c))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(cols, "\t"))
	fmt.Fprintln(w, strings.Join(dashes, "\t"))
	for _, sum := range items {
		cells, _ := rowCells(sum, opts)
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	fmt.Fprintln(out, info)
}

// writeCSV emits one header row, the item rows and the info line. String
// cells are quoted, numeric cells are bare.
func writeCSV(out io.Writer, opts *scan.Options, items []item.Summary, info string) {
	cols := tableColumns(opts.Times)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = csvQuote(c)
	}
	fmt.Fprintln(out, strings.Join(header, ","))
	for _, sum := range items {
		cells, numeric := rowCells(sum, opts)
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if numeric[i] {
				parts[i] = cell
			} else {
				parts[i] = csvQuote(cell)
			}
		}
		fmt.Fprintln(out, strings.Join(parts, ","))
	}
	fmt.Fprintln(out, info)
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatTotal renders a byte total for the info line, honouring --no-human.
func formatTotal(n int64) string {
	if dirtNoHuman {
		return strconv.FormatInt(n, 10)
	}
	if s, err := sizeconv.Format(n, dirtPrecision); err == nil {
		return s
	}
	return strconv.FormatInt(n, 10)
}
