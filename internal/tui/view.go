package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/timefmt"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.loading {
		return fmt.Sprintf("\n %s Scanning %s ... %s items so far\n\n%s\n",
			m.spinner.View(),
			truncateMiddle(m.scan.Root(), max(10, m.width-30)),
			FormatCount(m.scan.Progress()),
			helpStyle.Render("q: quit"))
	}

	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	// Header
	writeLine(titleStyle.Render("dirt - Folder Scanner"))

	scanInfo := fmt.Sprintf("Root: %s | Items: %s | Total: %s | Took: %s",
		truncateMiddle(m.scan.Root(), max(10, m.width/3)),
		FormatCount(int64(len(m.allItems))),
		FormatSize(m.totalSize),
		m.scan.ExecTook(),
	)
	writeLine(statsStyle.Render(scanInfo))

	// Status line
	status := fmt.Sprintf("Items: %s", FormatCount(int64(len(m.items))))
	if m.filter != "" {
		status += fmt.Sprintf(" | Filter: %q", m.filter)
	}
	if len(m.items) > 0 && m.cursor < len(m.items) {
		sel := m.items[m.cursor]
		status += fmt.Sprintf(" | Sel: %s (%s, %s files)",
			sel.Name, FormatSize(sel.Size), FormatCount(sel.NumFiles))
	}
	writeLine(statusStyle.Render(status))

	// Filter input
	if m.filterActive {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filter)))
	} else if m.filter != "" {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)))
	}

	// Delete confirmation
	if m.confirmDelete && len(m.items) > 0 && m.cursor < len(m.items) {
		writeLine(confirmStyle.Render(fmt.Sprintf("Delete %s? y/n", m.items[m.cursor].Name)))
	}

	// Column headers with sort indicator
	dir := "v"
	if !m.descending {
		dir = "^"
	}
	sizeLabel := headerLabel("SIZE", m.sort == colSize, dir)
	filesLabel := headerLabel("FILES", m.sort == colFiles, dir)
	depthLabel := headerLabel("DEPTH", m.sort == colDepth, dir)
	createdLabel := headerLabel("CREATED", m.sort == colCreated, dir)
	modifiedLabel := headerLabel("MODIFIED", m.sort == colModified, dir)

	// Calculate visible rows; one extra line goes to the column header.
	footerLines := 2
	visibleRows := m.height - headerLines - footerLines - 1
	if visibleRows < 5 {
		visibleRows = 5
	}

	// Determine scroll offset
	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.items), startIdx+visibleRows)

	widths := m.calcColumnWidths(startIdx, endIdx,
		sizeLabel, filesLabel, depthLabel, createdLabel, modifiedLabel)
	nameWidth := calcNameWidth(m.width, widths)
	gap := strings.Repeat(" ", colGap)

	header := fmt.Sprintf("%*s%s%*s%s%*s%s%*s%s%*s%s%-*s%s%*s",
		widths.size, sizeLabel, gap,
		widths.files, filesLabel, gap,
		widths.depth, depthLabel, gap,
		widths.created, createdLabel, gap,
		widths.modified, modifiedLabel, gap,
		nameWidth, truncateRight("NAME", nameWidth), gap,
		barColWidth, barHeaderLabel(m.sort),
	)
	writeLine(headerStyle.Render(header))

	// Items
	for i := startIdx; i < endIdx; i++ {
		b.WriteString(m.formatItem(m.items[i], i == m.cursor, widths, nameWidth))
		b.WriteString("\n")
	}

	// Pad if needed
	displayedRows := min(len(m.items)-startIdx, visibleRows)
	for i := displayedRows; i < visibleRows; i++ {
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	help := m.helpLine()
	if len(m.items) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.items))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

type columnWidths struct {
	size     int
	files    int
	depth    int
	created  int
	modified int
}

const (
	colGap        = 2
	minNameWidth  = 10
	barBlockWidth = 10                                        // number of block characters
	barPctWidth   = 4                                         // " 78%" or "100%"
	barGapWidth   = 1                                         // space between blocks and pct
	barColWidth   = barBlockWidth + barGapWidth + barPctWidth // 15
)

func (m *Model) calcColumnWidths(startIdx, endIdx int, sizeLabel, filesLabel, depthLabel, createdLabel, modifiedLabel string) columnWidths {
	w := columnWidths{
		size:     len(sizeLabel),
		files:    len(filesLabel),
		depth:    len(depthLabel),
		created:  len(createdLabel),
		modified: len(modifiedLabel),
	}

	for i := startIdx; i < endIdx; i++ {
		sum := m.items[i]
		size := len(FormatSize(sum.Size))
		files := len(FormatCount(sum.NumFiles))
		depth := len(FormatCount(int64(sum.Depth)))
		created := len(timefmt.Unix(sum.CreatedAt, m.timeFormat()))
		modified := len(timefmt.Unix(sum.ModifiedAt, m.timeFormat()))

		if size > w.size {
			w.size = size
		}
		if files > w.files {
			w.files = files
		}
		if depth > w.depth {
			w.depth = depth
		}
		if created > w.created {
			w.created = created
		}
		if modified > w.modified {
			w.modified = modified
		}
	}

	return w
}

func calcNameWidth(totalWidth int, w columnWidths) int {
	// five data columns, a gap after each, a gap after the name, the bar
	used := w.size + w.files + w.depth + w.created + w.modified + (colGap * 6) + barColWidth
	nameWidth := totalWidth - used
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}
	return nameWidth
}

func (m *Model) formatItem(sum item.Summary, selected bool, widths columnWidths, nameWidth int) string {
	size := FormatSize(sum.Size)
	files := FormatCount(sum.NumFiles)
	depth := FormatCount(int64(sum.Depth))
	created := timefmt.Unix(sum.CreatedAt, m.timeFormat())
	modified := timefmt.Unix(sum.ModifiedAt, m.timeFormat())

	rawName := truncateRight(sum.Name, nameWidth)
	pad := nameWidth - len(rawName)
	if pad < 0 {
		pad = 0
	}
	paddedName := nameStyle.Render(rawName) + strings.Repeat(" ", pad)

	itemVal, total := m.barValues(sum)
	bar := formatBar(itemVal, total)

	gap := strings.Repeat(" ", colGap)
	line := fmt.Sprintf("%*s%s%*s%s%*s%s%*s%s%*s%s%s%s%s",
		widths.size, size, gap,
		widths.files, files, gap,
		widths.depth, depth, gap,
		widths.created, created, gap,
		widths.modified, modified, gap,
		paddedName, gap,
		bar,
	)

	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

func barHeaderLabel(sort sortColumn) string {
	if sort == colFiles {
		return "FILE%"
	}
	return "SIZE%"
}

// barValues picks the quantity the bar visualises against its grand total.
func (m *Model) barValues(sum item.Summary) (int64, int64) {
	if m.sort == colFiles {
		return sum.NumFiles, m.totalFiles
	}
	return sum.Size, m.totalSize
}

func formatBar(itemVal, total int64) string {
	if total <= 0 || itemVal <= 0 {
		empty := strings.Repeat("░", barBlockWidth)
		return barEmptyStyle.Render(empty) + fmt.Sprintf(" %3d%%", 0)
	}

	pct := float64(itemVal) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}

	filled := int(math.Round(pct / 100 * float64(barBlockWidth)))
	if filled < 1 {
		filled = 1
	}
	if filled > barBlockWidth {
		filled = barBlockWidth
	}

	filledStr := barFilledStyle.Render(strings.Repeat("█", filled))
	emptyStr := barEmptyStyle.Render(strings.Repeat("░", barBlockWidth-filled))
	return filledStr + emptyStr + fmt.Sprintf(" %3d%%", int(math.Round(pct)))
}

func headerLabel(label string, active bool, dir string) string {
	if active {
		return label + dir
	}
	return label
}

func truncateRight(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}
