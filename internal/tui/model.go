// Package tui implements the interactive browser over a folder scan.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/scan"
)

// sortColumn is a displayed sort attribute; with a direction it maps onto
// one criterion.
type sortColumn int

const (
	colSize sortColumn = iota
	colFiles
	colDepth
	colCreated
	colModified
)

func (c sortColumn) criterion(descending bool) item.SortBy {
	switch c {
	case colFiles:
		if descending {
			return item.MostFiles
		}
		return item.LeastFiles
	case colDepth:
		if descending {
			return item.MostDepth
		}
		return item.LeastDepth
	case colCreated:
		if descending {
			return item.Newest
		}
		return item.Oldest
	case colModified:
		if descending {
			return item.Hottest
		}
		return item.Coldest
	default:
		if descending {
			return item.Largest
		}
		return item.Smallest
	}
}

// columnOf maps a criterion back onto its column and direction.
func columnOf(by item.SortBy) (sortColumn, bool) {
	switch by {
	case item.Oldest:
		return colCreated, false
	case item.Newest:
		return colCreated, true
	case item.Coldest:
		return colModified, false
	case item.Hottest:
		return colModified, true
	case item.Smallest:
		return colSize, false
	case item.Largest:
		return colSize, true
	case item.LeastFiles:
		return colFiles, false
	case item.MostFiles:
		return colFiles, true
	case item.LeastDepth:
		return colDepth, false
	case item.MostDepth:
		return colDepth, true
	}
	return colSize, true
}

// Model holds the browser state over one scan.
type Model struct {
	scan    *scan.Scan
	spinner spinner.Model
	loading bool

	allItems   []item.Summary
	items      []item.Summary
	totalSize  int64
	totalFiles int64
	cursor     int

	sort       sortColumn
	descending bool

	filter       string
	filterActive bool

	confirmDelete bool

	width  int
	height int
	err    error
}

// NewModel creates the browser for a started scan.
func NewModel(sc *scan.Scan) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	col, descending := columnOf(sc.SortBy())
	return &Model{
		scan:       sc,
		spinner:    sp,
		loading:    true,
		sort:       col,
		descending: descending,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForScan)
}

type scanDoneMsg struct {
	err error
}

func (m *Model) waitForScan() tea.Msg {
	return scanDoneMsg{err: m.scan.Err()}
}

type itemsReloadedMsg struct {
	items []item.Summary
	err   error
}

func (m *Model) resortItems() tea.Cmd {
	by := m.sort.criterion(m.descending)
	return func() tea.Msg {
		if err := m.scan.Resort(by); err != nil {
			return itemsReloadedMsg{err: err}
		}
		return itemsReloadedMsg{items: m.scan.Items()}
	}
}

func (m *Model) deleteItem(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.scan.DeleteItem(name); err != nil {
			return itemsReloadedMsg{err: err}
		}
		return itemsReloadedMsg{items: m.scan.Items()}
	}
}

func (m *Model) timeFormat() string {
	return m.scan.Options().TimeFormat
}

func (m *Model) helpLine() string {
	if m.filterActive {
		return "Type to filter | Enter: apply | Esc: clear | q: quit"
	}
	return "↑/↓ move | s/f/d/c/m: sort, again to flip | /: filter | D: delete | q: quit"
}

func (m *Model) setItems(items []item.Summary) {
	m.allItems = items
	m.totalSize = 0
	m.totalFiles = 0
	for _, sum := range items {
		m.totalSize += sum.Size
		m.totalFiles += sum.NumFiles
	}
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.filter == "" {
		m.items = m.allItems
	} else {
		filtered := make([]item.Summary, 0, len(m.allItems))
		needle := strings.ToLower(m.filter)
		for _, sum := range m.allItems {
			if strings.Contains(strings.ToLower(sum.Name), needle) {
				filtered = append(filtered, sum)
			}
		}
		m.items = filtered
	}
	m.cursor = 0
}
