package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setItems(m.scan.Items())
		return m, nil

	case itemsReloadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.setItems(msg.items)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Only quitting works until the scan delivers.
	if m.loading {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			if len(m.items) > 0 && m.cursor < len(m.items) {
				return m, m.deleteItem(m.items[m.cursor].Name)
			}
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		m.confirmDelete = false
		return m, nil
	}

	if m.filterActive {
		switch msg.String() {
		case "enter":
			m.filterActive = false
			return m, nil

		case "esc":
			m.filterActive = false
			m.filter = ""
			m.applyFilter()
			return m, nil

		case "backspace":
			if len(m.filter) > 0 {
				runes := []rune(m.filter)
				m.filter = string(runes[:len(runes)-1])
				m.applyFilter()
			}
			return m, nil

		case "ctrl+c":
			return m, tea.Quit
		}

		if msg.Type == tea.KeyRunes {
			m.filter += msg.String()
			m.applyFilter()
			return m, nil
		}

		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case "s":
		return m, m.toggleSort(colSize)

	case "f":
		return m, m.toggleSort(colFiles)

	case "d":
		return m, m.toggleSort(colDepth)

	case "c":
		return m, m.toggleSort(colCreated)

	case "m":
		return m, m.toggleSort(colModified)

	case "/":
		m.filterActive = true
		return m, nil

	case "D":
		if len(m.items) > 0 && m.cursor < len(m.items) {
			m.confirmDelete = true
		}
		return m, nil

	case "home", "g":
		m.cursor = 0
		return m, nil

	case "end", "G":
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
		return m, nil

	case "pgup":
		m.cursor -= 10
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case "pgdown":
		m.cursor += 10
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

// toggleSort switches the active column, or flips its direction when it is
// already active, then resorts.
func (m *Model) toggleSort(col sortColumn) tea.Cmd {
	if m.sort == col {
		m.descending = !m.descending
	} else {
		m.sort = col
		m.descending = true
	}
	return m.resortItems()
}
