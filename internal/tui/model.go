package tui

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/modaudit/modaudit/internal/models"
)

// mode represents the current UI interaction mode.
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilterModule
)

const defaultTableHeight = 15

// Model is the top-level Bubble Tea model for the issue browser.
type Model struct {
	// Data (immutable after init)
	report  *models.Report
	allRows []issueRow

	// UI state
	table         table.Model
	searchInput   textinput.Model
	filteredRows  []issueRow
	filters       filterState
	sortBy        sortField
	mode          mode
	moduleChoices []string
	moduleCursor  int
	width         int
	height        int
	statusMsg     string
	// clipboard is captured here for testing instead of writing to stdout
	clipboard string
}

// New creates a new TUI model from report data.
func New(report *models.Report) Model {
	rows := flattenReport(report)
	sortRows(rows, sortBySeverity)
	t := newTable(buildRows(rows), defaultTableHeight)

	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 64

	return Model{
		report:        report,
		allRows:       rows,
		filteredRows:  rows,
		table:         t,
		searchInput:   ti,
		sortBy:        sortBySeverity,
		mode:          modeNormal,
		moduleChoices: uniqueModules(rows),
		width:         80,
		height:        24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		tableH := msg.Height - headerHeight - detailHeight - 3
		if tableH < 3 {
			tableH = 3
		}
		m.table.SetHeight(tableH)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	default:
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeFilterModule:
		return m.handleFilterModuleKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, keys.FilterModule):
		m.mode = modeFilterModule
		m.moduleCursor = 0
		return m, nil
	case key.Matches(msg, keys.Severity):
		m.filters.Severity = nextSeverity(m.filters.Severity)
		m.rebuildTable()
		if m.filters.Severity != "" {
			m.statusMsg = fmt.Sprintf("Severity: %s", m.filters.Severity)
		} else {
			m.statusMsg = ""
		}
		return m, nil
	case key.Matches(msg, keys.Sort):
		m.sortBy = (m.sortBy + 1) % sortField(sortFieldCount)
		m.rebuildTable()
		m.statusMsg = fmt.Sprintf("Sort: %s", sortFieldName(m.sortBy))
		return m, nil
	case key.Matches(msg, keys.Copy):
		m.copySelectedRow()
		return m, nil
	case key.Matches(msg, keys.ClearFilter):
		m.filters = filterState{}
		m.statusMsg = ""
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filters.SearchText = m.searchInput.Value()
		m.mode = modeNormal
		m.searchInput.Blur()
		m.rebuildTable()
		return m, nil
	case "esc":
		m.mode = modeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterModuleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.moduleCursor > 0 {
			m.moduleCursor--
		}
	case "down", "j":
		if m.moduleCursor < len(m.moduleChoices) {
			m.moduleCursor++
		}
	case "enter":
		if m.moduleCursor == 0 {
			m.filters.Module = ""
		} else if m.moduleCursor <= len(m.moduleChoices) {
			m.filters.Module = m.moduleChoices[m.moduleCursor-1]
		}
		m.mode = modeNormal
		m.rebuildTable()
		if m.filters.Module != "" {
			m.statusMsg = fmt.Sprintf("Filter: %s", m.filters.Module)
		} else {
			m.statusMsg = ""
		}
	case "esc":
		m.mode = modeNormal
	}
	return m, nil
}

// nextSeverity cycles all -> critical -> warning -> all.
func nextSeverity(s models.Severity) models.Severity {
	switch s {
	case "":
		return models.SeverityCritical
	case models.SeverityCritical:
		return models.SeverityWarning
	default:
		return ""
	}
}

func (m *Model) rebuildTable() {
	filtered := applyFilters(m.allRows, m.filters)
	sortRows(filtered, m.sortBy)
	m.filteredRows = filtered
	m.table.SetRows(buildRows(filtered))
}

func (m *Model) selectedRow() *issueRow {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filteredRows) {
		return nil
	}
	return &m.filteredRows[cursor]
}

// copySelectedRow writes the selected issue to clipboard via OSC 52.
func (m *Model) copySelectedRow() {
	row := m.selectedRow()
	if row == nil {
		m.statusMsg = "Nothing to copy"
		return
	}
	text := fmt.Sprintf("[%s] %s %s:%d %s", row.Severity, row.Module, row.File, row.Line, row.Description)
	m.clipboard = text
	m.statusMsg = "Copied!"
	// OSC 52 clipboard escape: works in most modern terminals
	fmt.Printf("\033]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(renderHeader(m.report.Summary, m.width))
	b.WriteString("\n")

	// Search bar overlay
	if m.mode == modeSearch {
		b.WriteString(styleSearchPrompt.Render("/ "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	// Module filter overlay
	if m.mode == modeFilterModule {
		b.WriteString(m.renderModuleFilter())
		b.WriteString("\n")
	}

	// Table
	b.WriteString(m.table.View())
	b.WriteString("\n")

	// Detail panel
	b.WriteString(renderDetail(m.selectedRow(), m.width))
	b.WriteString("\n")

	// Footer
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m *Model) renderModuleFilter() string {
	var b strings.Builder
	b.WriteString("Filter by module:\n")

	options := append([]string{"All"}, m.moduleChoices...)
	for i, opt := range options {
		cursor := "  "
		if i == m.moduleCursor {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, opt))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	left := "q:quit  /:search  m:module  w:severity  s:sort  c:copy  esc:clear"
	right := fmt.Sprintf("%d/%d issues", len(m.filteredRows), len(m.allRows))

	if m.statusMsg != "" {
		right = m.statusMsg + "  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return styleFooter.Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the Bubble Tea program. Called from the check command.
func Run(report *models.Report) error {
	m := New(report)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
