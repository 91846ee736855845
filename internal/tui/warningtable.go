package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/dm/eua-go/internal/format"
	"github.com/dm/eua-go/internal/model"
)

// WarningTableModel is a sortable, paginated, searchable table of
// deprecation warnings with a row cursor.
type WarningTableModel struct {
	tableModel
	title       string
	allRows     []model.EnrichedDeprecationWarning // unfiltered source data
	displayRows []model.EnrichedDeprecationWarning // after filter + sort applied
}

// NewClusterTable returns the table for cluster, node and ML setting
// warnings. Rows keep status order until a sort column is chosen.
func NewClusterTable() WarningTableModel {
	return WarningTableModel{
		title: "Cluster Deprecations",
		tableModel: newTableModel([]columnDef{
			{Title: "Level", Width: 10, Kind: colLevel},
			{Title: "Message", Width: 60, Kind: colMessage},
			{Title: "Details", Width: 40, Kind: colDetails},
		}),
	}
}

// NewIndexTable returns the table for index warnings.
func NewIndexTable() WarningTableModel {
	return WarningTableModel{
		title: "Index Deprecations",
		tableModel: newTableModel([]columnDef{
			{Title: "Index", Width: 30, Kind: colIndex},
			{Title: "Level", Width: 10, Kind: colLevel},
			{Title: "Message", Width: 50, Kind: colMessage},
			{Title: "Flags", Width: 24, Kind: colFlags},
		}),
	}
}

// SetData applies the current search filter and sort to rows, storing the
// result as displayRows ready for rendering.
func (m *WarningTableModel) SetData(rows []model.EnrichedDeprecationWarning) {
	m.allRows = rows
	m.refresh()
}

// Update handles keyboard events and re-applies filter/sort when the sort
// column, direction, or search term changes.
func (m WarningTableModel) Update(msg tea.Msg) (WarningTableModel, tea.Cmd) {
	prevSort := m.sortCol
	prevDesc := m.sortDesc
	prevSearch := m.search

	base, cmd := m.tableModel.Update(msg)
	m.tableModel = base

	if m.sortCol != prevSort || m.sortDesc != prevDesc || m.search != prevSearch {
		m.refresh()
	} else {
		m.clampPage(len(m.displayRows))
		m.clampCursor(len(m.pageRows()))
	}
	return m, cmd
}

// Selected returns the warning under the cursor.
func (m *WarningTableModel) Selected() (model.EnrichedDeprecationWarning, bool) {
	rows := m.pageRows()
	if len(rows) == 0 {
		return model.EnrichedDeprecationWarning{}, false
	}
	return m.displayRows[rows[m.cursor]], true
}

func (m *WarningTableModel) refresh() {
	filtered := filterWarnings(m.allRows, m.search)
	if m.sortCol >= 0 && m.sortCol < len(m.columns) {
		m.displayRows = sortWarnings(filtered, m.columns[m.sortCol].Kind, m.sortDesc)
	} else {
		m.displayRows = filtered
	}
	m.clampPage(len(m.displayRows))
	m.clampCursor(len(m.pageRows()))
}

// pageRows returns the displayRows indices visible on the current page.
func (m *WarningTableModel) pageRows() []int {
	all := make([]int, len(m.displayRows))
	for i := range all {
		all[i] = i
	}
	return currentPageIndices(all, m.page, m.pageSize)
}

// renderTable renders the title bar, the table body for the current page
// and, for the focused table, the details of the selected warning.
func (m *WarningTableModel) renderTable(width int) string {
	pc := pageCount(len(m.displayRows), m.pageSize)
	hdr := m.renderHeader(m.page+1, pc)

	pageIdx := m.pageRows()
	if len(pageIdx) == 0 {
		empty := "  (no deprecations)"
		if m.search != "" {
			empty = "  (no matches)"
		}
		return lipgloss.JoinVertical(lipgloss.Left, hdr, StyleDim.Render(empty))
	}

	if width <= 0 {
		width = 80
	}
	// Every cell carries one cell of padding on each side.
	widths := columnWidths(width-2*len(m.columns), m.columns)

	headers := make([]string, len(m.columns))
	for i, c := range m.columns {
		title := c.Title
		if i == m.sortCol {
			if m.sortDesc {
				title += "↓"
			} else {
				title += "↑"
			}
		}
		headers[i] = format.Truncate(title, widths[i])
	}

	rows := make([]model.EnrichedDeprecationWarning, 0, len(pageIdx))
	for _, idx := range pageIdx {
		rows = append(rows, m.displayRows[idx])
	}

	sortCol, cursor, focused, cols := m.sortCol, m.cursor, m.focused, m.columns
	t := ltable.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == ltable.HeaderRow {
				if col == sortCol {
					return base.Bold(true).Foreground(colorBlue)
				}
				return base.Bold(true).Foreground(colorGray)
			}
			switch {
			case focused && row == cursor:
				base = base.Background(colorDark).Bold(true)
			case row%2 == 0:
				base = base.Background(colorAlt)
			}
			switch cols[col].Kind {
			case colLevel:
				return base.Foreground(levelColor(rows[row].Level))
			case colIndex:
				return base.Foreground(colorCyan)
			case colFlags:
				return base.Foreground(colorOrange)
			case colDetails:
				return base.Foreground(colorGray)
			default:
				return base.Foreground(colorWhite)
			}
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	for _, r := range rows {
		cells := make([]string, len(m.columns))
		for i, c := range m.columns {
			cells[i] = format.Truncate(cellValue(r, c.Kind), widths[i])
		}
		t = t.Row(cells...)
	}

	parts := []string{hdr, t.String()}
	if m.focused {
		if d := m.renderSelection(width); d != "" {
			parts = append(parts, d)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the title bar with search/sort/page hints.
func (m *WarningTableModel) renderHeader(page, pages int) string {
	pageInfo := fmt.Sprintf("Page %d/%d", page, pages)
	title := fmt.Sprintf("%s (%d)", m.title, len(m.allRows))

	var right string
	switch {
	case m.searching:
		right = "Search: " + m.input.View()
	case m.search != "":
		right = fmt.Sprintf("filter=%q  %s", m.search, pageInfo)
	default:
		right = fmt.Sprintf("[/: search]  [1-%d: sort]  [←→: page]  %s", len(m.columns), pageInfo)
	}

	style := StyleDim
	if m.focused {
		style = style.Foreground(colorPurple).Bold(true)
	}
	return style.Render(title) + "  " + StyleDim.Render(right)
}

// renderSelection shows the details and documentation URL of the selected
// warning, which the table columns truncate or omit.
func (m *WarningTableModel) renderSelection(width int) string {
	w, ok := m.Selected()
	if !ok {
		return ""
	}
	var lines []string
	if w.Index != "" {
		lines = append(lines, "Index:   "+sanitize(w.Index))
	}
	lines = append(lines, "Message: "+sanitize(w.Message))
	if w.Details != "" {
		lines = append(lines, "Details: "+sanitize(w.Details))
	}
	if w.URL != "" {
		lines = append(lines, "Docs:    "+sanitize(w.URL))
	}
	for i, l := range lines {
		lines[i] = format.Truncate(l, width)
	}
	return StyleDim.Render(strings.Join(lines, "\n"))
}

// cellValue returns the display text of a warning field for a column kind.
// Server supplied text is sanitized before it reaches the terminal.
func cellValue(w model.EnrichedDeprecationWarning, kind columnKind) string {
	switch kind {
	case colIndex:
		return sanitize(w.Index)
	case colLevel:
		return format.FormatLevel(w.Level)
	case colMessage:
		return sanitize(w.Message)
	case colDetails:
		return sanitize(w.Details)
	case colFlags:
		return format.FormatFlags(w)
	default:
		return ""
	}
}
