package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// minColWidth is the narrowest a column is ever rendered.
const minColWidth = 4

// columnKind identifies which warning field a column shows and sorts by.
type columnKind int

const (
	colIndex columnKind = iota
	colLevel
	colMessage
	colDetails
	colFlags
)

// columnDef describes a single column in a table.
type columnDef struct {
	Title string
	Width int // preferred width, scaled by columnWidths
	Kind  columnKind
}

// tableModel is the generic base for sortable, paginated, searchable tables.
type tableModel struct {
	columns   []columnDef
	sortCol   int // -1 = unsorted
	sortDesc  bool
	page      int // 0-indexed
	pageSize  int // default 10
	cursor    int // row within the current page
	search    string
	searching bool
	input     textinput.Model
	focused   bool
}

// newTableModel initialises a tableModel with sensible defaults.
func newTableModel(cols []columnDef) tableModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 80
	return tableModel{
		columns:  cols,
		sortCol:  -1,
		pageSize: 10,
		input:    ti,
	}
}

// Update handles keyboard input for sorting, pagination, cursor movement
// and search.
func (t tableModel) Update(msg tea.Msg) (tableModel, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.searching {
			switch {
			case key.Matches(msg, keys.Escape):
				t.searching = false
				t.input.Blur()
				if t.input.Value() == "" {
					t.search = ""
				}
				return t, nil
			case msg.Type == tea.KeyEnter:
				t.search = t.input.Value()
				t.searching = false
				t.input.Blur()
				t.page = 0
				t.cursor = 0
				return t, nil
			default:
				var cmd tea.Cmd
				t.input, cmd = t.input.Update(msg)
				return t, cmd
			}
		}

		switch {
		case key.Matches(msg, keys.Search):
			t.searching = true
			t.input.SetValue(t.search)
			t.input.Focus()
			return t, textinput.Blink
		case key.Matches(msg, keys.Escape):
			t.search = ""
			t.input.SetValue("")
			t.page = 0
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
			return t, nil
		case key.Matches(msg, keys.Down):
			// Upper bound is applied by the owning table, which knows the row count.
			t.cursor++
			return t, nil
		case key.Matches(msg, keys.PrevPage):
			if t.page > 0 {
				t.page--
			}
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.NextPage):
			t.page++
			t.cursor = 0
			return t, nil
		default:
			col := digitToCol(msg.String())
			if col >= 0 && col < len(t.columns) {
				if col == t.sortCol {
					t.sortDesc = !t.sortDesc
				} else {
					t.sortCol = col
					t.sortDesc = true
				}
				t.page = 0
				t.cursor = 0
				return t, nil
			}
		}
	}
	return t, nil
}

// digitToCol converts a "1"–"9" key string to a 0-indexed column number.
// Returns -1 for any other string.
func digitToCol(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

// pageCount returns the total number of pages for totalRows rows at pageSize rows per page.
// Always at least 1.
func pageCount(totalRows, pageSize int) int {
	if totalRows == 0 || pageSize <= 0 {
		return 1
	}
	c := totalRows / pageSize
	if totalRows%pageSize != 0 {
		c++
	}
	return c
}

// currentPageIndices returns the slice of row indices visible on the current page.
func currentPageIndices(allIndices []int, page, pageSize int) []int {
	if pageSize <= 0 || len(allIndices) == 0 {
		return allIndices
	}
	start := page * pageSize
	if start >= len(allIndices) {
		start = 0
	}
	end := start + pageSize
	if end > len(allIndices) {
		end = len(allIndices)
	}
	return allIndices[start:end]
}

// clampPage ensures the page index stays within valid bounds given the total
// number of rows and the configured pageSize.
func (t *tableModel) clampPage(totalRows int) {
	pc := pageCount(totalRows, t.pageSize)
	if t.page >= pc {
		t.page = pc - 1
	}
	if t.page < 0 {
		t.page = 0
	}
}

// clampCursor keeps the cursor on a row of a page holding pageRows rows.
func (t *tableModel) clampCursor(pageRows int) {
	if pageRows <= 0 {
		t.cursor = 0
		return
	}
	if t.cursor >= pageRows {
		t.cursor = pageRows - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// columnWidths scales the preferred column widths to fill available cells.
// The last column takes the rounding remainder. No column is narrower than
// minColWidth. A non-positive available returns the preferred widths.
func columnWidths(available int, defs []columnDef) []int {
	out := make([]int, len(defs))
	if available <= 0 {
		for i, d := range defs {
			out[i] = d.Width
		}
		return out
	}
	if len(defs) == 0 {
		return out
	}

	total := 0
	for _, d := range defs {
		total += d.Width
	}
	if total <= 0 {
		total = len(defs)
	}

	used := 0
	for i, d := range defs {
		var w int
		if i == len(defs)-1 {
			w = available - used
		} else {
			w = available * d.Width / total
		}
		if w < minColWidth {
			w = minColWidth
		}
		out[i] = w
		used += w
	}
	return out
}
