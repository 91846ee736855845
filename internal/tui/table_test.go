package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/eua-go/internal/model"
)

func TestColumnWidths_ZeroAvailable(t *testing.T) {
	defs := []columnDef{
		{Title: "A", Width: 10},
		{Title: "B", Width: 20},
	}
	assert.Equal(t, []int{10, 20}, columnWidths(0, defs), "zero available → preferred widths returned unchanged")
	assert.Equal(t, []int{10, 20}, columnWidths(-1, defs))
}

func TestColumnWidths_EmptyDefs(t *testing.T) {
	assert.Equal(t, []int{}, columnWidths(100, nil))
}

func TestColumnWidths_Proportional(t *testing.T) {
	defs := []columnDef{
		{Title: "A", Width: 10},
		{Title: "B", Width: 30},
	}
	assert.Equal(t, []int{20, 60}, columnWidths(80, defs))
}

func TestColumnWidths_LastTakesRemainder(t *testing.T) {
	defs := []columnDef{
		{Title: "A", Width: 20},
		{Title: "B", Width: 10},
		{Title: "C", Width: 10},
	}
	got := columnWidths(81, defs)
	assert.Equal(t, []int{40, 20, 21}, got)
}

func TestColumnWidths_ClampsToMinimum(t *testing.T) {
	defs := []columnDef{
		{Title: "A", Width: 10},
		{Title: "B", Width: 10},
		{Title: "C", Width: 10},
	}
	for i, w := range columnWidths(6, defs) {
		assert.GreaterOrEqual(t, w, minColWidth, "column %d", i)
	}
}

func TestColumnWidths_SingleColumn(t *testing.T) {
	assert.Equal(t, []int{50}, columnWidths(50, []columnDef{{Title: "Name", Width: 20}}))
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		totalRows, pageSize, want int
	}{
		{0, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{21, 10, 3},
		{5, 0, 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, pageCount(tc.totalRows, tc.pageSize), "pageCount(%d, %d)", tc.totalRows, tc.pageSize)
	}
}

func TestCurrentPageIndices(t *testing.T) {
	all := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	assert.Equal(t, []int{0, 1, 2, 3}, currentPageIndices(all, 0, 4))
	assert.Equal(t, []int{4, 5, 6, 7}, currentPageIndices(all, 1, 4))
	assert.Equal(t, []int{8, 9}, currentPageIndices(all, 2, 4))
	// Page beyond range resets to start.
	assert.Equal(t, []int{0, 1, 2, 3}, currentPageIndices(all, 5, 4))
	assert.Nil(t, currentPageIndices(nil, 0, 4))
}

func TestDigitToCol(t *testing.T) {
	assert.Equal(t, 0, digitToCol("1"))
	assert.Equal(t, 8, digitToCol("9"))
	assert.Equal(t, -1, digitToCol("0"))
	assert.Equal(t, -1, digitToCol("a"))
	assert.Equal(t, -1, digitToCol("12"))
}

// makeIndexWarnings returns n index warnings named index-00, index-01, ...
func makeIndexWarnings(n int) []model.EnrichedDeprecationWarning {
	rows := make([]model.EnrichedDeprecationWarning, n)
	for i := range rows {
		rows[i] = warning(model.LevelWarning, fmt.Sprintf("index-%02d", i), "Index created before 7.0")
	}
	return rows
}

func focusedIndexTable(rows []model.EnrichedDeprecationWarning) WarningTableModel {
	m := NewIndexTable()
	m.focused = true
	m.SetData(rows)
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
)

func TestTableModel_IgnoresKeysWhenUnfocused(t *testing.T) {
	m := NewIndexTable()
	m.SetData(makeIndexWarnings(5))

	m, _ = m.Update(keyDown)
	assert.Equal(t, 0, m.cursor)
}

func TestTableModel_CursorDownUp(t *testing.T) {
	m := focusedIndexTable(makeIndexWarnings(5))

	m, _ = m.Update(keyDown)
	m, _ = m.Update(keyDown)
	assert.Equal(t, 2, m.cursor)

	m, _ = m.Update(keyUp)
	assert.Equal(t, 1, m.cursor)

	m, _ = m.Update(keyUp)
	m, _ = m.Update(keyUp)
	assert.Equal(t, 0, m.cursor, "cursor must not go below 0")
}

func TestTableModel_CursorVimKeys(t *testing.T) {
	m := focusedIndexTable(makeIndexWarnings(5))

	m, _ = m.Update(runeKey("j"))
	assert.Equal(t, 1, m.cursor)

	m, _ = m.Update(runeKey("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestTableModel_CursorClampedAtPageEnd(t *testing.T) {
	m := focusedIndexTable(makeIndexWarnings(3))

	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyDown)
	}
	assert.Equal(t, 2, m.cursor)

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "index-02", sel.Index)
}

func TestTableModel_Pagination(t *testing.T) {
	m := focusedIndexTable(makeIndexWarnings(25))

	m, _ = m.Update(keyDown)
	require.Equal(t, 1, m.cursor)

	m, _ = m.Update(keyRight)
	assert.Equal(t, 1, m.page)
	assert.Equal(t, 0, m.cursor, "cursor resets on page change")
	sel, _ := m.Selected()
	assert.Equal(t, "index-10", sel.Index)

	m, _ = m.Update(keyRight)
	m, _ = m.Update(keyRight)
	assert.Equal(t, 2, m.page, "page is clamped to the last page")

	m, _ = m.Update(keyLeft)
	assert.Equal(t, 1, m.page)
}

func TestTableModel_SortKeyTogglesDirection(t *testing.T) {
	m := focusedIndexTable(makeIndexWarnings(3))
	require.Equal(t, -1, m.sortCol, "status order by default")

	m, _ = m.Update(runeKey("1"))
	assert.Equal(t, 0, m.sortCol)
	assert.True(t, m.sortDesc)
	assert.Equal(t, "index-02", m.displayRows[0].Index)

	m, _ = m.Update(runeKey("1"))
	assert.False(t, m.sortDesc)
	assert.Equal(t, "index-00", m.displayRows[0].Index)

	// Digits beyond the column count are ignored.
	m, _ = m.Update(runeKey("9"))
	assert.Equal(t, 0, m.sortCol)
}

func TestTableModel_CursorResetOnSortChange(t *testing.T) {
	m := focusedIndexTable(makeIndexWarnings(5))
	m, _ = m.Update(keyDown)
	m, _ = m.Update(keyDown)
	require.Equal(t, 2, m.cursor)

	m, _ = m.Update(runeKey("2"))
	assert.Equal(t, 0, m.cursor)
}

func TestTableModel_SearchApplyAndClear(t *testing.T) {
	m := focusedIndexTable([]model.EnrichedDeprecationWarning{
		warning(model.LevelWarning, "alpha", "Index created before 7.0"),
		warning(model.LevelWarning, "beta", "Index created before 7.0"),
		warning(model.LevelCritical, "gamma", "APM index requires conversion to 7.x format"),
	})
	m, _ = m.Update(keyDown)

	m, _ = m.Update(runeKey("/"))
	require.True(t, m.searching)
	for _, r := range "apm" {
		m, _ = m.Update(runeKey(string(r)))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.searching)
	assert.Equal(t, "apm", m.search)
	assert.Equal(t, 0, m.cursor, "cursor resets after search confirm")
	require.Len(t, m.displayRows, 1)
	assert.Equal(t, "gamma", m.displayRows[0].Index)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, "", m.search)
	assert.Len(t, m.displayRows, 3)
}

func TestTableModel_ClampCursor(t *testing.T) {
	base := newTableModel(nil)

	base.cursor = 10
	base.clampCursor(5)
	assert.Equal(t, 4, base.cursor)

	base.cursor = -1
	base.clampCursor(5)
	assert.Equal(t, 0, base.cursor)

	base.cursor = 3
	base.clampCursor(0)
	assert.Equal(t, 0, base.cursor)
}

func TestWarningTable_SetDataKeepsSortAndFilter(t *testing.T) {
	m := focusedIndexTable(makeIndexWarnings(3))
	m, _ = m.Update(runeKey("1"))

	m.SetData(makeIndexWarnings(4))
	require.Len(t, m.displayRows, 4)
	assert.Equal(t, "index-03", m.displayRows[0].Index, "descending index sort survives a refresh")
}

func TestWarningTable_Render(t *testing.T) {
	closed := warning(model.LevelCritical, "legacy-idx", "Index created before 7.0")
	closed.Reindex = true
	closed.BlockerForReindexing = model.BlockerIndexClosed
	closed.URL = "https://example.com/docs"

	m := focusedIndexTable([]model.EnrichedDeprecationWarning{closed})
	out := ansi.Strip(m.renderTable(140))

	assert.Contains(t, out, "Index Deprecations (1)")
	assert.Contains(t, out, "legacy-idx")
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "reindex, index closed")
	assert.Contains(t, out, "Docs:    https://example.com/docs", "focused table shows the selection")
}

func TestWarningTable_RenderEmpty(t *testing.T) {
	m := NewClusterTable()
	m.SetData(nil)
	out := ansi.Strip(m.renderTable(80))
	assert.Contains(t, out, "Cluster Deprecations (0)")
	assert.Contains(t, out, "(no deprecations)")
}
