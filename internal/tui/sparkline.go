package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks is the 8-level block character set for sparklines.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts counts into a block sparkline of exactly width
// cells, colored with color.
//
//   - no values: width spaces
//   - zero: '▁'
//   - any positive value: at least '▂', the maximum maps to '█'
//   - more values than width: the last width values are used
//   - fewer values than width: left-padded with spaces
func RenderSparkline(values []float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	maxVal := slices.Max(values)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(values)))
	for _, v := range values {
		sb.WriteRune(sparkBlocks[sparkLevel(v, maxVal)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}

// sparkLevel maps v in [0, maxVal] to a block index. Positive values never
// share the zero block so a single remaining issue stays visible.
func sparkLevel(v, maxVal float64) int {
	if v <= 0 || maxVal <= 0 {
		return 0
	}
	idx := 1 + int(v/maxVal*6)
	if idx > 7 {
		idx = 7
	}
	return idx
}
