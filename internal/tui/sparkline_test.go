package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testColor is a neutral color used for sparkline tests.
var testColor = lipgloss.Color("#ffffff")

func spark(values []float64, width int) []rune {
	return []rune(ansi.Strip(RenderSparkline(values, width, testColor)))
}

func TestRenderSparkline_Empty(t *testing.T) {
	assert.Equal(t, strings.Repeat(" ", 10), string(spark(nil, 10)))
	assert.Equal(t, strings.Repeat(" ", 10), string(spark([]float64{}, 10)))
}

func TestRenderSparkline_ZeroWidth(t *testing.T) {
	assert.Equal(t, "", RenderSparkline([]float64{1, 2, 3}, 0, testColor))
}

func TestRenderSparkline_AllZeros(t *testing.T) {
	assert.Equal(t, "▁▁▁▁▁", string(spark([]float64{0, 0, 0, 0, 0}, 5)))
}

func TestRenderSparkline_Ascending(t *testing.T) {
	result := spark([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 8)
	require.Len(t, result, 8)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i], result[i-1], "index %d", i)
	}
	assert.Equal(t, '█', result[7])
}

func TestRenderSparkline_PositiveNeverAtFloor(t *testing.T) {
	// One remaining critical next to a large count must not look like zero.
	result := spark([]float64{100, 1, 0}, 3)
	require.Len(t, result, 3)
	assert.Equal(t, '█', result[0])
	assert.Equal(t, '▂', result[1])
	assert.Equal(t, '▁', result[2])
}

func TestRenderSparkline_TruncatesLeft(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i)
	}
	result := spark(values, 10)
	require.Len(t, result, 10)
	assert.Equal(t, '█', result[9])
	assert.NotEqual(t, '▁', result[0], "oldest visible value is 10, not 0")
}

func TestRenderSparkline_SingleValueLeftPadded(t *testing.T) {
	assert.Equal(t, "    █", string(spark([]float64{42}, 5)))
}

func TestSparkLevel(t *testing.T) {
	assert.Equal(t, 0, sparkLevel(0, 10))
	assert.Equal(t, 0, sparkLevel(-1, 10))
	assert.Equal(t, 0, sparkLevel(5, 0))
	assert.Equal(t, 1, sparkLevel(0.1, 10))
	assert.Equal(t, 7, sparkLevel(10, 10))
}
