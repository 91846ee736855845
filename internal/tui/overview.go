package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/eua-go/internal/format"
	"github.com/dm/eua-go/internal/model"
)

// renderOverview renders the 6-card summary bar followed by a sparkline of
// critical counts across polls.
// Wide terminals (>= 80 cols): all cards in a single horizontal row.
// Narrow terminals (< 80 cols): cards stacked in rows of 2.
// Returns empty string if no status is available yet.
func renderOverview(app *App) string {
	if app.current == nil {
		return ""
	}

	width := app.width
	if width <= 0 {
		width = 80
	}

	narrowMode := width < 80

	var cardWidth int
	if narrowMode {
		cardWidth = (width - 4) / 2
		if cardWidth < 10 {
			cardWidth = 10
		}
	} else {
		cardWidth = (width - 12) / 6
		if cardWidth < 8 {
			cardWidth = 8
		}
	}

	s := model.Summarize(app.current)

	statusBg := colorGreen
	if !app.current.ReadyForUpgrade {
		statusBg = colorRed
	}
	status := StyleOverviewCard.
		Background(statusBg).
		Foreground(colorDark).
		Bold(true).
		Width(cardWidth).
		Render(format.FormatReadiness(app.current.ReadyForUpgrade) + "\nUpgrade")

	card := func(n int, label string, fg lipgloss.Color) string {
		style := StyleOverviewCard.Foreground(fg).Width(cardWidth)
		if n == 0 {
			style = style.Foreground(colorGray)
		}
		return style.Render(format.FormatNumber(int64(n)) + "\n" + label)
	}

	critical := card(s.Critical, "Critical", colorRed)
	warning := card(s.Warning, "Warning", colorYellow)
	info := card(s.Info, "Info", colorBlue)
	reindex := card(s.Reindex, "Reindex", colorPurple)
	closed := card(s.Closed, "Closed", colorOrange)

	var cards string
	if narrowMode {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, status, critical)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, warning, info)
		row3 := lipgloss.JoinHorizontal(lipgloss.Top, reindex, closed)
		cards = lipgloss.JoinVertical(lipgloss.Left, row1, row2, row3)
	} else {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, status, critical, warning, info, reindex, closed)
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, renderTrend(app, width))
}

// renderTrend renders "Critical <sparkline> N" for the poll history.
func renderTrend(app *App, width int) string {
	label := "Critical trend "
	last := ""
	if p, ok := app.history.Last(); ok {
		last = fmt.Sprintf(" %d", p.Critical)
	}
	sparkWidth := width - lipgloss.Width(label) - lipgloss.Width(last)
	if sparkWidth < 0 {
		sparkWidth = 0
	}
	return StyleDim.Render(label) +
		RenderSparkline(app.history.Values("critical"), sparkWidth, colorRed) +
		StyleDim.Render(last)
}
