package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/eua-go/internal/model"
)

// Color constants.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorPurple = lipgloss.Color("#8b5cf6")
	colorOrange = lipgloss.Color("#f97316")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
	colorAlt    = lipgloss.Color("#0f172a")
)

// Readiness styles, used for the header badge.
var (
	StyleReady    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleNotReady = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// StyleHeader is the full-width header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleOverviewCard is one bordered card of the overview row.
var StyleOverviewCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Margin(0).
	Align(lipgloss.Center)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
)

// levelColor returns the foreground color for a deprecation level.
func levelColor(level string) lipgloss.Color {
	switch level {
	case model.LevelCritical:
		return colorRed
	case model.LevelWarning:
		return colorYellow
	case model.LevelInfo:
		return colorBlue
	default:
		return colorGray
	}
}

// ReadinessStyle returns the badge style for the given readiness.
func ReadinessStyle(ready bool) lipgloss.Style {
	if ready {
		return StyleReady
	}
	return StyleNotReady
}
