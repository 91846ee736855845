package tui

// renderFooter renders the key hint line at full terminal width: the focused
// table and either a brief hint or, when help is toggled on, every binding.
// The focus label is left out until the tables are shown.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	text := "? for help"
	if app.current != nil {
		text = "focus: " + app.focusedTitle() + "  " + text
	}
	if app.showHelp {
		text = helpText
	}
	return StyleDim.Width(width).Render(text)
}
