// Package report renders an upgrade status for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/dm/eua-go/internal/format"
	"github.com/dm/eua-go/internal/model"
)

// Format is an output format for Render.
type Format string

const (
	JSONFormat Format = "json"
	TextFormat Format = "text"
)

var (
	styleReady    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10b981"))
	styleNotReady = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	styleSection  = lipgloss.NewStyle().Bold(true).Underline(true)
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	styleIndex    = lipgloss.NewStyle().Foreground(lipgloss.Color("#06b6d4"))

	levelStyles = map[string]lipgloss.Style{
		model.LevelCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),
		model.LevelWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
	}
)

// Render writes status to w in the requested format.
func Render(w io.Writer, status *model.UpgradeStatus, f Format) error {
	if status == nil {
		return fmt.Errorf("report: nil status")
	}
	switch f {
	case JSONFormat:
		return renderJSON(w, status)
	case TextFormat:
		_, err := io.WriteString(w, renderText(status))
		return err
	default:
		return fmt.Errorf("unsupported report format: %s", f)
	}
}

func renderJSON(w io.Writer, status *model.UpgradeStatus) error {
	out := *status
	if out.Cluster == nil {
		out.Cluster = []model.EnrichedDeprecationWarning{}
	}
	if out.Indices == nil {
		out.Indices = []model.EnrichedDeprecationWarning{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderText(status *model.UpgradeStatus) string {
	var sb strings.Builder
	s := model.Summarize(status)

	readiness := format.FormatReadiness(status.ReadyForUpgrade)
	if status.ReadyForUpgrade {
		readiness = styleReady.Render(readiness)
	} else {
		readiness = styleNotReady.Render(readiness)
	}
	fmt.Fprintf(&sb, "Upgrade status: %s\n", readiness)
	fmt.Fprintf(&sb, "%s, %s, %s\n",
		format.FormatCount(s.Critical, "critical issue"),
		format.FormatCount(s.Warning, "warning"),
		format.FormatCount(s.Info, "info message"))
	if s.Reindex > 0 || s.Closed > 0 {
		fmt.Fprintf(&sb, "%s, %s\n",
			format.FormatCount(s.Reindex, "index warning")+" requiring reindex",
			format.FormatCount(s.Closed, "closed index"))
	}

	sb.WriteString("\n")
	writeSection(&sb, "Cluster deprecations", status.Cluster)
	sb.WriteString("\n")
	writeSection(&sb, "Index deprecations", status.Indices)

	return sb.String()
}

func writeSection(sb *strings.Builder, title string, warnings []model.EnrichedDeprecationWarning) {
	sb.WriteString(styleSection.Render(fmt.Sprintf("%s (%d)", title, len(warnings))))
	sb.WriteString("\n")
	if len(warnings) == 0 {
		sb.WriteString(styleDim.Render("  none"))
		sb.WriteString("\n")
		return
	}

	for _, w := range warnings {
		level := fmt.Sprintf("%-10s", "["+format.FormatLevel(w.Level)+"]")
		if st, ok := levelStyles[w.Level]; ok {
			level = st.Render(level)
		}
		line := "  " + level + " "
		if w.Index != "" {
			line += styleIndex.Render(clean(w.Index)) + "  "
		}
		line += clean(w.Message)
		if flags := format.FormatFlags(w); flags != "" {
			line += "  " + styleDim.Render("("+flags+")")
		}
		sb.WriteString(line)
		sb.WriteString("\n")

		if w.Details != "" {
			sb.WriteString("             " + styleDim.Render(clean(w.Details)) + "\n")
		}
		if w.URL != "" {
			sb.WriteString("             " + styleDim.Render(clean(w.URL)) + "\n")
		}
	}
}

// clean removes terminal escape sequences and control characters from text
// supplied by the cluster. Line breaks and tabs become spaces.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
			return -1
		}
		return r
	}, ansi.Strip(s))
}
