package tui

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/eua-go/internal/client"
	"github.com/dm/eua-go/internal/format"
)

// renderHeader renders the top header bar on a single line of exactly the
// terminal width.
//
// Layout:
//
//	left:   cluster URL (or "Connecting to <URL>..." before the first status)
//	center: "● READY" / "● NOT READY" (or "● DISCONNECTED  <reason>" when offline)
//	right:  "Last: HH:MM:SS  Poll: Ns" (or the retry countdown when offline)
//
// When space runs out the right part is dropped first, then the left part is
// truncated.
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	var (
		left                    string
		center, right           string
		centerStyle, rightStyle lipgloss.Style
	)

	disconnected := app.connState == stateDisconnected && app.lastError != nil

	if app.current == nil {
		left = "Connecting to " + app.baseURL + "..."
	} else {
		left = app.baseURL
	}

	switch {
	case disconnected:
		center = "● DISCONNECTED  " + classifyError(app.lastError)
		centerStyle = StyleError
		right = retryCountdown(app.nextRetryAt)
		rightStyle = StyleError
	case app.current != nil:
		center = "● " + format.FormatReadiness(app.current.ReadyForUpgrade)
		centerStyle = ReadinessStyle(app.current.ReadyForUpgrade)
		lastStr := "--:--:--"
		if !app.lastUpdated.IsZero() {
			lastStr = app.lastUpdated.Format("15:04:05")
		}
		right = fmt.Sprintf("Last: %s  Poll: %s", lastStr, formatDuration(app.pollInterval))
		rightStyle = StyleDim
	}

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	gap := func(s string) int {
		if s == "" {
			return 0
		}
		return 1
	}
	if lipgloss.Width(left)+lipgloss.Width(center)+lipgloss.Width(right)+gap(center)+gap(right) > innerWidth {
		right = ""
	}
	center = format.Truncate(center, innerWidth)
	leftRoom := innerWidth - lipgloss.Width(center) - gap(center)
	if leftRoom < 0 {
		leftRoom = 0
	}
	left = format.Truncate(sanitize(left), leftRoom)

	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing
	if right == "" {
		// Center sits right-aligned when there is no right part.
		leftSpacing, rightSpacing = spacing, 0
	}

	if center != "" {
		center = centerStyle.Render(center)
	}
	if right != "" {
		right = rightStyle.Render(right)
	}

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).MaxWidth(width).Render(row)
}

// classifyError maps a poll error to a short operator-facing reason.
// Unknown errors are shown verbatim, cut at 40 characters.
func classifyError(err error) string {
	if err == nil {
		return ""
	}

	var se *client.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusUnauthorized:
			return "Authentication failed (401)"
		case http.StatusForbidden:
			return "Authentication failed (403)"
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized"):
		return "Authentication failed (401)"
	case strings.Contains(lower, "403") || strings.Contains(lower, "forbidden"):
		return "Authentication failed (403)"
	case strings.Contains(lower, "deadline exceeded") || strings.Contains(lower, "timeout"):
		return "Timeout"
	case isTLSError(err):
		return "TLS error"
	}

	msg = sanitize(msg)
	if len([]rune(msg)) > 40 {
		return string([]rune(msg)[:40]) + "..."
	}
	return msg
}

// isTLSError reports whether err looks like a TLS handshake or certificate failure.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "tls") ||
		strings.Contains(lower, "x509") ||
		strings.Contains(lower, "certificate")
}

// retryCountdown describes when the next poll after a failure happens.
func retryCountdown(next time.Time) string {
	if next.IsZero() {
		return "Press r to retry"
	}
	remaining := time.Until(next)
	if remaining <= 0 {
		return "Retrying..."
	}
	secs := int(math.Ceil(remaining.Seconds()))
	return fmt.Sprintf("Retrying in %ds (r: retry now)", secs)
}

// formatDuration formats a poll interval compactly, e.g. "10s", "2m" or "1m30s".
func formatDuration(d time.Duration) string {
	if d >= time.Minute {
		m := int(d / time.Minute)
		s := int((d % time.Minute) / time.Second)
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// sanitize strips terminal escape sequences and control characters from
// server supplied text. Newlines and tabs become spaces.
func sanitize(s string) string {
	rs := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == 0x1b {
			if i+1 >= len(rs) {
				break
			}
			switch rs[i+1] {
			case '[':
				// CSI: parameters up to a final byte in 0x40–0x7E.
				i += 2
				for i < len(rs) && (rs[i] < 0x40 || rs[i] > 0x7e) {
					i++
				}
			case ']':
				// OSC: terminated by BEL or ESC \.
				i += 2
				for i < len(rs) {
					if rs[i] == 0x07 {
						break
					}
					if rs[i] == 0x1b && i+1 < len(rs) && rs[i+1] == '\\' {
						i++
						break
					}
					i++
				}
			default:
				i++
			}
			continue
		}
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			sb.WriteByte(' ')
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
			// control character
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
