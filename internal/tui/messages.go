package tui

import (
	"time"

	"github.com/dm/eua-go/internal/model"
)

// StatusMsg delivers a successful upgrade status poll to the TUI.
type StatusMsg struct {
	Status    *model.UpgradeStatus
	FetchedAt time.Time
}

// FetchErrorMsg signals a poll failure.
type FetchErrorMsg struct{ Err error }

// TickMsg triggers the next scheduled poll. Gen identifies the tick that
// scheduled it; only the most recently scheduled tick starts a fetch.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// CountdownTickMsg refreshes the retry countdown in the header once a second
// while disconnected. Gen identifies the failure that scheduled it; ticks from
// an older failure are dropped.
type CountdownTickMsg struct{ Gen int }
