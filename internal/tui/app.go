package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/eua-go/internal/engine"
	"github.com/dm/eua-go/internal/model"
)

type connState int

const (
	stateConnected    connState = iota
	stateDisconnected connState = iota
)

// Focus targets for tab navigation.
const (
	focusCluster = iota
	focusIndices
	focusCount
)

// App is the root Bubble Tea model for eua watch.
type App struct {
	agg              *engine.Aggregator
	baseURL          string
	isCloud          bool
	apmIndexPatterns []string
	pollInterval     time.Duration

	// Poll state
	fetching bool // true while a fetchCmd goroutine is in-flight
	current  *model.UpgradeStatus
	history  *model.StatusHistory

	// Connection state
	connState        connState
	consecutiveFails int
	lastError        error
	lastUpdated      time.Time
	nextRetryAt      time.Time
	countdownGen     int
	tickGen          int

	// Layout
	width, height int

	// UI state
	showHelp     bool
	focus        int
	clusterTable WarningTableModel
	indexTable   WarningTableModel
}

// NewApp creates an App polling agg every interval. isCloud and
// apmIndexPatterns are passed through to every GetUpgradeStatus call.
func NewApp(agg *engine.Aggregator, isCloud bool, apmIndexPatterns []string, interval time.Duration) *App {
	app := &App{
		agg:              agg,
		isCloud:          isCloud,
		apmIndexPatterns: apmIndexPatterns,
		pollInterval:     interval,
		history:          model.NewStatusHistory(0),
		connState:        stateDisconnected,
		fetching:         true, // Init() always issues an immediate fetchCmd
		clusterTable:     NewClusterTable(),
		indexTable:       NewIndexTable(),
	}
	if agg != nil && agg.Client != nil {
		app.baseURL = agg.Client.BaseURL()
	}
	app.setFocus(focusCluster)
	return app
}

// Init implements tea.Model. Starts the first fetch immediately on launch.
func (app *App) Init() tea.Cmd {
	return app.fetch()
}

// Update implements tea.Model. All state changes happen here.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case StatusMsg:
		app.fetching = false
		app.current = msg.Status
		app.history.Push(model.PointFromStatus(msg.Status, msg.FetchedAt))
		if msg.Status != nil {
			app.clusterTable.SetData(msg.Status.Cluster)
			app.indexTable.SetData(msg.Status.Indices)
		}
		app.consecutiveFails = 0
		app.lastError = nil
		app.nextRetryAt = time.Time{}
		app.connState = stateConnected
		app.lastUpdated = msg.FetchedAt
		return app, app.scheduleTick(app.pollInterval)

	case FetchErrorMsg:
		app.fetching = false
		app.consecutiveFails++
		app.lastError = msg.Err
		app.connState = stateDisconnected
		backoff := backoffDuration(app.consecutiveFails)
		app.nextRetryAt = time.Now().Add(backoff)
		app.countdownGen++
		return app, tea.Batch(app.scheduleTick(backoff), countdownCmd(app.countdownGen))

	case TickMsg:
		if msg.Gen != app.tickGen || app.fetching {
			return app, nil
		}
		app.fetching = true
		return app, app.fetch()

	case CountdownTickMsg:
		if msg.Gen != app.countdownGen || app.connState != stateDisconnected {
			return app, nil
		}
		return app, countdownCmd(msg.Gen)

	case tea.KeyMsg:
		// A table in search mode owns the keyboard until the search ends.
		if app.focusedTable().searching {
			return app, app.updateFocusedTable(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if app.fetching {
				return app, nil
			}
			app.fetching = true
			return app, app.fetch()
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		case key.Matches(msg, keys.Tab):
			app.setFocus((app.focus + 1) % focusCount)
		case key.Matches(msg, keys.ShiftTab):
			app.setFocus((app.focus + focusCount - 1) % focusCount)
		default:
			return app, app.updateFocusedTable(msg)
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	var parts []string

	if h := renderHeader(app); h != "" {
		parts = append(parts, h)
	}
	if o := renderOverview(app); o != "" {
		parts = append(parts, o)
	}
	if app.current != nil {
		parts = append(parts,
			app.clusterTable.renderTable(app.width),
			app.indexTable.renderTable(app.width))
	}
	parts = append(parts, renderFooter(app))

	return strings.Join(parts, "\n")
}

func (app *App) setFocus(f int) {
	app.focus = f
	app.clusterTable.focused = f == focusCluster
	app.indexTable.focused = f == focusIndices
}

func (app *App) focusedTable() *WarningTableModel {
	if app.focus == focusIndices {
		return &app.indexTable
	}
	return &app.clusterTable
}

func (app *App) focusedTitle() string {
	return app.focusedTable().title
}

func (app *App) updateFocusedTable(msg tea.Msg) tea.Cmd {
	t := app.focusedTable()
	updated, cmd := t.Update(msg)
	*t = updated
	return cmd
}

// scheduleTick replaces any pending poll tick with one firing after d.
func (app *App) scheduleTick(d time.Duration) tea.Cmd {
	app.tickGen++
	return tickCmd(d, app.tickGen)
}

func (app *App) fetch() tea.Cmd {
	return fetchCmd(app.agg, app.isCloud, app.apmIndexPatterns, app.pollInterval)
}

// tickCmd schedules the next poll after duration d.
func tickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// countdownCmd re-renders the retry countdown in one second.
func countdownCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownTickMsg{Gen: gen}
	})
}

// fetchCmd is a Bubble Tea command that computes the upgrade status and
// returns a StatusMsg or FetchErrorMsg. The call is bounded by the poll
// interval.
func fetchCmd(agg *engine.Aggregator, isCloud bool, patterns []string, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		timeout := interval - 500*time.Millisecond
		if timeout < 500*time.Millisecond {
			timeout = 500 * time.Millisecond
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		status, err := agg.GetUpgradeStatus(ctx, isCloud, patterns)
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		return StatusMsg{Status: status, FetchedAt: time.Now()}
	}
}

// backoffDuration returns min(2^fails * time.Second, 60*time.Second).
// At fails=1: 2s, fails=2: 4s, fails=3: 8s, ..., fails>=6: 60s.
func backoffDuration(fails int) time.Duration {
	const maxBackoff = 60 * time.Second
	if fails <= 0 {
		return time.Second
	}
	if fails >= 6 {
		return maxBackoff
	}
	return time.Duration(1<<fails) * time.Second
}
