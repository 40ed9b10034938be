package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	wifilog "github.com/shazow/wifisearch/internal/log"
	"github.com/shazow/wifisearch/wifi"
)

// maxWatchLogs is how many log lines the watch view shows.
const maxWatchLogs = 8

// SearchFunc blocks until an access point is found, the search gives up, or
// ctx is cancelled.
type SearchFunc func(ctx context.Context) (*wifi.AccessPoint, error)

type searchDoneMsg struct {
	ap  *wifi.AccessPoint
	err error
}

// WatchModel shows a running search until it finishes or the user quits.
type WatchModel struct {
	pattern     string
	search      SearchFunc
	signalRange wifi.SignalRange

	ctx    context.Context
	cancel context.CancelFunc
	logCh  <-chan tea.Msg

	spinner spinner.Model
	logs    []string
	done    bool
	result  *wifi.AccessPoint
	err     error
}

// NewWatchModel creates a WatchModel that runs search once started. Log
// records received on logs are shown under the spinner, after the most recent
// records of the default logger.
func NewWatchModel(ctx context.Context, pattern string, r wifi.SignalRange, logs <-chan tea.Msg, search SearchFunc) *WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(CurrentTheme.Primary)

	ctx, cancel := context.WithCancel(ctx)
	m := &WatchModel{
		pattern:     pattern,
		search:      search,
		signalRange: r,
		ctx:         ctx,
		cancel:      cancel,
		logCh:       logs,
		spinner:     s,
	}
	for _, r := range wifilog.Logs() {
		m.addLog(r)
	}
	return m
}

func (m *WatchModel) addLog(r slog.Record) {
	m.logs = append(m.logs, formatLog(r))
	if len(m.logs) > maxWatchLogs {
		m.logs = m.logs[1:]
	}
}

// Init starts the spinner, the search and the log listener.
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runSearch(), waitForLog(m.logCh))
}

func (m *WatchModel) runSearch() tea.Cmd {
	ctx, search := m.ctx, m.search
	return func() tea.Msg {
		ap, err := search(ctx)
		return searchDoneMsg{ap: ap, err: err}
	}
}

func waitForLog(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return <-ch
	}
}

// Update handles all incoming messages and updates the model accordingly.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		m.done = true
		m.result, m.err = msg.ap, msg.err
		m.cancel()
		return m, tea.Quit
	case wifilog.LogMsg:
		m.addLog(slog.Record(msg))
		return m, waitForLog(m.logCh)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			m.cancel()
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func formatLog(r slog.Record) string {
	var s strings.Builder
	fmt.Fprintf(&s, "[%s] %s", r.Level, r.Message)
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&s, " %s=%v", a.Key, a.Value.Any())
		return true
	})
	return s.String()
}

// View renders the UI based on the current model state.
func (m *WatchModel) View() string {
	var s strings.Builder

	switch {
	case m.result != nil:
		strength := m.signalRange.Strength(m.result.Signal)
		signal := lipgloss.NewStyle().
			Foreground(CurrentTheme.SignalColor(strength, lipgloss.HasDarkBackground())).
			Render(fmt.Sprintf("%d (%d%%)", m.result.Signal, strength))
		fmt.Fprintf(&s, "%s %s %s %s\n",
			lipgloss.NewStyle().Foreground(CurrentTheme.Success).Render("Found"),
			lipgloss.NewStyle().Foreground(CurrentTheme.Normal).Bold(true).Render(m.result.SSID),
			lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render(m.result.BSSID),
			signal)
	case m.err != nil:
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render("Error: "+m.err.Error()) + "\n")
	case m.done:
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render("No access point matching "+m.pattern) + "\n")
	default:
		fmt.Fprintf(&s, "%s %s\n", m.spinner.View(),
			lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render("Searching for "+m.pattern+"..."))
	}

	logStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle)
	for _, line := range m.logs {
		s.WriteString(logStyle.Render(line) + "\n")
	}
	if !m.done {
		s.WriteString(logStyle.Render("(press q to stop)") + "\n")
	}
	return s.String()
}

// Result returns the outcome of the search once the program has exited.
func (m *WatchModel) Result() (*wifi.AccessPoint, error) {
	return m.result, m.err
}
