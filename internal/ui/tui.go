// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/mdtick/internal/checklist"
	"github.com/nibzard/mdtick/internal/dashboard"
	"github.com/nibzard/mdtick/internal/logging"
	"github.com/nibzard/mdtick/internal/render"
	"github.com/nibzard/mdtick/internal/report"
)

// DefaultRefresh is how often the live dashboard re-reads its files.
const DefaultRefresh = 2 * time.Second

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refresh time.Duration
}

// WithRefresh sets the refresh interval. Non-positive values keep the default.
func WithRefresh(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// RunTUI starts the live dashboard for the path list at configPath.
func RunTUI(ctx context.Context, configPath string, opts ...TUIOption) error {
	c := &tuiConfig{refresh: DefaultRefresh}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	// Fail fast on a missing or empty list instead of opening an empty screen.
	if _, err := dashboard.LoadPaths(configPath); err != nil {
		return err
	}

	model := newTUIModel(configPath, c.refresh)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// entryFilter narrows the rows shown in the table.
type entryFilter int

const (
	filterAll entryFilter = iota
	filterPending
	filterComplete
	filterFailed
)

func (f entryFilter) String() string {
	switch f {
	case filterPending:
		return "in progress"
	case filterComplete:
		return "complete"
	case filterFailed:
		return "missing or unreadable"
	default:
		return ""
	}
}

func (f entryFilter) match(e checklist.Entry) bool {
	switch f {
	case filterPending:
		return e.OK() && e.Result.Pending() > 0
	case filterComplete:
		return e.OK() && e.Result.Total > 0 && e.Result.Pending() == 0
	case filterFailed:
		return !e.OK()
	default:
		return true
	}
}

type tuiModel struct {
	configPath   string
	collector    *dashboard.Controller
	entries      []checklist.Entry
	loadErr      error
	lastRefresh  time.Time
	tickInterval time.Duration
	filter       entryFilter
	showHelp     bool
	now          func() time.Time
}

type tickMsg time.Time

func newTUIModel(configPath string, interval time.Duration) *tuiModel {
	return &tuiModel{
		configPath:   configPath,
		collector:    dashboard.New(io.Discard, logging.Discard()),
		tickInterval: interval,
		now:          time.Now,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = filterPending
			return m, nil
		case "2":
			m.filter = filterComplete
			return m, nil
		case "3":
			m.filter = filterFailed
			return m, nil
		case "0":
			m.filter = filterAll
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != filterAll {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	if m.loadErr != nil {
		b.WriteString("Error loading path list:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.lastRefresh.IsZero() {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.entries)
	writeTable(&b, m.visible())
	writeSource(&b, m.configPath, m.lastRefresh)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads the path list and every listed file.
func (m *tuiModel) refresh() {
	paths, err := dashboard.LoadPaths(m.configPath)
	if err != nil {
		m.loadErr = err
		m.entries = nil
		return
	}
	m.loadErr = nil
	m.entries = m.collector.Collect(context.Background(), paths)
	m.lastRefresh = m.now()
}

func (m *tuiModel) visible() []checklist.Entry {
	if m.filter == filterAll {
		return m.entries
	}
	var out []checklist.Entry
	for _, e := range m.entries {
		if m.filter.match(e) {
			out = append(out, e)
		}
	}
	return out
}

func writeTitle(b *strings.Builder) {
	title := "mdtick live dashboard"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, entries []checklist.Entry) {
	totals := report.Build(entries, time.Time{}).Totals
	b.WriteString("Overview\n\n")
	b.WriteString(fmt.Sprintf("  Files: %d  Skipped: %d  Tasks: %d/%d  Overall: %s\n\n",
		totals.Files,
		totals.Skipped,
		totals.Done,
		totals.Total,
		render.FormatPercent(totals.Percent),
	))
}

func writeTable(b *strings.Builder, entries []checklist.Entry) {
	if len(entries) == 0 {
		b.WriteString("  No files match the current filter.\n\n")
		return
	}
	if err := (&render.TableRenderer{Out: b}).Render(entries); err != nil {
		b.WriteString("  " + err.Error() + "\n")
	}
	b.WriteString("\n")
}

func writeSource(b *strings.Builder, configPath string, at time.Time) {
	b.WriteString(fmt.Sprintf("Path list: %s (updated %s)\n\n", configPath, at.Format("15:04:05")))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh now\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show files in progress\n")
	b.WriteString("  2            Show complete files\n")
	b.WriteString("  3            Show missing or unreadable files\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
