// Package tui provides a Bubble Tea picker for the capture history.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/fakeyudi/glance/internal/history"
	"github.com/fakeyudi/glance/internal/status"
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))

	currentMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	sizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Key bindings ─────────────────

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "newer"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "older"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "cancel"),
	),
}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the picker.
type Model struct {
	entries  []history.Entry
	current  int
	cursor   int
	now      time.Time
	width    int
	help     help.Model
	chosen   bool
	quitting bool
}

// New creates a picker over h with the cursor on the current selection.
func New(h history.History, now time.Time) Model {
	return Model{
		entries: h.Entries,
		current: h.Selected,
		cursor:  h.Selected,
		now:     now,
		width:   60,
		help:    help.New(),
	}
}

// Choice identifies the entry the user confirmed. ID is empty for entries
// written before IDs existed.
type Choice struct {
	Index int
	ID    string
}

// Choice returns the picked entry, if the user confirmed one.
func (m Model) Choice() (Choice, bool) {
	if !m.chosen || m.cursor >= len(m.entries) {
		return Choice{}, false
	}
	return Choice{Index: m.cursor, ID: m.entries[m.cursor].ID}, true
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Choose):
			if len(m.entries) > 0 {
				m.chosen = true
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	title := titleStyle.Width(m.width).Render("glance  history")

	var rows []string
	if len(m.entries) == 0 {
		rows = append(rows, dimStyle.Render("  (no captures yet)"))
	}
	for i, e := range m.entries {
		rows = append(rows, m.renderRow(i, e))
	}

	statusBar := statusBarStyle.Width(m.width).Render(m.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), statusBar)
}

func (m Model) renderRow(i int, e history.Entry) string {
	mark := "  "
	if i == m.current {
		mark = currentMarkStyle.Render("▸ ")
	}
	line := fmt.Sprintf("%s%-32s %s  %s",
		mark,
		status.ShortName(e.Name),
		sizeStyle.Render(fmt.Sprintf("%9s", status.HumanSize(e.Size))),
		timeStyle.Render(humanize.RelTime(e.CreatedAt(), m.now, "ago", "from now")),
	)
	if i == m.cursor {
		return selectedRowStyle.Width(m.width).Render(line)
	}
	return line
}

// Run starts the picker and returns the chosen entry, if any.
func Run(h history.History, now time.Time) (Choice, bool, error) {
	p := tea.NewProgram(New(h, now))
	final, err := p.Run()
	if err != nil {
		return Choice{}, false, err
	}
	c, ok := final.(Model).Choice()
	return c, ok, nil
}
