package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fakeyudi/glance/internal/history"
)

func sampleHistory() history.History {
	return history.History{
		Entries: []history.Entry{
			{ID: "n", Name: "newest.png", Size: 1536, Time: 1000},
			{ID: "m", Name: "middle.png", Size: 10, Time: 900},
			{Name: "oldest.png", Size: 2048, Time: 800},
		},
		Selected: 1,
	}
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestPickerStartsOnCurrentSelection(t *testing.T) {
	m := New(sampleHistory(), history.FromSeconds(1000))
	m = press(m, enter)

	c, ok := m.Choice()
	if !ok || c.Index != 1 || c.ID != "m" {
		t.Errorf("Choice() = %+v, %v; want {1 m}, true", c, ok)
	}
}

func TestPickerCursorIsClamped(t *testing.T) {
	m := New(sampleHistory(), history.FromSeconds(1000))
	m = press(m, down, down, down, down, enter)
	if c, _ := m.Choice(); c.Index != 2 || c.ID != "" {
		t.Errorf("after moving past the end: %+v, want index 2 without ID", c)
	}

	m = New(sampleHistory(), history.FromSeconds(1000))
	m = press(m, up, up, up, enter)
	if c, _ := m.Choice(); c.Index != 0 || c.ID != "n" {
		t.Errorf("after moving past the start: %+v, want {0 n}", c)
	}
}

func TestPickerCancel(t *testing.T) {
	m := New(sampleHistory(), history.FromSeconds(1000))
	m = press(m, down, esc)
	if _, ok := m.Choice(); ok {
		t.Error("cancelled picker reported a choice")
	}
}

func TestPickerEmptyHistoryCannotChoose(t *testing.T) {
	m := New(history.History{}, time.Now())
	m = press(m, enter)
	if _, ok := m.Choice(); ok {
		t.Error("empty picker reported a choice")
	}
	if !strings.Contains(m.View(), "no captures yet") {
		t.Errorf("empty view missing placeholder: %q", m.View())
	}
}

func TestPickerViewListsEntries(t *testing.T) {
	view := New(sampleHistory(), history.FromSeconds(1060)).View()
	for _, want := range []string{"newest.png", "middle.png", "oldest.png", "1.5 KB", "ago"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
