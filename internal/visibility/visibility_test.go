package visibility

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/fakeyudi/glance/internal/history"
)

func at(sec float64) time.Time {
	return history.FromSeconds(sec)
}

func TestActiveEntryExpiry(t *testing.T) {
	const dismiss = 5 * time.Second
	h := history.History{Entries: []history.Entry{{Name: "shot.png", Time: 1000}}}

	tests := []struct {
		name string
		now  float64
		want bool
	}{
		{"fresh", 1000, true},
		{"within dismiss", 1004, true},
		{"within grace", 1006, true},
		{"grace boundary", 1007, true},
		{"expired", 1008, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := ActiveEntry(h, at(tt.now), dismiss)
			if got != tt.want {
				t.Errorf("ActiveEntry at +%vs = %v, want %v", tt.now-1000, got, tt.want)
			}
		})
	}
}

func TestActiveEntryManualSelectionOverride(t *testing.T) {
	h := history.History{
		Entries: []history.Entry{
			{Name: "new.png", Time: 100},
			{Name: "old.png", Time: 50},
		},
		Selected: 1,
	}
	e, ok := ActiveEntry(h, at(10_000), 5*time.Second)
	if !ok {
		t.Fatal("expected manual selection to stay visible")
	}
	if e.Name != "old.png" {
		t.Errorf("got %q, want old.png", e.Name)
	}
}

func TestActiveEntryRecentScrollOverride(t *testing.T) {
	const dismiss = 10 * time.Second
	h := history.History{
		Entries:    []history.Entry{{Name: "a.png", Time: 100}},
		LastScroll: 995,
	}

	if _, ok := ActiveEntry(h, at(1000), dismiss); !ok {
		t.Error("expected entry visible 5s after scrolling")
	}
	if _, ok := ActiveEntry(h, at(1006), dismiss); ok {
		t.Error("expected entry hidden once the scroll window has passed")
	}
}

func TestActiveEntryEmptyHistory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := at(float64(rapid.Int64Range(0, 2_000_000_000).Draw(t, "now")))
		dismiss := time.Duration(rapid.IntRange(0, 3600).Draw(t, "dismiss")) * time.Second
		scroll := float64(rapid.Int64Range(0, 2_000_000_000).Draw(t, "last_scroll"))

		if _, ok := ActiveEntry(history.History{LastScroll: scroll}, now, dismiss); ok {
			t.Fatal("empty history produced an active entry")
		}
	})
}
