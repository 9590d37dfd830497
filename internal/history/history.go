// Package history models the ordered list of recently captured files that is
// shared between glance invocations through a single JSON file.
package history

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Entry is an immutable snapshot of one captured file.
type Entry struct {
	ID   string `json:"id,omitempty"`
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	// Time is the capture wall-clock time in fractional Unix seconds.
	Time float64 `json:"time"`
}

// NewEntry snapshots the file at path. A file that cannot be stat'ed is
// recorded with size 0.
func NewEntry(path string, now time.Time) Entry {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	return Entry{
		ID:   uuid.New().String(),
		Path: path,
		Name: filepath.Base(path),
		Size: size,
		Time: Seconds(now),
	}
}

// CreatedAt returns the capture time as a time.Time.
func (e Entry) CreatedAt() time.Time {
	return FromSeconds(e.Time)
}

// History is the persisted aggregate. Entries are newest first.
type History struct {
	Entries  []Entry `json:"entries"`
	Selected int     `json:"selected"`
	// LastScroll is the time of the most recent navigation in fractional Unix
	// seconds; zero means never.
	LastScroll float64 `json:"last_scroll"`
}

// Current returns the selected entry, if any.
func (h *History) Current() (Entry, bool) {
	if h.Selected < 0 || h.Selected >= len(h.Entries) {
		return Entry{}, false
	}
	return h.Entries[h.Selected], true
}

// Push prepends e, keeps at most maxLen entries and selects the new head.
func (h *History) Push(e Entry, maxLen int) {
	if maxLen < 1 {
		maxLen = 1
	}
	entries := make([]Entry, 0, len(h.Entries)+1)
	entries = append(entries, e)
	entries = append(entries, h.Entries...)
	if len(entries) > maxLen {
		entries = entries[:maxLen]
	}
	h.Entries = entries
	h.Selected = 0
}

// SelectPrev moves the selection one step toward older entries.
func (h *History) SelectPrev() {
	if h.Selected+1 < len(h.Entries) {
		h.Selected++
	}
}

// SelectNext moves the selection one step toward newer entries.
func (h *History) SelectNext() {
	if h.Selected > 0 {
		h.Selected--
	}
}

// Select moves the selection to index i, clamped to the valid range.
func (h *History) Select(i int) {
	h.Selected = i
	h.clamp()
}

// IndexOf returns the position of the entry with the given ID.
func (h *History) IndexOf(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i, e := range h.Entries {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

// MarkScrolled records a navigation at now.
func (h *History) MarkScrolled(now time.Time) {
	h.LastScroll = Seconds(now)
}

// clamp restores 0 <= Selected < max(1, len(Entries)).
func (h *History) clamp() {
	if h.Selected >= len(h.Entries) {
		h.Selected = len(h.Entries) - 1
	}
	if h.Selected < 0 {
		h.Selected = 0
	}
}

// Seconds converts t to fractional Unix seconds.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// FromSeconds converts fractional Unix seconds to a time.Time.
func FromSeconds(s float64) time.Time {
	return time.Unix(0, int64(s*float64(time.Second)))
}
