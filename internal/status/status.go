// Package status renders the status-bar payload for the active entry.
package status

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fakeyudi/glance/internal/history"
)

// Icon prefixes the status text.
const Icon = "\uf03e"

const (
	// ClassActive marks a payload that shows an entry.
	ClassActive = "active"
	// ClassEmpty marks a payload with nothing to show.
	ClassEmpty = "empty"
)

const (
	maxNameLen = 18
	keepLen    = 15
	ellipsis   = "…"
	marker     = "▸"
)

// TooltipMode selects the tooltip layout.
type TooltipMode string

const (
	// TooltipList shows one line per entry with the selection marked.
	TooltipList TooltipMode = "list"
	// TooltipSingle shows the active entry's name and size.
	TooltipSingle TooltipMode = "single"
)

// Payload is one line of the status-bar JSON protocol.
type Payload struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
	Alt     string `json:"alt"`
}

// Empty is the payload shown when no entry is active.
var Empty = Payload{Class: ClassEmpty, Alt: ClassEmpty}

// Renderer turns an active entry into a Payload.
type Renderer struct {
	Tooltip TooltipMode
}

// Render builds the payload for active within h. A nil active renders Empty.
func (r Renderer) Render(active *history.Entry, h history.History) Payload {
	if active == nil {
		return Empty
	}

	text := Icon + " " + ShortName(active.Name)
	if total := len(h.Entries); total > 1 {
		text += fmt.Sprintf(" (%d/%d)", h.Selected+1, total)
	}

	var tooltip string
	switch r.Tooltip {
	case TooltipSingle:
		tooltip = active.Name + "\n" + HumanSize(active.Size)
	default:
		lines := make([]string, 0, len(h.Entries))
		for i, e := range h.Entries {
			m := " "
			if i == h.Selected {
				m = marker
			}
			lines = append(lines, fmt.Sprintf("%s %s (%s)", m, e.Name, HumanSize(e.Size)))
		}
		tooltip = strings.Join(lines, "\n")
	}

	return Payload{
		Text:    text,
		Tooltip: tooltip,
		Class:   ClassActive,
		Alt:     ClassActive,
	}
}

// ShortName truncates names longer than 18 characters to 15 plus an ellipsis.
func ShortName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameLen {
		return name
	}
	return string(runes[:keepLen]) + ellipsis
}

// HumanSize formats a byte count with base-1024 units.
func HumanSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// Write encodes p as a single JSON line.
func Write(w io.Writer, p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
