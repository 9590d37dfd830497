// Package visibility decides which history entry, if any, the status bar
// should show at a given moment.
package visibility

import (
	"time"

	"github.com/fakeyudi/glance/internal/history"
)

// Grace absorbs scheduling skew between a capture and its first render.
const Grace = 2 * time.Second

// Expired reports whether e is older than dismiss plus Grace at now.
func Expired(e history.Entry, now time.Time, dismiss time.Duration) bool {
	age := history.Seconds(now) - e.Time
	return age > (dismiss + Grace).Seconds()
}

// RecentlyScrolled reports whether a navigation happened within dismiss of now.
func RecentlyScrolled(h history.History, now time.Time, dismiss time.Duration) bool {
	if h.LastScroll <= 0 {
		return false
	}
	return history.Seconds(now)-h.LastScroll < dismiss.Seconds()
}

// ActiveEntry returns the selected entry when it should be displayed.
//
// A non-default selection is always shown, as is any selection shortly after
// a navigation; otherwise the entry is shown until it expires.
func ActiveEntry(h history.History, now time.Time, dismiss time.Duration) (history.Entry, bool) {
	e, ok := h.Current()
	if !ok {
		return history.Entry{}, false
	}
	switch {
	case h.Selected != 0:
		return e, true
	case RecentlyScrolled(h, now, dismiss):
		return e, true
	case !Expired(e, now, dismiss):
		return e, true
	}
	return history.Entry{}, false
}
