package daemon

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Wait once the underlying watcher has shut down.
var ErrWatcherClosed = errors.New("watcher closed")

// Wake describes why a Wait returned.
type Wake struct {
	// TimedOut is set when nothing happened within the timeout.
	TimedOut bool
	// Relevant is set when at least one observed event named the watched file.
	Relevant bool
}

// Waiter blocks until filesystem activity or a timeout.
type Waiter interface {
	Wait(ctx context.Context, timeout time.Duration) (Wake, error)
	Close() error
}

// DirWaiter watches a directory and reports events for one file name in it.
type DirWaiter struct {
	watcher *fsnotify.Watcher
	name    string
}

// NewDirWaiter starts watching the directory holding path.
func NewDirWaiter(path string) (*DirWaiter, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &DirWaiter{watcher: watcher, name: filepath.Base(path)}, nil
}

// Wait returns after the first batch of events, after timeout, or when ctx
// is done. Events already queued behind the first one are drained into the
// same Wake.
func (w *DirWaiter) Wait(ctx context.Context, timeout time.Duration) (Wake, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Wake{}, ctx.Err()
	case <-timer.C:
		return Wake{TimedOut: true}, nil
	case err, ok := <-w.watcher.Errors:
		if !ok {
			return Wake{}, ErrWatcherClosed
		}
		return Wake{}, err
	case event, ok := <-w.watcher.Events:
		if !ok {
			return Wake{}, ErrWatcherClosed
		}
		wake := Wake{Relevant: w.matches(event)}
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return wake, nil
				}
				wake.Relevant = wake.Relevant || w.matches(event)
			default:
				return wake, nil
			}
		}
	}
}

// matches reports whether event wrote or moved in the watched file.
func (w *DirWaiter) matches(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.name {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}

// Close stops the watcher.
func (w *DirWaiter) Close() error {
	return w.watcher.Close()
}
