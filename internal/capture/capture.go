// Package capture watches capture directories (screenshots, downloads) and
// pushes each newly written file onto the shared history.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fakeyudi/glance/internal/history"
	"github.com/fakeyudi/glance/internal/logging"
)

// ErrNoDirectories is returned when none of the configured directories exist.
var ErrNoDirectories = errors.New("no capture directory could be watched")

// Repository loads and saves the shared history.
type Repository interface {
	Load() history.History
	Save(h history.History) error
}

// Options configures a Capturer.
type Options struct {
	Dirs           []string
	IgnoreSuffixes []string
	// Settle is how long a path must stay quiet before it is captured.
	Settle     time.Duration
	MaxHistory int
	Store      Repository
	// OnCapture runs after each entry has been saved.
	OnCapture func(ctx context.Context, e history.Entry)
	Logger    *slog.Logger
	Now       func() time.Time
}

// Capturer turns new files in the watched directories into history entries.
type Capturer struct {
	opts    Options
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	seen   map[string]struct{}
	timers map[string]*time.Timer
	ready  chan string
	done   chan struct{}
}

// New starts watching every existing directory in opts.Dirs.
func New(opts Options) (*Capturer, error) {
	if opts.Store == nil {
		return nil, errors.New("capture requires a history store")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	watched := 0
	for _, dir := range opts.Dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			logger.Warn("skipping capture directory", slog.String("dir", dir))
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logger.Warn("cannot watch capture directory", slog.String("dir", dir), slog.Any("error", err))
			continue
		}
		logger.Info("watching", slog.String("dir", dir))
		watched++
	}
	if watched == 0 {
		watcher.Close()
		return nil, ErrNoDirectories
	}

	return &Capturer{
		opts:    opts,
		watcher: watcher,
		logger:  logger,
		seen:    make(map[string]struct{}),
		timers:  make(map[string]*time.Timer),
		ready:   make(chan string, 16),
		done:    make(chan struct{}),
	}, nil
}

// Run processes events until ctx is cancelled.
func (c *Capturer) Run(ctx context.Context) error {
	defer c.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-c.watcher.Events:
			if !ok {
				return nil
			}
			if c.candidate(event) {
				c.schedule(event.Name)
			}

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; continue watching.
			c.logger.Warn("capture watch error", slog.Any("error", err))

		case path := <-c.ready:
			delete(c.timers, path)
			c.capture(ctx, path)
		}
	}
}

// candidate reports whether event may announce a new capture.
func (c *Capturer) candidate(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return !Ignored(event.Name, c.opts.IgnoreSuffixes)
}

// schedule (re)starts the settle timer for path.
func (c *Capturer) schedule(path string) {
	if t, ok := c.timers[path]; ok {
		t.Reset(c.opts.Settle)
		return
	}
	c.timers[path] = time.AfterFunc(c.opts.Settle, func() {
		select {
		case c.ready <- path:
		case <-c.done:
		}
	})
}

// capture pushes path onto the history once per run.
func (c *Capturer) capture(ctx context.Context, path string) {
	if _, ok := c.seen[path]; ok {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	c.seen[path] = struct{}{}

	entry := history.NewEntry(path, c.opts.Now())
	h := c.opts.Store.Load()
	h.Push(entry, c.opts.MaxHistory)
	if err := c.opts.Store.Save(h); err != nil {
		c.logger.Warn("failed to save capture", slog.String("path", path), slog.Any("error", err))
		return
	}
	c.logger.Info("captured", slog.String("path", path), slog.Int64("size", entry.Size))

	if c.opts.OnCapture != nil {
		c.opts.OnCapture(ctx, entry)
	}
}

func (c *Capturer) shutdown() {
	close(c.done)
	for _, t := range c.timers {
		t.Stop()
	}
	c.watcher.Close()
}

// Ignored reports whether path is a hidden file or ends in one of suffixes.
func Ignored(path string, suffixes []string) bool {
	name := filepath.Base(path)
	if name == "" || strings.HasPrefix(name, ".") {
		return true
	}
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
