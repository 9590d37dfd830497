// Package daemon implements the long-running watch loop that streams status
// payloads to the bar whenever the visible entry changes.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fakeyudi/glance/internal/history"
	"github.com/fakeyudi/glance/internal/logging"
	"github.com/fakeyudi/glance/internal/status"
	"github.com/fakeyudi/glance/internal/visibility"
)

// PollInterval bounds each wait so that expiry is noticed without file events.
const PollInterval = time.Second

// Loader returns the current persisted History.
type Loader interface {
	Load() history.History
}

// Options configures a Daemon.
type Options struct {
	Store    Loader
	Waiter   Waiter
	Renderer status.Renderer
	Dismiss  time.Duration
	Out      io.Writer
	Logger   *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Interval defaults to PollInterval.
	Interval time.Duration
}

// Daemon re-renders the status on every wake-up and writes a line only when
// the payload changed.
type Daemon struct {
	store    Loader
	waiter   Waiter
	renderer status.Renderer
	dismiss  time.Duration
	out      io.Writer
	logger   *slog.Logger
	now      func() time.Time
	interval time.Duration

	last status.Payload
}

// New constructs a Daemon.
func New(opts Options) (*Daemon, error) {
	if opts.Store == nil || opts.Waiter == nil || opts.Out == nil {
		return nil, errors.New("daemon requires a store, a waiter and an output")
	}
	d := &Daemon{
		store:    opts.Store,
		waiter:   opts.Waiter,
		renderer: opts.Renderer,
		dismiss:  opts.Dismiss,
		out:      opts.Out,
		logger:   opts.Logger,
		now:      opts.Now,
		interval: opts.Interval,
	}
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.interval <= 0 {
		d.interval = PollInterval
	}
	return d, nil
}

// Run emits the initial status and then loops until ctx is done or the
// output can no longer be written.
func (d *Daemon) Run(ctx context.Context) error {
	d.last = d.evaluate()
	if err := d.emit(d.last); err != nil {
		return err
	}

	for {
		wake, err := d.waiter.Wait(ctx, d.interval)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, ErrWatcherClosed) {
				return err
			}
			// Events may have been dropped, so re-read the history.
			d.logger.Warn("watch error", slog.Any("error", err))
			if err := d.refresh(); err != nil {
				return err
			}
			continue
		}
		if !wake.TimedOut && !wake.Relevant {
			continue
		}
		if err := d.refresh(); err != nil {
			return err
		}
	}
}

// refresh re-evaluates the status and emits it if it differs from the last line.
func (d *Daemon) refresh() error {
	p := d.evaluate()
	if p == d.last {
		return nil
	}
	if err := d.emit(p); err != nil {
		return err
	}
	d.last = p
	return nil
}

// evaluate loads the history and renders the active entry.
func (d *Daemon) evaluate() status.Payload {
	return Evaluate(d.store.Load(), d.now(), d.dismiss, d.renderer)
}

func (d *Daemon) emit(p status.Payload) error {
	if err := status.Write(d.out, p); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}
	d.logger.Debug("status emitted", slog.String("class", p.Class), slog.String("text", p.Text))
	return nil
}

// Evaluate renders the payload h should show at now.
func Evaluate(h history.History, now time.Time, dismiss time.Duration, r status.Renderer) status.Payload {
	if e, ok := visibility.ActiveEntry(h, now, dismiss); ok {
		return r.Render(&e, h)
	}
	return r.Render(nil, h)
}
