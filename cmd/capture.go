package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/capture"
	"github.com/fakeyudi/glance/internal/desktop"
	"github.com/fakeyudi/glance/internal/history"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Watch capture directories and record new files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		if err := store.EnsureDir(); err != nil {
			return err
		}

		lock, err := capture.Lock(store.Path())
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("failed to release capture lock", slog.Any("error", err))
			}
		}()

		c, err := capture.New(capture.Options{
			Dirs:           cfg.WatchDirs,
			IgnoreSuffixes: cfg.IgnoreSuffixes,
			Settle:         cfg.Settle(),
			MaxHistory:     cfg.MaxHistory,
			Store:          store,
			OnCapture: func(ctx context.Context, _ history.Entry) {
				desktop.SignalBar(ctx, cfg.SignalNumber)
			},
			Logger: logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("capture daemon started", slog.String("history", store.Path()))
		return c.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
