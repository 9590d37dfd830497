package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/daemon"
	"github.com/fakeyudi/glance/internal/status"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream status JSON lines whenever the visible capture changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		if err := store.EnsureDir(); err != nil {
			return err
		}

		waiter, err := daemon.NewDirWaiter(store.Path())
		if err != nil {
			return err
		}
		defer waiter.Close()

		d, err := daemon.New(daemon.Options{
			Store:    store,
			Waiter:   waiter,
			Renderer: status.Renderer{Tooltip: cfg.TooltipMode()},
			Dismiss:  cfg.Dismiss(),
			Out:      cmd.OutOrStdout(),
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("watching history", slog.String("path", store.Path()))
		return d.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
