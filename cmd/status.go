package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/daemon"
	"github.com/fakeyudi/glance/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current status as one JSON line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := newStore().Load()
		p := daemon.Evaluate(h, time.Now(), cfg.Dismiss(), status.Renderer{Tooltip: cfg.TooltipMode()})
		return status.Write(cmd.OutOrStdout(), p)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
