package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/desktop"
)

var scrollCmd = &cobra.Command{
	Use:       "scroll <up|down>",
	Short:     "Select an older (up) or newer (down) capture",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		h := store.Load()
		switch args[0] {
		case "up":
			h.SelectPrev()
		case "down":
			h.SelectNext()
		}
		h.MarkScrolled(time.Now())

		if err := store.Save(h); err != nil {
			return err
		}
		desktop.SignalBar(cmd.Context(), cfg.SignalNumber)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrollCmd)
}
