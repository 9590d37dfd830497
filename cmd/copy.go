package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/desktop"
	"github.com/fakeyudi/glance/internal/visibility"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the visible capture's path to the clipboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := newStore().Load()
		e, ok := visibility.ActiveEntry(h, time.Now(), cfg.Dismiss())
		if !ok {
			return nil
		}
		if _, err := os.Stat(e.Path); err != nil {
			return nil
		}
		return desktop.Copy(cmd.Context(), e.Path)
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
