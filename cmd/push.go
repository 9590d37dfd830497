package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/desktop"
	"github.com/fakeyudi/glance/internal/history"
)

var pushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Record a file as the newest capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if err := requireRegularFile(path); err != nil {
			return err
		}

		store := newStore()
		if err := store.EnsureDir(); err != nil {
			return err
		}
		h := store.Load()
		entry := history.NewEntry(path, time.Now())
		h.Push(entry, cfg.MaxHistory)
		if err := store.Save(h); err != nil {
			return err
		}
		desktop.SignalBar(cmd.Context(), cfg.SignalNumber)

		fmt.Fprintf(cmd.OutOrStdout(), "Captured %s.\n", entry.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

// requireRegularFile rejects paths that are missing or not regular files.
func requireRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}
