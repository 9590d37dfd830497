package cmd

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/desktop"
	"github.com/fakeyudi/glance/internal/history"
	"github.com/fakeyudi/glance/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose the visible capture interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdin.Fd()) {
			return errors.New("pick requires an interactive terminal")
		}

		store := newStore()
		choice, ok, err := tui.Run(store.Load(), time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		saved, err := applyPick(store, choice, time.Now())
		if err != nil {
			return err
		}
		if !saved {
			logger.Info("picked capture is no longer in history", slog.String("id", choice.ID))
			return nil
		}
		desktop.SignalBar(cmd.Context(), cfg.SignalNumber)
		return nil
	},
}

// applyPick selects choice in the history as it is on disk now, since other
// commands may have written it while the picker was open. It reports false
// without saving when the chosen entry has since been truncated away.
func applyPick(store *history.Store, choice tui.Choice, now time.Time) (bool, error) {
	h := store.Load()
	i := choice.Index
	if choice.ID != "" {
		var ok bool
		if i, ok = h.IndexOf(choice.ID); !ok {
			return false, nil
		}
	}

	h.Select(i)
	h.MarkScrolled(now)
	if err := store.Save(h); err != nil {
		return false, err
	}
	return true, nil
}

func init() {
	rootCmd.AddCommand(pickCmd)
}
