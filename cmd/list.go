package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/history"
	"github.com/fakeyudi/glance/internal/status"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the capture history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := newStore().Load()
		if len(h.Entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no captures")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHistoryTable(h))
		return nil
	},
}

// renderHistoryTable lays out h newest first with the selection marked.
func renderHistoryTable(h history.History) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"", "#", "Name", "Size", "Captured", "Path"})
	for i, e := range h.Entries {
		mark := ""
		if i == h.Selected {
			mark = "▸"
		}
		tw.AppendRow(table.Row{
			mark,
			strconv.Itoa(i + 1),
			e.Name,
			status.HumanSize(e.Size),
			humanize.Time(e.CreatedAt()),
			e.Path,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	tw.SetCaption(fmt.Sprintf("%d of %d selected", h.Selected+1, len(h.Entries)))
	return tw.Render()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
