package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Args:  cobra.NoArgs,
	// Bypass the normal PersistentPreRunE so init works before a config exists.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}

		err := config.WriteSample(path)
		if errors.Is(err, config.ErrExists) {
			fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s.\n", path)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
