package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/glance/internal/config"
	"github.com/fakeyudi/glance/internal/history"
	"github.com/fakeyudi/glance/internal/logging"
)

// cfgFile is the --config flag value; empty means the default location.
var cfgFile string

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var cfg *config.Config

// logger is built from cfg in PersistentPreRunE.
var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:           "glance",
	Short:         "Show the most recent capture in the status bar",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded

		l, err := logging.New(logging.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Output: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "glance:", err)
		os.Exit(1)
	}
}

// newStore returns the history store named by the configuration.
func newStore() *history.Store {
	return history.NewStore(cfg.StateFile)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/glance/config.toml)")
}
