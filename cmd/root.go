package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perarneng/gmailday/pkg/config"
	"github.com/perarneng/gmailday/pkg/interfaces"
	"github.com/perarneng/gmailday/pkg/logger"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gmailday",
	Short: "A CLI tool for saving a day's Gmail message metadata as JSON",
	Long: `gmailday is a command-line tool that authorizes against the Gmail API,
searches for messages by date or date range and writes their id, date,
subject, sender and snippet to a dated JSON file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", fmt.Sprintf("settings file (default: %s if present)", config.DefaultSettingsFile))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) interfaces.Logger {
	level := logger.LevelInfo
	if verbose {
		level = logger.LevelDebug
	}
	return logger.New(cmd.OutOrStdout(), level)
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	return config.Load(configPath, cmd.Flags().Changed("config"))
}
