// Package cmd holds the board-api command line.
package cmd

import (
	"os"

	"github.com/boardhub/board-api/internal/config"
	"github.com/boardhub/board-api/internal/logger"

	"github.com/spf13/cobra"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:          "board-api",
	Short:        "Discussion board API with users, boards and comments",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.InitLogger(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
