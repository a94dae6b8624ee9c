package cmd

import (
	"github.com/boardhub/board-api/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return database.Migrate(cmd.Context(), cfg, database.Direction(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
