// cmd/pipeline/migrate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github-events-pipeline/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or revert the database schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		switch direction {
		case "up":
			if err := migrations.Up(cfg.DBURL); err != nil {
				return err
			}
		case "down":
			if err := migrations.Down(cfg.DBURL); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown direction %q", direction)
		}
		logger.Info("Database migrations applied successfully", "direction", direction)
		return nil
	},
}
