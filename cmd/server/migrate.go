package main

import (
	"github.com/spf13/cobra"

	"github.com/fabiansimon/Frello/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		return database.Migrate(db, log)
	},
}
