// Package main runs the Frello API.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fabiansimon/Frello/internal/config"
	"github.com/fabiansimon/Frello/internal/database"
	"github.com/fabiansimon/Frello/internal/logger"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frello",
	Short: "Frello Kanban API",
	Long: `frello serves the Frello Kanban API: projects, members, board tasks,
comments, AI assignee suggestions and task reminder emails.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads configuration and opens the logger and database shared by
// every command.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
