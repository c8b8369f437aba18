package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fabiansimon/Frello/internal/auth"
	"github.com/fabiansimon/Frello/internal/config"
	"github.com/fabiansimon/Frello/internal/constants"
	"github.com/fabiansimon/Frello/internal/database"
	"github.com/fabiansimon/Frello/internal/notifications"
	"github.com/fabiansimon/Frello/internal/repository"
	"github.com/fabiansimon/Frello/internal/router"
	"github.com/fabiansimon/Frello/internal/services"
)

var skipMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Start without running database migrations")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if !skipMigrate {
			if err := database.Migrate(db, log); err != nil {
				return err
			}
		}

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

		userRepo := repository.NewUserRepository(db)
		projectRepo := repository.NewProjectRepository(db)
		taskRepo := repository.NewTaskRepository(db)
		commentRepo := repository.NewCommentRepository(db)

		// Initialize AI service
		var chat services.ChatCompleter
		if cfg.AIEnabled() {
			chat = openai.NewClient(cfg.OpenAIAPIKey)
		} else {
			log.Warn("OPENAI_API_KEY not set, assignee suggestions are disabled")
		}

		r := router.New(router.Deps{
			DB:             db,
			Tokens:         tokens,
			Log:            log,
			AuthService:    services.NewAuthService(userRepo, tokens, log),
			ProjectService: services.NewProjectService(projectRepo, userRepo, taskRepo, log),
			TaskService:    services.NewTaskService(taskRepo, projectRepo, userRepo, newMailer(cfg, log), log),
			CommentService: services.NewCommentService(commentRepo, taskRepo, projectRepo, log),
			AIService: services.NewAIService(projectRepo, chat, services.AIConfig{
				Model:             cfg.OpenAIModel,
				RequestsPerMinute: cfg.AIRequestsPerMinute,
			}, log),
			CORSOrigins: cfg.CORSOrigins,
		})

		return runServer(cfg.HTTPAddr, r, log)
	},
}

func newMailer(cfg *config.Config, log *zap.Logger) notifications.Mailer {
	if !cfg.SMTPEnabled() {
		log.Warn("SMTP_HOST not set, task reminders are logged instead of sent")
		return notifications.NewLogMailer(log, cfg.DomainBase)
	}

	mailer, err := notifications.NewSMTPMailer(notifications.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.EmailFrom,
		DomainBase: cfg.DomainBase,
	})
	if err != nil {
		log.Error("Failed to set up SMTP mailer, falling back to logging", zap.Error(err))
		return notifications.NewLogMailer(log, cfg.DomainBase)
	}
	return mailer
}

// runServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func runServer(addr string, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
		log.Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	log.Info("Server gracefully stopped")
	return nil
}
