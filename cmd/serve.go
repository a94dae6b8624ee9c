package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boardhub/board-api/internal/config"
	"github.com/boardhub/board-api/internal/database"
	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/server"
	"github.com/boardhub/board-api/internal/services"
	"github.com/boardhub/board-api/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	app := server.New(cfg, db, publisher)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %s", cfg.AppPort)
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Errorf("Error during Fiber shutdown: %v", err)
	}
	logger.Info("Server gracefully stopped")
	return nil
}

// newPublisher connects to RabbitMQ when a URL is configured and otherwise
// logs events locally.
func newPublisher(cfg config.Config) (services.EventPublisher, func(), error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Info("RABBITMQ_URL not set, events will only be logged")
		return services.LogPublisher{}, func() {}, nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:      cfg.RabbitMQ.URL,
		Exchange: cfg.RabbitMQ.Exchange,
		Queue:    cfg.RabbitMQ.Queue,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, func() {
		if err := client.Close(); err != nil {
			logger.Warningf("closing RabbitMQ client: %v", err)
		}
	}, nil
}
