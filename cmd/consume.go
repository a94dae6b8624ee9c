package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/services"
	"github.com/boardhub/board-api/pkg/rabbitmq"

	"github.com/spf13/cobra"
	amqp "github.com/streadway/amqp"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Log board events from the RabbitMQ queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.RabbitMQ.URL == "" {
			return errors.New("RABBITMQ_URL must be set to consume events")
		}
		client, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
			Queue:    cfg.RabbitMQ.Queue,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = client.Consume(ctx, logEvent)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}

func logEvent(msg amqp.Delivery) error {
	var event services.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	logger.Infof("event %s %s at %s: %v", event.Type, event.ID, event.OccurredAt.Format(time.RFC3339), event.Data)
	return nil
}
