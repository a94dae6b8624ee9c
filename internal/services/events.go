package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/boardhub/board-api/internal/logger"
	"github.com/boardhub/board-api/internal/transaction"

	"github.com/google/uuid"
)

// Event routing keys.
const (
	EventUserCreated    = "user.created"
	EventBoardCreated   = "board.created"
	EventBoardUpdated   = "board.updated"
	EventBoardDeleted   = "board.deleted"
	EventCommentCreated = "comment.created"
	EventCommentUpdated = "comment.updated"
	EventCommentDeleted = "comment.deleted"
)

// EventPublisher delivers an encoded event under a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Event is the envelope published for every domain change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Notifier publishes domain events once the surrounding unit of work commits.
type Notifier struct {
	publisher EventPublisher
}

func NewNotifier(publisher EventPublisher) *Notifier {
	return &Notifier{publisher: publisher}
}

// Notify schedules the event. A nil Notifier drops it. Publish failures are
// logged and never fail the request, which has already committed.
func (n *Notifier) Notify(ctx context.Context, eventType string, data any) {
	if n == nil || n.publisher == nil {
		return
	}
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	transaction.AfterCommit(ctx, func() {
		body, err := json.Marshal(event)
		if err != nil {
			logger.Errorf("failed to marshal %s event: %v", eventType, err)
			return
		}
		if err := n.publisher.Publish(context.WithoutCancel(ctx), eventType, body); err != nil {
			logger.Warningf("failed to publish %s event %s: %v", eventType, event.ID, err)
			return
		}
		logger.Debugf("published %s event %s", eventType, event.ID)
	})
}

// LogPublisher writes events to the log. It stands in when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, routingKey string, body []byte) error {
	logger.Infof("event %s: %s", routingKey, body)
	return nil
}
