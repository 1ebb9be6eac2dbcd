package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/internal/domain"
)

// UserDeletedConsumer reads user.events and removes the orders of deleted
// users. Messages that fail schema validation are logged and skipped; there
// is no dead-letter handling here.
type UserDeletedConsumer struct {
	reader *kafka.Reader
	repo   domain.OrderRepository
	logger *zap.Logger
}

func NewUserDeletedConsumer(brokers string, repo domain.OrderRepository, logger *zap.Logger) *UserDeletedConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   TopicUsers,
		GroupID: "order-service",
	})

	return &UserDeletedConsumer{
		reader: reader,
		repo:   repo,
		logger: logger,
	}
}

// Start consumes until the context is canceled.
func (c *UserDeletedConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if string(msg.Key) != RoutingKeyUserDeleted {
			continue
		}
		c.handleUserDeleted(ctx, msg.Value)
	}
}

func (c *UserDeletedConsumer) handleUserDeleted(ctx context.Context, raw []byte) {
	var event UserDeletedEvent
	if err := json.Unmarshal(raw, &event); err != nil || event.ID == 0 {
		c.logger.Warn("user deletion message failed schema validation",
			zap.ByteString("payload", raw))
		return
	}

	orders, err := c.repo.FindByUserID(ctx, event.ID)
	if err != nil {
		c.logger.Error("failed to load orders for deleted user",
			zap.Int("user_id", event.ID), zap.Error(err))
		return
	}

	for _, order := range orders {
		if err := c.repo.DeleteByID(ctx, order.ID); err != nil {
			c.logger.Error("failed to delete order of deleted user",
				zap.Int("order_id", order.ID), zap.Error(err))
			continue
		}
		c.logger.Info("deleted order of removed user",
			zap.Int("order_id", order.ID), zap.Int("user_id", event.ID))
	}
}

func (c *UserDeletedConsumer) Close() error {
	return c.reader.Close()
}
