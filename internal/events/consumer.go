package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"evaluator/internal/domain"
	"evaluator/internal/logging"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Handler func(ctx context.Context, event domain.Event) error

type Consumer struct {
	reader messageReader
	logger *logging.Logger
}

func NewConsumer(brokers []string, topic, groupID string, logger *logging.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})
	return &Consumer{reader: reader, logger: logger}
}

// Run fetches events until ctx is done. Malformed messages are logged and
// committed; a handler error leaves the message uncommitted.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info(ctx, "consumer shutting down")
				return nil
			}
			c.logger.Error(ctx, "failed to fetch message", zap.Error(err))
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil || !event.Type.IsValid() {
			c.logger.Warn(ctx, "skipping malformed event",
				zap.String("topic", msg.Topic),
				zap.ByteString("value", msg.Value),
				zap.Error(err),
			)
		} else if err := handle(ctx, event); err != nil {
			c.logger.Error(ctx, "failed to handle event",
				zap.String("type", string(event.Type)),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error(ctx, "failed to commit message", zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
