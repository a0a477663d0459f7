package kafka

import (
	"context"
	"time"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes one consumed message. Returning an error leaves the
// offset uncommitted so the broker redelivers the message.
type Handler func(ctx context.Context, key, value []byte) error

// Consumer wraps a kafka reader in a commit-on-success loop.
type Consumer struct {
	reader *skafka.Reader
	log    *zap.Logger
}

// NewConsumer connects to the topic. The groupID splits work between running
// copies of the same worker instead of duplicating it.
func NewConsumer(brokers []string, topic, groupID string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: skafka.NewReader(skafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		log: log,
	}
}

// Start consumes until ctx is cancelled. Each message gets a bounded
// processing window; a handler error skips the commit so the message comes
// back.
func (c *Consumer) Start(ctx context.Context, handler Handler) {
	c.log.Info("kafka consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group", c.reader.Config().GroupID))

	for {
		if ctx.Err() != nil {
			return
		}
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Warn("error fetching message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		processCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = handler(processCtx, m.Key, m.Value)
		cancel()

		if err != nil {
			c.log.Error("processing failed, message will be redelivered",
				zap.Int64("offset", m.Offset), zap.Error(err))
			continue
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.log.Error("failed to commit offset", zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
