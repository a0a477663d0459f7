package kafka

import (
	"context"
	"encoding/json"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer is the subset of the segmentio kafka.Writer the producer needs.
// Narrowing it keeps the producer testable with an in-memory writer.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Publisher is the interface the page controllers publish domain events
// through. Events are fire-and-forget from the UI's point of view: a failed
// publish is logged, never surfaced as a blocking error.
type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close() error
}

// Producer is a thin Publisher over a kafka writer.
type Producer struct {
	writer Writer
	log    *zap.Logger
}

// NewProducer creates a Producer writing to the given broker/topic.
func NewProducer(brokerURL, topic string, log *zap.Logger) *Producer {
	w := &skafka.Writer{
		Addr:     skafka.TCP(brokerURL),
		Topic:    topic,
		Balancer: &skafka.LeastBytes{},
	}
	return &Producer{writer: w, log: log}
}

// NewProducerWithWriter injects a test writer.
func NewProducerWithWriter(w Writer, log *zap.Logger) *Producer {
	return &Producer{writer: w, log: log}
}

// Publish marshals the value to JSON and writes one message keyed by the
// record id, so events for the same record stay ordered within a partition.
func (p *Producer) Publish(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		p.log.Error("failed to marshal event", zap.Error(err))
		return err
	}
	msg := skafka.Message{Key: []byte(key), Value: b}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("kafka write error", zap.Error(err))
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
