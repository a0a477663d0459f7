package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// fakeWriter records messages written.
type fakeWriter struct {
	msgs []skafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	fw := &fakeWriter{}
	p := NewProducerWithWriter(fw, zap.NewNop())

	err := p.Publish(context.Background(), "shipment.created", map[string]string{"id": "s1"})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(fw.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fw.msgs))
	}
	if string(fw.msgs[0].Key) != "shipment.created" {
		t.Errorf("unexpected key %q", fw.msgs[0].Key)
	}
	var body map[string]string
	if err := json.Unmarshal(fw.msgs[0].Value, &body); err != nil {
		t.Fatalf("message body is not JSON: %v", err)
	}
	if body["id"] != "s1" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestPublishWriterError(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker down")}
	p := NewProducerWithWriter(fw, zap.NewNop())

	if err := p.Publish(context.Background(), "k", "v"); err == nil {
		t.Fatal("expected writer error to surface")
	}
}
