// Package bridge turns published domain events into user-facing output:
// notification records for the dashboards and delivery jobs for the mail
// workers. It is the consuming side of the event flow; pages only publish.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gide-1400/fast-shipment-world/internal/events"
	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"go.uber.org/zap"
)

// Queue names for the delivery workers.
const (
	EmailQueue = "email_jobs"
	SMSQueue   = "sms_jobs"
)

// QueuePublisher is the slice of the message broker the bridge needs.
type QueuePublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type Bridge struct {
	client remote.Client
	queue  QueuePublisher
	tr     *i18n.Translator
	log    *zap.Logger
}

func New(client remote.Client, queue QueuePublisher, tr *i18n.Translator, log *zap.Logger) *Bridge {
	return &Bridge{client: client, queue: queue, tr: tr, log: log}
}

// Handle processes one event from the broker. Returning an error makes the
// consumer redeliver, so every write in here must be safe to repeat.
func (b *Bridge) Handle(ctx context.Context, key, value []byte) error {
	var evt events.Event
	if err := json.Unmarshal(value, &evt); err != nil {
		// A malformed message will never parse on redelivery either.
		b.log.Warn("dropping malformed event", zap.ByteString("key", key), zap.Error(err))
		return nil
	}

	switch evt.Event {
	case events.ShipmentCreated:
		return b.onShipmentCreated(ctx, evt)
	case events.OfferCreated:
		return b.onOfferCreated(ctx, evt)
	case events.OfferAccepted:
		return b.onOfferAccepted(ctx, evt)
	case events.OfferRejected:
		return b.onOfferRejected(ctx, evt)
	default:
		b.log.Debug("ignoring event", zap.String("event", evt.Event))
		return nil
	}
}

func (b *Bridge) onShipmentCreated(ctx context.Context, evt events.Event) error {
	sh := models.ShipmentFromDoc(evt.Payload)
	if err := b.notify(ctx, sh.SenderID,
		b.tr.T("notif.shipment_created_title"),
		fmt.Sprintf("%s: %s → %s", b.tr.T("notif.shipment_created_message"), sh.FromCity, sh.ToCity),
	); err != nil {
		return err
	}
	return b.enqueue(ctx, EmailQueue, "shipment_confirmation", evt.Payload)
}

func (b *Bridge) onOfferCreated(ctx context.Context, evt events.Event) error {
	offer := models.OfferFromDoc(evt.Payload)
	if err := b.notify(ctx, offer.ShipmentOwnerID,
		b.tr.T("notif.new_offer_title"),
		fmt.Sprintf("%s %s", offer.CarrierName, b.tr.T("notif.new_offer_message")),
	); err != nil {
		return err
	}
	return b.enqueue(ctx, SMSQueue, "new_offer_alert", evt.Payload)
}

func (b *Bridge) onOfferAccepted(ctx context.Context, evt events.Event) error {
	offer := models.OfferFromDoc(evt.Payload)
	if err := b.notify(ctx, offer.CarrierID,
		b.tr.T("notif.offer_accepted_title"),
		b.tr.T("notif.offer_accepted_message"),
	); err != nil {
		return err
	}
	return b.enqueue(ctx, EmailQueue, "offer_accepted", evt.Payload)
}

func (b *Bridge) onOfferRejected(ctx context.Context, evt events.Event) error {
	offer := models.OfferFromDoc(evt.Payload)
	return b.notify(ctx, offer.CarrierID,
		b.tr.T("notif.offer_rejected_title"),
		b.tr.T("notif.offer_rejected_message"),
	)
}

// notify writes one notification record. Events with no resolvable recipient
// are logged and skipped rather than retried forever.
func (b *Bridge) notify(ctx context.Context, userID, title, message string) error {
	if userID == "" {
		b.log.Warn("event without recipient, skipping notification")
		return nil
	}
	note := models.Notification{UserID: userID, Title: title, Message: message}
	if _, err := b.client.Insert(ctx, models.CollectionNotifications, note.Doc()); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	b.log.Info("🔔 notification created", zap.String("user", userID), zap.String("title", title))
	return nil
}

// enqueue hands a delivery job to the queue workers. A nil queue means the
// worker pool is not deployed; the notification record alone still lands.
func (b *Bridge) enqueue(ctx context.Context, queue, jobType string, payload map[string]any) error {
	if b.queue == nil {
		return nil
	}
	body, err := json.Marshal(map[string]any{"type": jobType, "payload": payload})
	if err != nil {
		return fmt.Errorf("marshal %s job: %w", jobType, err)
	}
	if err := b.queue.Publish(ctx, queue, body); err != nil {
		return fmt.Errorf("publish %s job: %w", jobType, err)
	}
	b.log.Info("✅ job queued", zap.String("queue", queue), zap.String("type", jobType))
	return nil
}
