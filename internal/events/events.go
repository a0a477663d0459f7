// Package events defines the domain events the client publishes after a
// successful mutation. The notifier worker consumes them to fan out
// notifications and delivery jobs.
package events

// Event names.
const (
	ShipmentCreated = "shipment.created"
	OfferCreated    = "offer.created"
	OfferAccepted   = "offer.accepted"
	OfferRejected   = "offer.rejected"
)

// Event is the wire envelope: the event name plus the full record that
// triggered it.
type Event struct {
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}
