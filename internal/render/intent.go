package render

// Intent is a user action emitted by an actionable fragment. Intents flow
// out of the render layer into a dispatch table owned by the page; they never
// loop back into the renderer or mutate view state directly.
type Intent struct {
	Name     string
	TargetID string
}

// Intent names. The page's dispatcher maps each to a handler; the renderer
// only attaches them to fragments.
const (
	IntentCreateShipment   = "create-shipment"
	IntentViewShipment     = "view-shipment"
	IntentTrackShipment    = "track-shipment"
	IntentAcceptOffer      = "accept-offer"
	IntentNegotiateOffer   = "negotiate-offer"
	IntentRejectOffer      = "reject-offer"
	IntentMarkNotification = "mark-notification-read"
)
