package page

import (
	"context"
	"strings"

	"github.com/Gide-1400/fast-shipment-world/internal/events"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"go.uber.org/zap"
)

// Carrier handles the carrier-side actions: registering as a carrier and
// bidding on open shipments. It carries no live view of its own; the browse
// page re-queries on demand.
type Carrier struct {
	deps Deps
}

func NewCarrier(deps Deps) *Carrier {
	return &Carrier{deps: deps}
}

// RegisterCarrier files a carrier application. The profile starts pending
// and stays invisible to senders until an admin approves it.
func (c *Carrier) RegisterCarrier(ctx context.Context, user *models.User, profile models.CarrierProfile) error {
	if user == nil {
		return ErrAuthRequired
	}
	if strings.TrimSpace(profile.VehicleType) == "" {
		return validationErr("vehicleType", "is required")
	}
	if strings.TrimSpace(profile.LicenseNumber) == "" {
		return validationErr("licenseNumber", "is required")
	}

	profile.UserID = user.ID
	if profile.Name == "" {
		profile.Name = user.Name
	}
	profile.Status = "pending"
	profile.Rating = 5.0

	if _, err := c.deps.Client.Insert(ctx, models.CollectionCarriers, profile.Doc()); err != nil {
		err = remote.Classify(err)
		c.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	c.deps.Alerts.Alert(AlertSuccess, "alert.carrier_registered")
	return nil
}

// BrowseOpen returns the shipments a carrier may bid on: pending or active,
// everyone's, newest first. This is the one sender-data query that is not
// owner scoped, and it exposes no contact details.
func (c *Carrier) BrowseOpen(ctx context.Context) ([]models.Shipment, error) {
	docs, err := c.deps.Client.GetAll(ctx, remote.Query{
		Collection: models.CollectionShipments,
		Predicates: []remote.Predicate{
			remote.In("status", string(models.StatusPending), string(models.StatusActive)),
		},
		Order: &remote.OrderBy{Field: "createdAt", Desc: true},
	})
	if err != nil {
		err = remote.Classify(err)
		c.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return nil, err
	}
	return models.ShipmentsFromDocs(docs), nil
}

// MakeOffer places a bid on one shipment. The shipment owner id is copied
// onto the offer here so the sender dashboard can subscribe to its offers
// with a single owner predicate.
func (c *Carrier) MakeOffer(ctx context.Context, user *models.User, shipmentID string, offer models.Offer) error {
	if user == nil {
		return ErrAuthRequired
	}
	if offer.Price.Sign() <= 0 {
		return validationErr("price", "must be positive")
	}

	docs, err := c.deps.Client.GetAll(ctx, remote.Query{
		Collection: models.CollectionShipments,
		Predicates: []remote.Predicate{remote.Eq("id", shipmentID)},
	})
	if err != nil || len(docs) == 0 {
		if err == nil {
			err = remote.ErrNotFound
		}
		err = remote.Classify(err)
		c.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	shipment := models.ShipmentFromDoc(docs[0])
	if !shipment.EffectiveStatus().CanTransition() {
		c.deps.Alerts.Alert(AlertInfo, "alert.offer_settled")
		return nil
	}

	offer.ShipmentID = shipment.ID
	offer.ShipmentOwnerID = shipment.SenderID
	offer.CarrierID = user.ID
	if offer.CarrierName == "" {
		offer.CarrierName = user.Name
	}
	if offer.CarrierRating == 0 {
		offer.CarrierRating = user.Rating
	}
	offer.Status = models.OfferPending

	id, err := c.deps.Client.Insert(ctx, models.CollectionOffers, offer.Doc())
	if err != nil {
		err = remote.Classify(err)
		c.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	offer.ID = id

	if c.deps.Events != nil {
		evt := events.Event{Event: events.OfferCreated, Payload: offer.Doc()}
		if err := c.deps.Events.Publish(ctx, events.OfferCreated, evt); err != nil {
			c.deps.Log.Warn("event publish failed",
				zap.String("event", events.OfferCreated), zap.Error(err))
		}
	}
	c.deps.Alerts.Alert(AlertSuccess, "alert.offer_sent")
	return nil
}
