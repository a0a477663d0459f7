package page

import (
	"context"
	"errors"
	"testing"

	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newCarrierFixture(t *testing.T) (*Carrier, *remote.MemoryClient, *recordingPublisher, *recordingAlerter) {
	t.Helper()
	client := remote.NewMemoryClient()
	publisher := &recordingPublisher{}
	alerts := &recordingAlerter{}
	c := NewCarrier(Deps{
		Client:     client,
		Events:     publisher,
		Alerts:     alerts,
		Log:        zap.NewNop(),
		Translator: i18n.New(i18n.LangEnglish),
	})
	return c, client, publisher, alerts
}

func carrierUser() *models.User {
	return &models.User{ID: "c1", Name: "Salem", Role: models.RoleCarrier, Rating: 4.8}
}

func TestRegisterCarrier(t *testing.T) {
	c, client, _, alerts := newCarrierFixture(t)
	ctx := context.Background()

	profile := models.CarrierProfile{
		VehicleType: "van", LicenseNumber: "LN-42",
		WorkingAreas: []string{"Riyadh", "Jeddah"}, ExperienceYears: 3,
	}
	if err := c.RegisterCarrier(ctx, carrierUser(), profile); err != nil {
		t.Fatalf("register: %v", err)
	}

	docs, _ := client.GetAll(ctx, remote.Query{Collection: models.CollectionCarriers})
	if len(docs) != 1 {
		t.Fatalf("got %d profiles, want 1", len(docs))
	}
	got := models.CarrierProfileFromDoc(docs[0])
	if got.UserID != "c1" || got.Name != "Salem" {
		t.Errorf("identity not stamped: %+v", got)
	}
	if got.Status != "pending" {
		t.Errorf("status = %q, want pending", got.Status)
	}
	if got.Rating != 5.0 {
		t.Errorf("rating = %v, want the 5.0 starting value", got.Rating)
	}
	if !alerts.has("success:alert.carrier_registered") {
		t.Errorf("success notice missing: %v", alerts.alerts)
	}
}

func TestRegisterCarrierValidation(t *testing.T) {
	c, client, _, _ := newCarrierFixture(t)
	ctx := context.Background()

	if err := c.RegisterCarrier(ctx, nil, models.CarrierProfile{}); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("nil user: err = %v, want ErrAuthRequired", err)
	}
	err := c.RegisterCarrier(ctx, carrierUser(), models.CarrierProfile{LicenseNumber: "LN-42"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("missing vehicle: err = %v, want ErrValidation", err)
	}
	err = c.RegisterCarrier(ctx, carrierUser(), models.CarrierProfile{VehicleType: "van"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("missing license: err = %v, want ErrValidation", err)
	}
	if docs, _ := client.GetAll(ctx, remote.Query{Collection: models.CollectionCarriers}); len(docs) != 0 {
		t.Errorf("rejected registration reached the store: %v", docs)
	}
}

func TestBrowseOpenExcludesSettledShipments(t *testing.T) {
	c, client, _, _ := newCarrierFixture(t)
	ctx := context.Background()

	for _, sh := range []models.Shipment{
		{SenderID: "u1", FromCity: "Riyadh", ToCity: "Jeddah", Status: models.StatusPending},
		{SenderID: "u2", FromCity: "Dammam", ToCity: "Abha", Status: models.StatusActive},
		{SenderID: "u3", FromCity: "Mecca", ToCity: "Tabuk", Status: models.StatusCompleted},
	} {
		if _, err := client.Insert(ctx, models.CollectionShipments, sh.Doc()); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	open, err := c.BrowseOpen(ctx)
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("got %d open shipments, want 2", len(open))
	}
	for _, sh := range open {
		if !sh.EffectiveStatus().CanTransition() {
			t.Errorf("settled shipment offered for bidding: %+v", sh)
		}
	}
}

func TestMakeOffer(t *testing.T) {
	c, client, publisher, alerts := newCarrierFixture(t)
	ctx := context.Background()

	shipment := models.Shipment{SenderID: "u1", FromCity: "Riyadh", ToCity: "Jeddah",
		Status: models.StatusPending}
	sid, err := client.Insert(ctx, models.CollectionShipments, shipment.Doc())
	if err != nil {
		t.Fatalf("insert shipment: %v", err)
	}

	offer := models.Offer{Price: decimal.NewFromInt(120), EstimatedTime: "2 days", VehicleType: "van"}
	if err := c.MakeOffer(ctx, carrierUser(), sid, offer); err != nil {
		t.Fatalf("make offer: %v", err)
	}

	docs, _ := client.GetAll(ctx, remote.Query{Collection: models.CollectionOffers})
	if len(docs) != 1 {
		t.Fatalf("got %d offers, want 1", len(docs))
	}
	got := models.OfferFromDoc(docs[0])
	if got.ShipmentID != sid {
		t.Errorf("ShipmentID = %q, want %q", got.ShipmentID, sid)
	}
	// the owner id is copied from the shipment so the sender's dashboard
	// sees this offer through its single owner predicate
	if got.ShipmentOwnerID != "u1" {
		t.Errorf("ShipmentOwnerID = %q, want u1", got.ShipmentOwnerID)
	}
	if got.CarrierID != "c1" || got.CarrierName != "Salem" || got.CarrierRating != 4.8 {
		t.Errorf("carrier identity not stamped: %+v", got)
	}
	if got.Status != models.OfferPending {
		t.Errorf("status = %q, want pending", got.Status)
	}
	if pub := publisher.published(); len(pub) != 1 || pub[0] != "offer.created" {
		t.Errorf("published = %v, want [offer.created]", pub)
	}
	if !alerts.has("success:alert.offer_sent") {
		t.Errorf("success notice missing: %v", alerts.alerts)
	}
}

func TestMakeOfferOnSettledShipment(t *testing.T) {
	c, client, publisher, _ := newCarrierFixture(t)
	ctx := context.Background()

	shipment := models.Shipment{SenderID: "u1", Status: models.StatusCompleted}
	sid, err := client.Insert(ctx, models.CollectionShipments, shipment.Doc())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	offer := models.Offer{Price: decimal.NewFromInt(120)}
	if err := c.MakeOffer(ctx, carrierUser(), sid, offer); err != nil {
		t.Fatalf("bidding a settled shipment must degrade, not error: %v", err)
	}
	if docs, _ := client.GetAll(ctx, remote.Query{Collection: models.CollectionOffers}); len(docs) != 0 {
		t.Errorf("offer stored against a settled shipment: %v", docs)
	}
	if len(publisher.published()) != 0 {
		t.Errorf("events published for a refused bid: %v", publisher.published())
	}
}

func TestMakeOfferValidation(t *testing.T) {
	c, _, _, _ := newCarrierFixture(t)
	ctx := context.Background()

	err := c.MakeOffer(ctx, carrierUser(), "s1", models.Offer{})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("zero price: err = %v, want ErrValidation", err)
	}
	err = c.MakeOffer(ctx, nil, "s1", models.Offer{Price: decimal.NewFromInt(10)})
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("nil user: err = %v, want ErrAuthRequired", err)
	}
}

func TestMakeOfferUnknownShipment(t *testing.T) {
	c, _, _, alerts := newCarrierFixture(t)
	err := c.MakeOffer(context.Background(), carrierUser(), "missing",
		models.Offer{Price: decimal.NewFromInt(10)})
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !alerts.has("error:alert.not_found") {
		t.Errorf("not-found notice missing: %v", alerts.alerts)
	}
}
