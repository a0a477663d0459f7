// Package page holds the page controllers. Each controller owns one view
// model and one subscription manager for the lifetime of its page, decodes
// snapshots into typed records, and mediates every user action through the
// dispatch table. Controllers never render from the network directly; data
// always flows backend -> subscription -> view model -> render.
package page

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Gide-1400/fast-shipment-world/internal/aggregate"
	"github.com/Gide-1400/fast-shipment-world/internal/events"
	"github.com/Gide-1400/fast-shipment-world/internal/filter"
	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/Gide-1400/fast-shipment-world/internal/render"
	"github.com/Gide-1400/fast-shipment-world/internal/subscription"
	"github.com/Gide-1400/fast-shipment-world/internal/viewmodel"
	"github.com/Gide-1400/fast-shipment-world/shared/kafka"
	"go.uber.org/zap"
)

// Deps are the collaborators a page controller needs. Events may be nil;
// a page without a broker still works, it just publishes nothing.
type Deps struct {
	Client     remote.Client
	Events     kafka.Publisher
	Alerts     Alerter
	Log        *zap.Logger
	Translator *i18n.Translator
}

// Dashboard is the sender dashboard controller: live shipments, incoming
// offers and notifications for one signed-in user.
type Dashboard struct {
	deps Deps

	store *viewmodel.Store
	subs  *subscription.Manager
	rend  *render.Renderer
	disp  *Dispatcher

	// clock is swapped in tests so the monthly series renders
	// byte-identically across runs.
	clock func() time.Time

	mu           sync.Mutex
	statusFilter string
	searchTerm   string
}

func NewDashboard(deps Deps) *Dashboard {
	store := viewmodel.NewStore()
	d := &Dashboard{
		deps:         deps,
		store:        store,
		subs:         subscription.NewManager(deps.Client, store, deps.Log),
		rend:         render.NewRenderer(deps.Translator),
		disp:         NewDispatcher(),
		clock:        time.Now,
		statusFilter: string(models.StatusActive),
	}
	d.disp.Register(render.IntentAcceptOffer, d.AcceptOffer)
	d.disp.Register(render.IntentRejectOffer, d.RejectOffer)
	d.disp.Register(render.IntentMarkNotification, d.MarkNotificationRead)
	d.disp.Register(render.IntentNegotiateOffer, func(ctx context.Context, targetID string) error {
		// Negotiation happens in chat, outside this page.
		deps.Alerts.Alert(AlertInfo, "alert.negotiate_hint")
		return nil
	})
	return d
}

// Dispatch routes a user intent emitted by a rendered fragment.
func (d *Dashboard) Dispatch(ctx context.Context, intent render.Intent) error {
	return d.disp.Dispatch(ctx, intent)
}

// Store exposes the view model so the shell can watch its version and
// re-render on change.
func (d *Dashboard) Store() *viewmodel.Store { return d.store }

// Start opens the three owner-scoped live queries. A query that fails to
// open degrades to an empty section plus a notice; the rest of the page
// still loads. A nil user cannot see the dashboard at all.
func (d *Dashboard) Start(ctx context.Context, user *models.User) error {
	if user == nil {
		return ErrAuthRequired
	}
	d.store.SetCurrentUser(user)

	type sub struct {
		collection string
		ownerField string
	}
	for _, s := range []sub{
		{models.CollectionShipments, "senderId"},
		{models.CollectionOffers, "shipmentOwnerId"},
		{models.CollectionNotifications, "userId"},
	} {
		if err := d.subs.Subscribe(ctx, s.collection, s.ownerField, user.ID); err != nil {
			d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		}
	}
	d.deps.Log.Info("🎧 dashboard listening", zap.String("user", user.ID))
	return nil
}

// Stop tears down every live query. After Stop returns, no late push can
// mutate this page's view model.
func (d *Dashboard) Stop() {
	d.subs.UnsubscribeAll()
	d.deps.Log.Info("🛑 dashboard stopped")
}

// SetStatusFilter narrows the shipment list to one status, or to everything
// with filter.StatusAll.
func (d *Dashboard) SetStatusFilter(status string) {
	d.mu.Lock()
	d.statusFilter = status
	d.mu.Unlock()
}

// SetSearchTerm narrows the shipment list by route or category text.
func (d *Dashboard) SetSearchTerm(term string) {
	d.mu.Lock()
	d.searchTerm = strings.TrimSpace(term)
	d.mu.Unlock()
}

// Render produces the full dashboard from the current snapshots. It reads
// the view model exactly once per section and derives everything else, so
// calling it twice on an unchanged store yields byte-identical output.
func (d *Dashboard) Render() render.Fragment {
	d.mu.Lock()
	status, term := d.statusFilter, d.searchTerm
	d.mu.Unlock()

	user := d.store.CurrentUser()

	shipSnap := d.store.Get(models.CollectionShipments)
	shipments := models.ShipmentsFromDocs(shipSnap.Docs)
	visible := filter.Apply(shipments, status, term)

	stats := aggregate.Compute(shipments)
	series := aggregate.MonthlySeries(shipments, d.clock(), 6)

	offerSnap := d.store.Get(models.CollectionOffers)
	offers := models.OffersFromDocs(offerSnap.Docs)

	noteSnap := d.store.Get(models.CollectionNotifications)
	notes := models.NotificationsFromDocs(noteSnap.Docs)

	page := render.Fragment{Kind: "page", Key: "dashboard"}
	page.Children = append(page.Children,
		d.rend.Overview(user, stats, series),
		d.rend.ShipmentList(shipSnap.Loaded, shipments, visible),
		d.rend.OfferList(offerSnap.Loaded, offers),
		d.rend.NotificationList(noteSnap.Loaded, notes),
	)
	return page
}

// CreateShipment validates the form input, writes the shipment and announces
// it. Validation is the only thing allowed to block the action; a broker
// failure after a successful write only logs.
func (d *Dashboard) CreateShipment(ctx context.Context, sh models.Shipment) error {
	user := d.store.CurrentUser()
	if user == nil {
		return ErrAuthRequired
	}
	if strings.TrimSpace(sh.FromCity) == "" {
		return validationErr("fromCity", "is required")
	}
	if strings.TrimSpace(sh.ToCity) == "" {
		return validationErr("toCity", "is required")
	}
	if sh.Category == "" {
		return validationErr("shipmentType", "is required")
	}
	if sh.VoluntaryDonation && sh.Budget.Sign() <= 0 {
		return validationErr("budget", "must be positive when donating")
	}

	sh.SenderID = user.ID
	sh.SenderName = user.Name
	sh.Status = models.StatusPending

	id, err := d.deps.Client.Insert(ctx, models.CollectionShipments, sh.Doc())
	if err != nil {
		err = remote.Classify(err)
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	sh.ID = id
	d.publish(ctx, events.ShipmentCreated, sh.Doc())
	d.deps.Alerts.Alert(AlertSuccess, "alert.shipment_created")
	return nil
}

// AcceptOffer marks the offer accepted and moves its shipment to active.
// The live queries deliver the new state; nothing is patched locally.
func (d *Dashboard) AcceptOffer(ctx context.Context, offerID string) error {
	offer, err := d.findOffer(offerID)
	if err != nil {
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	if offer.Status != models.OfferPending {
		d.deps.Alerts.Alert(AlertInfo, "alert.offer_settled")
		return nil
	}
	if err := d.deps.Client.Update(ctx, models.CollectionOffers, offerID,
		remote.Document{"status": string(models.OfferAccepted)}); err != nil {
		err = remote.Classify(err)
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	if err := d.deps.Client.Update(ctx, models.CollectionShipments, offer.ShipmentID,
		remote.Document{"status": string(models.StatusActive)}); err != nil {
		// The offer is already accepted; surface the partial failure
		// instead of pretending nothing happened.
		err = remote.Classify(err)
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	offer.Status = models.OfferAccepted
	d.publish(ctx, events.OfferAccepted, offer.Doc())
	d.deps.Alerts.Alert(AlertSuccess, "alert.offer_accepted")
	return nil
}

// RejectOffer marks the offer rejected. The shipment stays as it was.
func (d *Dashboard) RejectOffer(ctx context.Context, offerID string) error {
	offer, err := d.findOffer(offerID)
	if err != nil {
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	if offer.Status != models.OfferPending {
		d.deps.Alerts.Alert(AlertInfo, "alert.offer_settled")
		return nil
	}
	if err := d.deps.Client.Update(ctx, models.CollectionOffers, offerID,
		remote.Document{"status": string(models.OfferRejected)}); err != nil {
		err = remote.Classify(err)
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	offer.Status = models.OfferRejected
	d.publish(ctx, events.OfferRejected, offer.Doc())
	d.deps.Alerts.Alert(AlertInfo, "alert.offer_rejected")
	return nil
}

// MarkNotificationRead flips one notification to read. Idempotent; marking
// an already-read notification is a no-op update.
func (d *Dashboard) MarkNotificationRead(ctx context.Context, noteID string) error {
	err := d.deps.Client.Update(ctx, models.CollectionNotifications, noteID,
		remote.Document{"read": true})
	if err != nil {
		err = remote.Classify(err)
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	return nil
}

// UpdateProfile overwrites the editable profile fields. Last writer wins;
// there is no merge.
func (d *Dashboard) UpdateProfile(ctx context.Context, name, phone, city string) error {
	user := d.store.CurrentUser()
	if user == nil {
		return ErrAuthRequired
	}
	if strings.TrimSpace(name) == "" {
		return validationErr("name", "is required")
	}
	docs, err := d.deps.Client.GetAll(ctx, remote.Query{
		Collection: models.CollectionUsers,
		Predicates: []remote.Predicate{remote.Eq("uid", user.ID)},
	})
	if err != nil || len(docs) == 0 {
		if err == nil {
			err = remote.ErrNotFound
		}
		err = remote.Classify(err)
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	id, _ := docs[0]["id"].(string)
	if err := d.deps.Client.Update(ctx, models.CollectionUsers, id, remote.Document{
		"name":  name,
		"phone": phone,
		"city":  city,
	}); err != nil {
		err = remote.Classify(err)
		d.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	user.Name, user.Phone, user.City = name, phone, city
	d.store.SetCurrentUser(user)
	d.deps.Alerts.Alert(AlertSuccess, "alert.profile_updated")
	return nil
}

// findOffer resolves an offer id against the current snapshot. Acting on an
// offer that already vanished from the live set is a NotFound, not a crash.
func (d *Dashboard) findOffer(offerID string) (models.Offer, error) {
	snap := d.store.Get(models.CollectionOffers)
	for _, doc := range snap.Docs {
		if id, _ := doc["id"].(string); id == offerID {
			return models.OfferFromDoc(doc), nil
		}
	}
	return models.Offer{}, remote.Classify(remote.ErrNotFound)
}

// publish sends a domain event. The write already succeeded, so a broker
// error is logged and the action still reports success.
func (d *Dashboard) publish(ctx context.Context, name string, payload map[string]any) {
	if d.deps.Events == nil {
		return
	}
	evt := events.Event{Event: name, Payload: payload}
	if err := d.deps.Events.Publish(ctx, name, evt); err != nil {
		d.deps.Log.Warn("event publish failed", zap.String("event", name), zap.Error(err))
	}
}
