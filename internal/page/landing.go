package page

import (
	"context"
	"strconv"

	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/Gide-1400/fast-shipment-world/internal/render"
	"github.com/Gide-1400/fast-shipment-world/internal/subscription"
	"github.com/Gide-1400/fast-shipment-world/internal/viewmodel"
)

// Landing is the public front page: two live counters and a call to action.
// It is the only page allowed to subscribe without owner scoping, and it
// renders counts, never record contents.
type Landing struct {
	deps  Deps
	store *viewmodel.Store
	subs  *subscription.Manager
}

func NewLanding(deps Deps) *Landing {
	store := viewmodel.NewStore()
	return &Landing{
		deps:  deps,
		store: store,
		subs:  subscription.NewManager(deps.Client, store, deps.Log),
	}
}

func (l *Landing) Store() *viewmodel.Store { return l.store }

// Start opens the two public counter feeds. Either one failing leaves its
// counter at the loading dash; the page itself never fails to show.
func (l *Landing) Start(ctx context.Context) {
	if err := l.subs.SubscribePublic(ctx, models.CollectionShipments); err != nil {
		l.deps.Alerts.Alert(AlertError, alertKeyFor(err))
	}
	if err := l.subs.SubscribePublic(ctx, models.CollectionUsers,
		remote.In("type", string(models.RoleCarrier), string(models.RoleBoth))); err != nil {
		l.deps.Alerts.Alert(AlertError, alertKeyFor(err))
	}
}

func (l *Landing) Stop() {
	l.subs.UnsubscribeAll()
}

// Render produces the landing counters. Before the first push a counter
// shows a dash rather than a misleading zero.
func (l *Landing) Render() render.Fragment {
	page := render.Fragment{Kind: "page", Key: "landing",
		Text: l.deps.Translator.T("section.landing")}

	page.Children = append(page.Children,
		l.counter("shipmentsMoved", "landing.shipments_moved",
			l.store.Get(models.CollectionShipments)),
		l.counter("carriersOnBoard", "landing.carriers_on_board",
			l.store.Get(models.CollectionUsers)),
		render.Fragment{Kind: "action", Key: "start",
			Text: l.deps.Translator.T("action.create"),
			Intent: render.Intent{Name: render.IntentCreateShipment}},
	)
	return page
}

func (l *Landing) counter(key, labelKey string, snap viewmodel.Snapshot) render.Fragment {
	value := l.deps.Translator.T("landing.counter_loading")
	if snap.Loaded {
		value = strconv.Itoa(len(snap.Docs))
	}
	return render.Fragment{Kind: "stat", Key: key,
		Text: l.deps.Translator.T(labelKey), Class: value}
}
