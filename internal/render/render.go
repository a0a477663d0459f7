// Package render maps view-model snapshots and derived aggregates to display
// fragments. Rendering is a pure function of its inputs: no network, no view
// model writes, no hidden state. The only thing that leaves this layer
// besides fragments is the intent attached to an actionable fragment.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Gide-1400/fast-shipment-world/internal/aggregate"
	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
)

type Renderer struct {
	tr *i18n.Translator
}

func NewRenderer(tr *i18n.Translator) *Renderer {
	return &Renderer{tr: tr}
}

// Overview renders the stats header and the chart series. A nil user renders
// the unauthenticated fallback (guest label, default rating).
func (r *Renderer) Overview(user *models.User, stats aggregate.Stats, series []aggregate.MonthBucket) Fragment {
	name := r.tr.T("guest")
	rating := 5.0
	if user != nil {
		if user.Name != "" {
			name = user.Name
		}
		if user.Rating > 0 {
			rating = user.Rating
		}
	}

	section := Fragment{Kind: "section", Key: "overview", Text: r.tr.T("section.overview")}
	section.Children = append(section.Children,
		Fragment{Kind: "text", Key: "userName", Text: name},
		Fragment{Kind: "stat", Key: "totalShipments", Text: r.tr.T("stats.total_shipments"),
			Class: strconv.Itoa(stats.Total)},
		Fragment{Kind: "stat", Key: "activeShipments", Text: r.tr.T("stats.active_shipments"),
			Class: strconv.Itoa(stats.Active)},
		Fragment{Kind: "stat", Key: "averageRating", Text: r.tr.T("stats.average_rating"),
			Class: strconv.FormatFloat(rating, 'f', 1, 64)},
		Fragment{Kind: "stat", Key: "totalDonations", Text: r.tr.T("stats.total_donations"),
			Class: stats.DonationSum.StringFixed(2)},
	)

	chart := Fragment{Kind: "chart", Key: "shipmentsChart", Text: r.tr.T("stats.monthly_series")}
	for _, bucket := range series {
		chart.Children = append(chart.Children, Fragment{
			Kind:  "point",
			Key:   fmt.Sprintf("%04d-%02d", bucket.Year, int(bucket.Month)),
			Class: strconv.Itoa(bucket.Count),
		})
	}
	section.Children = append(section.Children, chart)
	return section
}

// ShipmentList renders the shipment cards. The three-way distinction matters:
// a list that never loaded shows "loading", a loaded-but-empty account shows
// the onboarding empty state, and a non-empty account whose filter matched
// nothing shows "no results".
func (r *Renderer) ShipmentList(loaded bool, all, visible []models.Shipment) Fragment {
	section := Fragment{Kind: "section", Key: "shipments", Text: r.tr.T("section.shipments")}
	switch {
	case !loaded:
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "loading", Class: "loading", Text: r.tr.T("shipments.loading")})
	case len(all) == 0:
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "empty", Class: "empty-state", Text: r.tr.T("shipments.empty")},
			Fragment{Kind: "text", Key: "empty-hint", Text: r.tr.T("shipments.empty_hint")},
			Fragment{Kind: "action", Key: "create", Text: r.tr.T("action.create"),
				Intent: Intent{Name: IntentCreateShipment}})
	case len(visible) == 0:
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "no-results", Class: "no-results", Text: r.tr.T("shipments.no_results")})
	default:
		for _, sh := range visible {
			section.Children = append(section.Children, r.shipmentCard(sh))
		}
	}
	return section
}

func (r *Renderer) shipmentCard(sh models.Shipment) Fragment {
	card := Fragment{Kind: "card", Key: sh.ID, Class: "shipment-card"}
	card.Children = append(card.Children,
		Fragment{Kind: "text", Key: "id", Text: "#" + shortID(sh.ID)},
		r.StatusBadge(sh.EffectiveStatus()),
		Fragment{Kind: "text", Key: "route", Text: sh.FromCity + " → " + sh.ToCity},
		Fragment{Kind: "text", Key: "type", Text: r.tr.T("category." + string(sh.Category))},
		Fragment{Kind: "text", Key: "budget", Text: sh.Budget.String() + " " + r.tr.T("currency")},
		Fragment{Kind: "action", Key: "view", Text: r.tr.T("action.view"),
			Intent: Intent{Name: IntentViewShipment, TargetID: sh.ID}},
		Fragment{Kind: "action", Key: "track", Text: r.tr.T("action.track"),
			Intent: Intent{Name: IntentTrackShipment, TargetID: sh.ID}},
	)
	return card
}

// StatusBadge renders the visible status. Unknown stored values are rendered
// verbatim with the unknown class; a bad write must never crash the page.
func (r *Renderer) StatusBadge(status models.ShipmentStatus) Fragment {
	if !status.Known() {
		return Fragment{Kind: "badge", Key: "status", Class: "unknown", Text: string(status)}
	}
	return Fragment{Kind: "badge", Key: "status", Class: string(status),
		Text: r.tr.T("status." + string(status))}
}

// OfferList renders the offer cards with their accept/negotiate/reject
// actions. Offers have no search filter, so the distinction is two-way.
func (r *Renderer) OfferList(loaded bool, offers []models.Offer) Fragment {
	section := Fragment{Kind: "section", Key: "offers", Text: r.tr.T("section.offers")}
	switch {
	case !loaded:
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "loading", Class: "loading", Text: r.tr.T("offers.loading")})
	case len(offers) == 0:
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "empty", Class: "empty-state", Text: r.tr.T("offers.empty")},
			Fragment{Kind: "text", Key: "empty-hint", Text: r.tr.T("offers.empty_hint")})
	default:
		for _, offer := range offers {
			section.Children = append(section.Children, r.offerCard(offer))
		}
	}
	return section
}

func (r *Renderer) offerCard(o models.Offer) Fragment {
	card := Fragment{Kind: "card", Key: o.ID, Class: "offer-card"}
	card.Children = append(card.Children,
		Fragment{Kind: "text", Key: "carrier", Text: o.CarrierName},
		Fragment{Kind: "text", Key: "rating", Text: strconv.FormatFloat(o.CarrierRating, 'f', 1, 64)},
		Fragment{Kind: "text", Key: "price", Text: o.Price.String() + " " + r.tr.T("currency")},
		Fragment{Kind: "text", Key: "eta", Text: o.EstimatedTime},
		Fragment{Kind: "text", Key: "vehicle", Text: o.VehicleType},
		Fragment{Kind: "text", Key: "message", Text: o.Message},
	)
	// only pending offers are actionable
	if o.Status == models.OfferPending {
		card.Children = append(card.Children,
			Fragment{Kind: "action", Key: "accept", Text: r.tr.T("action.accept"),
				Intent: Intent{Name: IntentAcceptOffer, TargetID: o.ID}},
			Fragment{Kind: "action", Key: "negotiate", Text: r.tr.T("action.negotiate"),
				Intent: Intent{Name: IntentNegotiateOffer, TargetID: o.ID}},
			Fragment{Kind: "action", Key: "reject", Text: r.tr.T("action.reject"),
				Intent: Intent{Name: IntentRejectOffer, TargetID: o.ID}},
		)
	} else {
		card.Children = append(card.Children,
			Fragment{Kind: "badge", Key: "status", Class: string(o.Status), Text: string(o.Status)})
	}
	return card
}

// NotificationList renders the notification panel with the unread counter.
func (r *Renderer) NotificationList(loaded bool, notes []models.Notification) Fragment {
	section := Fragment{Kind: "section", Key: "notifications", Text: r.tr.T("section.notifications")}
	unread := 0
	for _, n := range notes {
		if !n.Read {
			unread++
		}
	}
	badge := strconv.Itoa(unread)
	if unread > 9 {
		badge = "9+"
	}
	section.Children = append(section.Children,
		Fragment{Kind: "badge", Key: "unread", Class: "notification-count", Text: badge})

	switch {
	case !loaded:
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "loading", Class: "loading", Text: r.tr.T("notifications.loading")})
	case len(notes) == 0:
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "empty", Class: "empty-state", Text: r.tr.T("notifications.empty")})
	default:
		for _, n := range notes {
			class := "unread"
			if n.Read {
				class = "read"
			}
			item := Fragment{Kind: "card", Key: n.ID, Class: class}
			item.Children = append(item.Children,
				Fragment{Kind: "text", Key: "title", Text: n.Title},
				Fragment{Kind: "text", Key: "message", Text: n.Message},
			)
			if !n.Read {
				item.Children = append(item.Children,
					Fragment{Kind: "action", Key: "mark-read", Text: r.tr.T("action.mark_read"),
						Intent: Intent{Name: IntentMarkNotification, TargetID: n.ID}})
			}
			section.Children = append(section.Children, item)
		}
	}
	return section
}

// UserTable renders the admin user management table.
func (r *Renderer) UserTable(users []models.User) Fragment {
	section := Fragment{Kind: "section", Key: "users", Text: r.tr.T("section.users")}
	if len(users) == 0 {
		section.Children = append(section.Children,
			Fragment{Kind: "text", Key: "empty", Class: "no-data", Text: r.tr.T("admin.no_users")})
		return section
	}
	table := Fragment{Kind: "table", Key: "usersTable"}
	header := Fragment{Kind: "row", Key: "header"}
	for _, col := range []string{"admin.name", "admin.email", "admin.role", "admin.rating", "admin.registered"} {
		header.Children = append(header.Children, Fragment{Kind: "cell", Text: r.tr.T(col)})
	}
	table.Children = append(table.Children, header)
	for _, u := range users {
		row := Fragment{Kind: "row", Key: u.ID}
		row.Children = append(row.Children,
			Fragment{Kind: "cell", Text: u.Name},
			Fragment{Kind: "cell", Text: u.Email},
			Fragment{Kind: "cell", Text: r.tr.T("role." + string(u.Role))},
			Fragment{Kind: "cell", Text: strconv.FormatFloat(u.Rating, 'f', 1, 64)},
			Fragment{Kind: "cell", Text: formatDate(u.CreatedAt)},
		)
		table.Children = append(table.Children, row)
	}
	section.Children = append(section.Children, table)
	return section
}

// AdminShipmentTable renders the platform-wide shipment table with the
// donation column.
func (r *Renderer) AdminShipmentTable(shipments []models.Shipment) Fragment {
	section := Fragment{Kind: "section", Key: "adminShipments", Text: r.tr.T("section.shipments")}
	table := Fragment{Kind: "table", Key: "adminShipmentsTable"}
	header := Fragment{Kind: "row", Key: "header"}
	for _, col := range []string{"admin.sender", "admin.route", "stats.total_donations", "admin.status"} {
		header.Children = append(header.Children, Fragment{Kind: "cell", Text: r.tr.T(col)})
	}
	table.Children = append(table.Children, header)
	for _, sh := range shipments {
		row := Fragment{Kind: "row", Key: sh.ID}
		row.Children = append(row.Children,
			Fragment{Kind: "cell", Text: sh.SenderName},
			Fragment{Kind: "cell", Text: sh.FromCity + " → " + sh.ToCity},
			Fragment{Kind: "cell", Text: sh.DonationAmount().StringFixed(2)},
		)
		row.Children = append(row.Children, r.StatusBadge(sh.EffectiveStatus()))
		table.Children = append(table.Children, row)
	}
	section.Children = append(section.Children, table)
	return section
}

// shortID keeps the card header readable; full ids only show up in intents.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
