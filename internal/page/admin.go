package page

import (
	"context"
	"strconv"

	"github.com/Gide-1400/fast-shipment-world/internal/aggregate"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/Gide-1400/fast-shipment-world/internal/render"
	"go.uber.org/zap"
)

// Admin is the back-office controller. Unlike the dashboard it loads its
// data one-shot; admins press refresh, they do not watch live.
type Admin struct {
	deps Deps
	rend *render.Renderer

	users     []models.User
	shipments []models.Shipment
	loaded    bool
}

func NewAdmin(deps Deps) *Admin {
	return &Admin{deps: deps, rend: render.NewRenderer(deps.Translator)}
}

// Load pulls every user and shipment. Only the admin role may enter; the
// role gate is checked here and not in the shell, so a direct call cannot
// bypass it.
func (a *Admin) Load(ctx context.Context, user *models.User) error {
	if user == nil || user.Role != models.RoleAdmin {
		return ErrAuthRequired
	}

	userDocs, err := a.deps.Client.GetAll(ctx, remote.Query{
		Collection: models.CollectionUsers,
		Order:      &remote.OrderBy{Field: "createdAt", Desc: true},
	})
	if err != nil {
		err = remote.Classify(err)
		a.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}
	shipDocs, err := a.deps.Client.GetAll(ctx, remote.Query{
		Collection: models.CollectionShipments,
		Order:      &remote.OrderBy{Field: "createdAt", Desc: true},
	})
	if err != nil {
		err = remote.Classify(err)
		a.deps.Alerts.Alert(AlertError, alertKeyFor(err))
		return err
	}

	a.users = models.UsersFromDocs(userDocs)
	a.shipments = models.ShipmentsFromDocs(shipDocs)
	a.loaded = true
	a.deps.Log.Info("✅ admin data loaded",
		zap.Int("users", len(a.users)), zap.Int("shipments", len(a.shipments)))
	return nil
}

// Totals derives the platform-wide counters from the loaded data.
func (a *Admin) Totals() aggregate.AdminTotals {
	return aggregate.ComputeAdmin(a.users, a.shipments)
}

// Render produces the admin page: totals plus the two management tables.
func (a *Admin) Render() render.Fragment {
	totals := a.Totals()
	page := render.Fragment{Kind: "page", Key: "admin"}
	header := render.Fragment{Kind: "section", Key: "totals", Text: a.deps.Translator.T("section.admin")}
	header.Children = append(header.Children,
		render.Fragment{Kind: "stat", Key: "totalUsers",
			Text: a.deps.Translator.T("admin.total_users"), Class: strconv.Itoa(totals.Users)},
		render.Fragment{Kind: "stat", Key: "totalCarriers",
			Text: a.deps.Translator.T("admin.total_carriers"), Class: strconv.Itoa(totals.Carriers)},
		render.Fragment{Kind: "stat", Key: "totalShipments",
			Text: a.deps.Translator.T("admin.total_shipments"), Class: strconv.Itoa(totals.Shipments)},
		render.Fragment{Kind: "stat", Key: "totalDonations",
			Text: a.deps.Translator.T("admin.total_donations"), Class: totals.DonationSum.StringFixed(2)},
	)
	page.Children = append(page.Children,
		header,
		a.rend.UserTable(a.users),
		a.rend.AdminShipmentTable(a.shipments),
	)
	return page
}
