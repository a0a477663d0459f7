package page

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newAdminFixture(t *testing.T) (*Admin, *remote.MemoryClient, *recordingAlerter) {
	t.Helper()
	client := remote.NewMemoryClient()
	alerts := &recordingAlerter{}
	admin := NewAdmin(Deps{
		Client:     client,
		Alerts:     alerts,
		Log:        zap.NewNop(),
		Translator: i18n.New(i18n.LangEnglish),
	})
	return admin, client, alerts
}

func TestAdminRoleGate(t *testing.T) {
	admin, _, _ := newAdminFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		user *models.User
	}{
		{"nil user", nil},
		{"sender", &models.User{ID: "u1", Role: models.RoleSender}},
		{"carrier", &models.User{ID: "u2", Role: models.RoleCarrier}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := admin.Load(ctx, tt.user); !errors.Is(err, ErrAuthRequired) {
				t.Fatalf("err = %v, want ErrAuthRequired", err)
			}
		})
	}
}

func TestAdminLoadAndRender(t *testing.T) {
	admin, client, _ := newAdminFixture(t)
	ctx := context.Background()

	for _, u := range []models.User{
		{ID: "u1", Name: "Ahmed", Role: models.RoleSender, Rating: 4.5},
		{ID: "u2", Name: "Salem", Role: models.RoleCarrier, Rating: 5},
	} {
		if _, err := client.Insert(ctx, models.CollectionUsers, u.Doc()); err != nil {
			t.Fatalf("insert user: %v", err)
		}
	}
	sh := models.Shipment{SenderID: "u1", SenderName: "Ahmed",
		FromCity: "Riyadh", ToCity: "Jeddah",
		Budget: decimal.NewFromInt(400), VoluntaryDonation: true,
		Status: models.StatusActive}
	if _, err := client.Insert(ctx, models.CollectionShipments, sh.Doc()); err != nil {
		t.Fatalf("insert shipment: %v", err)
	}

	root := &models.User{ID: "root", Role: models.RoleAdmin}
	if err := admin.Load(ctx, root); err != nil {
		t.Fatalf("load: %v", err)
	}

	totals := admin.Totals()
	if totals.Users != 2 || totals.Carriers != 1 || totals.Shipments != 1 {
		t.Errorf("totals = %+v", totals)
	}
	if got := totals.DonationSum.StringFixed(2); got != "4.00" {
		t.Errorf("DonationSum = %s, want 4.00", got)
	}

	out := admin.Render().String()
	for _, want := range []string{"Ahmed", "Salem", "Riyadh → Jeddah", `"4.00"`} {
		if !strings.Contains(out, want) {
			t.Errorf("admin render missing %q:\n%s", want, out)
		}
	}
}
