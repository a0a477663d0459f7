package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestEffectiveStatusDefaultsToActive(t *testing.T) {
	if got := (Shipment{}).EffectiveStatus(); got != StatusActive {
		t.Errorf("EffectiveStatus = %q, want active", got)
	}
	if got := (Shipment{Status: StatusCompleted}).EffectiveStatus(); got != StatusCompleted {
		t.Errorf("EffectiveStatus = %q, want completed", got)
	}
	// unknown stored values pass through verbatim
	if got := (Shipment{Status: "archived"}).EffectiveStatus(); got != "archived" {
		t.Errorf("EffectiveStatus = %q, want archived", got)
	}
}

func TestDonationAmount(t *testing.T) {
	tests := []struct {
		name     string
		shipment Shipment
		want     string
	}{
		{"one percent of budget", Shipment{Budget: decimal.NewFromInt(250), VoluntaryDonation: true}, "2.50"},
		{"flag off", Shipment{Budget: decimal.NewFromInt(250)}, "0.00"},
		{"zero budget", Shipment{VoluntaryDonation: true}, "0.00"},
		{"negative budget", Shipment{Budget: decimal.NewFromInt(-10), VoluntaryDonation: true}, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shipment.DonationAmount().StringFixed(2); got != tt.want {
				t.Errorf("DonationAmount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	if !StatusPending.CanTransition() || !StatusActive.CanTransition() {
		t.Error("pending and active must be able to move")
	}
	if StatusCompleted.CanTransition() || StatusCancelled.CanTransition() {
		t.Error("terminal statuses must not move")
	}
	if ShipmentStatus("archived").Known() {
		t.Error("unexpected status reported as known")
	}
}

func TestShipmentDocRoundTrip(t *testing.T) {
	created := time.Date(2024, time.May, 1, 10, 30, 0, 0, time.UTC)
	sh := Shipment{
		ID: "s1", SenderID: "u1", SenderName: "Ahmed",
		FromCity: "Riyadh", ToCity: "Jeddah",
		Category: CategoryFurniture, Weight: "50kg",
		Budget: decimal.RequireFromString("199.99"),
		Urgency: UrgencyHigh, Description: "handle with care",
		VoluntaryDonation: true, Status: StatusActive,
		CreatedAt: created,
	}
	got := ShipmentFromDoc(sh.Doc())
	if got.ID != sh.ID || got.SenderID != sh.SenderID || got.FromCity != sh.FromCity ||
		got.Category != sh.Category || !got.Budget.Equal(sh.Budget) ||
		got.VoluntaryDonation != sh.VoluntaryDonation || !got.CreatedAt.Equal(created) {
		t.Errorf("round trip lost data:\n got %+v\nwant %+v", got, sh)
	}
}

func TestDocDecimalToleratesStoredNumbers(t *testing.T) {
	// older records stored the budget as a number, newer ones as a string
	fromNumber := ShipmentFromDoc(map[string]any{"budget": 150.5})
	if got := fromNumber.Budget.StringFixed(2); got != "150.50" {
		t.Errorf("numeric budget = %s", got)
	}
	fromString := ShipmentFromDoc(map[string]any{"budget": "150.50"})
	if !fromString.Budget.Equal(fromNumber.Budget) {
		t.Errorf("string and numeric budgets decode differently")
	}
	garbage := ShipmentFromDoc(map[string]any{"budget": "not a number"})
	if !garbage.Budget.Equal(decimal.Zero) {
		t.Errorf("garbage budget = %s, want 0", garbage.Budget)
	}
}

func TestDocOmitsZeroCreatedAt(t *testing.T) {
	d := (Notification{ID: "n1", UserID: "u1"}).Doc()
	if _, ok := d["createdAt"]; ok {
		t.Error("zero createdAt written to the document; the store should stamp it")
	}
}
