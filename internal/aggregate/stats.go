// Package aggregate derives the overview numbers from a shipment set. Every
// function is pure: the same input always produces the same output, and each
// push recomputes from scratch. At dashboard sizes (hundreds of records, not
// millions) recomputing is cheaper to get right than incremental updates.
package aggregate

import (
	"time"

	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/shopspring/decimal"
)

// Stats are the derived overview values for one shipment set.
type Stats struct {
	Total       int
	Active      int
	ByStatus    map[models.ShipmentStatus]int
	ByCategory  map[models.ShipmentCategory]int
	DonationSum decimal.Decimal
}

// Compute derives all counters and the donation sum in one pass.
// Unknown stored statuses are counted under their verbatim value; the
// renderer decides how to present them.
func Compute(shipments []models.Shipment) Stats {
	s := Stats{
		ByStatus:    make(map[models.ShipmentStatus]int),
		ByCategory:  make(map[models.ShipmentCategory]int),
		DonationSum: decimal.Zero,
	}
	for _, sh := range shipments {
		s.Total++
		status := sh.EffectiveStatus()
		s.ByStatus[status]++
		if status == models.StatusActive {
			s.Active++
		}
		if sh.Category != "" {
			s.ByCategory[sh.Category]++
		}
		s.DonationSum = s.DonationSum.Add(sh.DonationAmount())
	}
	return s
}

// MonthBucket is one point of the shipments-per-month chart series.
type MonthBucket struct {
	Year  int
	Month time.Month
	Count int
}

// MonthlySeries buckets shipments by creation month: the last `months`
// calendar months up to and including now's month, chronological, zero-filled
// where no shipment falls. Records outside the window are dropped, as are
// records with no creation timestamp.
func MonthlySeries(shipments []models.Shipment, now time.Time, months int) []MonthBucket {
	if months <= 0 {
		return nil
	}
	series := make([]MonthBucket, months)
	index := make(map[[2]int]int, months)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		series[i] = MonthBucket{Year: m.Year(), Month: m.Month()}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}
	for _, sh := range shipments {
		if sh.CreatedAt.IsZero() {
			continue
		}
		created := sh.CreatedAt.UTC()
		if i, ok := index[[2]int{created.Year(), int(created.Month())}]; ok {
			series[i].Count++
		}
	}
	return series
}

// AdminTotals are the platform-wide numbers on the admin overview.
type AdminTotals struct {
	Users       int
	Carriers    int
	Shipments   int
	DonationSum decimal.Decimal
}

// ComputeAdmin derives the admin overview from the full user and shipment
// sets. Carriers counts users whose role includes carrying.
func ComputeAdmin(users []models.User, shipments []models.Shipment) AdminTotals {
	t := AdminTotals{DonationSum: decimal.Zero}
	t.Users = len(users)
	for _, u := range users {
		if u.Role == models.RoleCarrier || u.Role == models.RoleBoth {
			t.Carriers++
		}
	}
	t.Shipments = len(shipments)
	for _, sh := range shipments {
		t.DonationSum = t.DonationSum.Add(sh.DonationAmount())
	}
	return t
}
