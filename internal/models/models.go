package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role classifies what a user can do on the platform.
type Role string

const (
	RoleSender  Role = "sender"
	RoleCarrier Role = "carrier"
	RoleBoth    Role = "both"
	RoleAdmin   Role = "admin"
)

// ShipmentCategory is the kind of goods being moved.
type ShipmentCategory string

const (
	CategoryDocuments    ShipmentCategory = "documents"
	CategorySmallPackage ShipmentCategory = "small_package"
	CategoryLargePackage ShipmentCategory = "large_package"
	CategoryFurniture    ShipmentCategory = "furniture"
	CategoryElectronics  ShipmentCategory = "electronics"
	CategoryOther        ShipmentCategory = "other"
)

// Categories lists every category in a fixed display order.
// Aggregates and rendered tables iterate this slice so output is deterministic.
var Categories = []ShipmentCategory{
	CategoryDocuments,
	CategorySmallPackage,
	CategoryLargePackage,
	CategoryFurniture,
	CategoryElectronics,
	CategoryOther,
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ShipmentStatus is the lifecycle state of a shipment.
// pending -> active -> {completed | cancelled}. completed and cancelled are
// terminal. Stored values outside this set are kept verbatim and rendered
// through the unknown-status fallback rather than rejected.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "pending"
	StatusActive    ShipmentStatus = "active"
	StatusCompleted ShipmentStatus = "completed"
	StatusCancelled ShipmentStatus = "cancelled"
)

// Statuses lists the known statuses in fixed display order.
var Statuses = []ShipmentStatus{StatusPending, StatusActive, StatusCompleted, StatusCancelled}

// Known reports whether the status is one of the four lifecycle states.
func (s ShipmentStatus) Known() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a shipment in this state may still move.
// Only pending and active shipments can change state.
func (s ShipmentStatus) CanTransition() bool {
	return s == StatusPending || s == StatusActive
}

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// User is the read-only cached copy of a backend user record.
type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	City      string
	Role      Role
	Rating    float64 // default 5.0 for new accounts
	CreatedAt time.Time
}

// Shipment is a sender's request to move goods between two cities.
type Shipment struct {
	ID          string
	SenderID    string
	SenderName  string
	FromCity    string
	ToCity      string
	Category    ShipmentCategory
	Weight      string // free text in the source forms ("5kg", "خفيف")
	Budget      decimal.Decimal
	Urgency     Urgency
	Description string
	// VoluntaryDonation marks the opt-in 1% surcharge on the budget.
	// Invariant: when set, Budget must be > 0.
	VoluntaryDonation bool
	Status            ShipmentStatus
	CreatedAt         time.Time
}

// EffectiveStatus returns the stored status, defaulting to active for records
// written before the status field existed.
func (s Shipment) EffectiveStatus() ShipmentStatus {
	if s.Status == "" {
		return StatusActive
	}
	return s.Status
}

// DonationAmount is 1% of the budget when the donation flag is set, zero
// otherwise. Records with a missing or non-positive budget contribute zero.
func (s Shipment) DonationAmount() decimal.Decimal {
	if !s.VoluntaryDonation || s.Budget.Sign() <= 0 {
		return decimal.Zero
	}
	return s.Budget.Mul(decimal.NewFromFloat(0.01))
}

// Offer is a carrier's proposal to fulfil a specific shipment.
// ShipmentOwnerID is denormalized from the shipment so the dashboard can
// query all offers on a sender's shipments with a single owner predicate.
type Offer struct {
	ID              string
	ShipmentID      string
	ShipmentOwnerID string
	CarrierID       string
	CarrierName     string
	CarrierRating   float64
	Price           decimal.Decimal
	EstimatedTime   string
	VehicleType     string
	Message         string
	Status          OfferStatus
	CreatedAt       time.Time
}

// Notification is a short message targeted at a single user.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// CarrierProfile is a carrier registration awaiting admin review.
type CarrierProfile struct {
	ID              string
	UserID          string
	Name            string
	VehicleType     string
	LicenseNumber   string
	WorkingAreas    []string
	ExperienceYears int
	Status          string // "pending" until reviewed
	Rating          float64
	CreatedAt       time.Time
}
