package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection names as they exist in the backend document store.
const (
	CollectionUsers         = "users"
	CollectionShipments     = "shipments"
	CollectionOffers        = "offers"
	CollectionNotifications = "notifications"
	CollectionCarriers      = "carriers"
)

// The document codecs below translate between typed records and the raw
// map documents moved by the remote collection client. Field keys match the
// backend schema exactly; renaming one silently orphans existing data.

func docString(d map[string]any, key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

func docBool(d map[string]any, key string) bool {
	v, _ := d[key].(bool)
	return v
}

func docFloat(d map[string]any, key string) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func docInt(d map[string]any, key string) int {
	return int(docFloat(d, key))
}

// docDecimal tolerates numbers and numeric strings; web forms stored the
// budget both ways over time.
func docDecimal(d map[string]any, key string) decimal.Decimal {
	switch v := d[key].(type) {
	case string:
		dec, err := decimal.NewFromString(v)
		if err == nil {
			return dec
		}
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	}
	return decimal.Zero
}

func docTime(d map[string]any, key string) time.Time {
	switch v := d[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func docStrings(d map[string]any, key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// putTime omits zero times so the store stamps createdAt on insert instead
// of persisting the zero value.
func putTime(d map[string]any, key string, t time.Time) {
	if !t.IsZero() {
		d[key] = t
	}
}

func UserFromDoc(d map[string]any) User {
	return User{
		ID:        docString(d, "uid"),
		Name:      docString(d, "name"),
		Email:     docString(d, "email"),
		Phone:     docString(d, "phone"),
		City:      docString(d, "city"),
		Role:      Role(docString(d, "type")),
		Rating:    docFloat(d, "rating"),
		CreatedAt: docTime(d, "createdAt"),
	}
}

func (u User) Doc() map[string]any {
	d := map[string]any{
		"uid":    u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"phone":  u.Phone,
		"city":   u.City,
		"type":   string(u.Role),
		"rating": u.Rating,
	}
	putTime(d, "createdAt", u.CreatedAt)
	return d
}

func ShipmentFromDoc(d map[string]any) Shipment {
	return Shipment{
		ID:                docString(d, "id"),
		SenderID:          docString(d, "senderId"),
		SenderName:        docString(d, "senderName"),
		FromCity:          docString(d, "fromCity"),
		ToCity:            docString(d, "toCity"),
		Category:          ShipmentCategory(docString(d, "shipmentType")),
		Weight:            docString(d, "weight"),
		Budget:            docDecimal(d, "budget"),
		Urgency:           Urgency(docString(d, "urgency")),
		Description:       docString(d, "description"),
		VoluntaryDonation: docBool(d, "voluntaryDonation"),
		Status:            ShipmentStatus(docString(d, "status")),
		CreatedAt:         docTime(d, "createdAt"),
	}
}

func (s Shipment) Doc() map[string]any {
	d := map[string]any{
		"id":                s.ID,
		"senderId":          s.SenderID,
		"senderName":        s.SenderName,
		"fromCity":          s.FromCity,
		"toCity":            s.ToCity,
		"shipmentType":      string(s.Category),
		"weight":            s.Weight,
		"budget":            s.Budget.String(),
		"urgency":           string(s.Urgency),
		"description":       s.Description,
		"voluntaryDonation": s.VoluntaryDonation,
		"status":            string(s.Status),
	}
	putTime(d, "createdAt", s.CreatedAt)
	return d
}

func OfferFromDoc(d map[string]any) Offer {
	return Offer{
		ID:              docString(d, "id"),
		ShipmentID:      docString(d, "shipmentId"),
		ShipmentOwnerID: docString(d, "shipmentOwnerId"),
		CarrierID:       docString(d, "carrierId"),
		CarrierName:     docString(d, "carrierName"),
		CarrierRating:   docFloat(d, "carrierRating"),
		Price:           docDecimal(d, "price"),
		EstimatedTime:   docString(d, "estimatedTime"),
		VehicleType:     docString(d, "vehicleType"),
		Message:         docString(d, "message"),
		Status:          OfferStatus(docString(d, "status")),
		CreatedAt:       docTime(d, "createdAt"),
	}
}

func (o Offer) Doc() map[string]any {
	d := map[string]any{
		"id":              o.ID,
		"shipmentId":      o.ShipmentID,
		"shipmentOwnerId": o.ShipmentOwnerID,
		"carrierId":       o.CarrierID,
		"carrierName":     o.CarrierName,
		"carrierRating":   o.CarrierRating,
		"price":           o.Price.String(),
		"estimatedTime":   o.EstimatedTime,
		"vehicleType":     o.VehicleType,
		"message":         o.Message,
		"status":          string(o.Status),
	}
	putTime(d, "createdAt", o.CreatedAt)
	return d
}

func NotificationFromDoc(d map[string]any) Notification {
	return Notification{
		ID:        docString(d, "id"),
		UserID:    docString(d, "userId"),
		Title:     docString(d, "title"),
		Message:   docString(d, "message"),
		Read:      docBool(d, "read"),
		CreatedAt: docTime(d, "createdAt"),
	}
}

func (n Notification) Doc() map[string]any {
	d := map[string]any{
		"id":      n.ID,
		"userId":  n.UserID,
		"title":   n.Title,
		"message": n.Message,
		"read":    n.Read,
	}
	putTime(d, "createdAt", n.CreatedAt)
	return d
}

func CarrierProfileFromDoc(d map[string]any) CarrierProfile {
	return CarrierProfile{
		ID:              docString(d, "id"),
		UserID:          docString(d, "uid"),
		Name:            docString(d, "name"),
		VehicleType:     docString(d, "vehicleType"),
		LicenseNumber:   docString(d, "licenseNumber"),
		WorkingAreas:    docStrings(d, "workingAreas"),
		ExperienceYears: docInt(d, "experienceYears"),
		Status:          docString(d, "status"),
		Rating:          docFloat(d, "rating"),
		CreatedAt:       docTime(d, "createdAt"),
	}
}

func (c CarrierProfile) Doc() map[string]any {
	d := map[string]any{
		"id":              c.ID,
		"uid":             c.UserID,
		"name":            c.Name,
		"vehicleType":     c.VehicleType,
		"licenseNumber":   c.LicenseNumber,
		"workingAreas":    c.WorkingAreas,
		"experienceYears": c.ExperienceYears,
		"status":          c.Status,
		"rating":          c.Rating,
	}
	putTime(d, "createdAt", c.CreatedAt)
	return d
}

func ShipmentsFromDocs(docs []map[string]any) []Shipment {
	out := make([]Shipment, len(docs))
	for i, d := range docs {
		out[i] = ShipmentFromDoc(d)
	}
	return out
}

func OffersFromDocs(docs []map[string]any) []Offer {
	out := make([]Offer, len(docs))
	for i, d := range docs {
		out[i] = OfferFromDoc(d)
	}
	return out
}

func NotificationsFromDocs(docs []map[string]any) []Notification {
	out := make([]Notification, len(docs))
	for i, d := range docs {
		out[i] = NotificationFromDoc(d)
	}
	return out
}

func UsersFromDocs(docs []map[string]any) []User {
	out := make([]User, len(docs))
	for i, d := range docs {
		out[i] = UserFromDoc(d)
	}
	return out
}
