// Package filter computes the visible subset of a record list. Filters never
// re-sort: the backend already delivers records creation-descending, and that
// order must survive to the screen.
package filter

import (
	"strings"

	"github.com/Gide-1400/fast-shipment-world/internal/models"
)

// StatusAll is the sentinel meaning "no status filtering".
const StatusAll = "all"

// ByStatus keeps shipments whose effective status matches exactly. Records
// with no stored status count as active. StatusAll returns the input
// unchanged.
func ByStatus(in []models.Shipment, status string) []models.Shipment {
	if status == StatusAll {
		return in
	}
	out := make([]models.Shipment, 0, len(in))
	for _, sh := range in {
		if string(sh.EffectiveStatus()) == status {
			out = append(out, sh)
		}
	}
	return out
}

// BySearchTerm keeps shipments where the term appears, case-insensitively, in
// the origin city, the destination city OR the category. An empty term keeps
// everything.
func BySearchTerm(in []models.Shipment, term string) []models.Shipment {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return in
	}
	out := make([]models.Shipment, 0, len(in))
	for _, sh := range in {
		if containsFold(sh.FromCity, term) ||
			containsFold(sh.ToCity, term) ||
			containsFold(string(sh.Category), term) {
			out = append(out, sh)
		}
	}
	return out
}

// Apply composes the status filter then the search filter, preserving input
// order throughout.
func Apply(in []models.Shipment, status, term string) []models.Shipment {
	return BySearchTerm(ByStatus(in, status), term)
}

func containsFold(haystack, lowered string) bool {
	return strings.Contains(strings.ToLower(haystack), lowered)
}
