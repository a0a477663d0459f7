package page

import (
	"errors"
	"fmt"

	"github.com/Gide-1400/fast-shipment-world/internal/remote"
)

// Only these two error kinds may block a user action outright. Everything
// else degrades to a visible, non-blocking notice.
var (
	// ErrValidation marks form input rejected locally, before anything is
	// sent to the backend.
	ErrValidation = errors.New("validation failed")

	// ErrAuthRequired means the page cannot be shown without a signed-in
	// user (or, for admin pages, without the admin role).
	ErrAuthRequired = errors.New("authentication required")
)

func validationErr(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

// alertKeyFor maps a classified error to the notice shown for it. Every
// degraded path ends in one of these; errors are never swallowed silently.
func alertKeyFor(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "alert.validation_failed"
	case errors.Is(err, ErrAuthRequired), errors.Is(err, remote.ErrUnauthenticated):
		return "alert.auth_required"
	case errors.Is(err, remote.ErrNotFound):
		return "alert.not_found"
	case errors.Is(err, remote.ErrNetworkUnavailable):
		return "alert.network_error"
	default:
		return "alert.load_failed"
	}
}
