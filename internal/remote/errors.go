package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for the backend error taxonomy. Store implementations wrap
// their driver errors into one of these so callers can branch with errors.Is
// instead of inspecting driver types.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrNotFound           = errors.New("not found")
	ErrUnknown            = errors.New("unknown backend error")
)

// Classify wraps err into the taxonomy. Already-classified errors pass
// through unchanged; driver errors that smell like connectivity problems map
// to ErrNetworkUnavailable; everything else becomes ErrUnknown with the
// original error preserved in the chain.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrUnauthenticated, ErrPermissionDenied, ErrNetworkUnavailable, ErrNotFound, ErrUnknown,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnknown, err)
}

// Transient reports whether the error is worth surfacing as a dismissible
// notice while keeping last-known-good data on screen. Auth failures are not
// transient: they must push the page to the unauthenticated state.
func Transient(err error) bool {
	return errors.Is(err, ErrNetworkUnavailable) || errors.Is(err, ErrUnknown)
}
