package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestClassifyPassesThroughClassified(t *testing.T) {
	wrapped := fmt.Errorf("offers/o1: %w", ErrNotFound)
	if got := Classify(wrapped); got != wrapped {
		t.Errorf("already-classified error re-wrapped: %v", got)
	}
}

func TestClassifyNetworkErrors(t *testing.T) {
	netErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	if !errors.Is(Classify(netErr), ErrNetworkUnavailable) {
		t.Errorf("net.OpError not classified as network unavailable")
	}
	if !errors.Is(Classify(context.DeadlineExceeded), ErrNetworkUnavailable) {
		t.Errorf("deadline exceeded not classified as network unavailable")
	}
}

func TestClassifyUnknownFallback(t *testing.T) {
	orig := errors.New("driver exploded")
	got := Classify(orig)
	if !errors.Is(got, ErrUnknown) {
		t.Errorf("err = %v, want ErrUnknown wrap", got)
	}
	// the original text stays visible for logs
	if got.Error() == ErrUnknown.Error() {
		t.Error("original error text lost in classification")
	}
}

func TestClassifyNil(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("Classify(nil) != nil")
	}
}

func TestTransient(t *testing.T) {
	if !Transient(Classify(context.DeadlineExceeded)) {
		t.Error("network errors must be transient")
	}
	if Transient(fmt.Errorf("x: %w", ErrUnauthenticated)) {
		t.Error("auth failures must not be transient")
	}
	if Transient(fmt.Errorf("x: %w", ErrPermissionDenied)) {
		t.Error("permission failures must not be transient")
	}
}
