package page

import (
	"context"
	"fmt"

	"github.com/Gide-1400/fast-shipment-world/internal/render"
)

// HandlerFunc handles one user intent against its target record.
type HandlerFunc func(ctx context.Context, targetID string) error

// Dispatcher is the explicit event-dispatch table: intent name to handler.
// The render layer only attaches intent names to fragments and never learns
// how an intent is bound to a handler.
type Dispatcher struct {
	handlers map[string]HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

func (d *Dispatcher) Register(intentName string, h HandlerFunc) {
	d.handlers[intentName] = h
}

// Dispatch routes an emitted intent to its handler. An unregistered intent
// is a wiring bug and is reported, not ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, intent render.Intent) error {
	h, ok := d.handlers[intent.Name]
	if !ok {
		return fmt.Errorf("no handler registered for intent %q", intent.Name)
	}
	return h(ctx, intent.TargetID)
}
