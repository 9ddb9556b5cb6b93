package notifications

import (
	"context"
	"fmt"

	"github.com/qommercehub/backoffice-backend/pkg/logger"
)

// Notifier fans dispatches out to goroutines. Delivery is strictly
// best-effort: the order is already durably committed when these fire, so a
// failed or panicking dispatcher is logged and dropped, never surfaced to the
// API caller.
type Notifier struct {
	dispatcher Dispatcher
	logg       *logger.Logger
}

// NewNotifier wires the async wrapper around a concrete dispatcher.
func NewNotifier(dispatcher Dispatcher, logg *logger.Logger) (*Notifier, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	return &Notifier{dispatcher: dispatcher, logg: logg}, nil
}

// OrderConfirmation dispatches an order confirmation without blocking the
// caller.
func (n *Notifier) OrderConfirmation(ctx context.Context, payload OrderConfirmation) {
	n.spawn(ctx, "order_confirmation", func(ctx context.Context) error {
		return n.dispatcher.SendOrderConfirmation(ctx, payload)
	})
}

// OrderStatusChange dispatches a status-change notice without blocking the
// caller.
func (n *Notifier) OrderStatusChange(ctx context.Context, payload StatusChange) {
	n.spawn(ctx, "order_status_change", func(ctx context.Context) error {
		return n.dispatcher.SendStatusChange(ctx, payload)
	})
}

func (n *Notifier) spawn(ctx context.Context, kind string, fn func(ctx context.Context) error) {
	// Detach from the request context: the HTTP response must not wait on
	// delivery, and a cancelled request must not abort it.
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if rec := recover(); rec != nil && n.logg != nil {
				n.logg.Error(ctx, "notification dispatch panicked", fmt.Errorf("panic: %v", rec))
			}
		}()
		if err := fn(ctx); err != nil && n.logg != nil {
			ctx = n.logg.WithField(ctx, "notification", kind)
			n.logg.Error(ctx, "notification dispatch failed", err)
		}
	}()
}
