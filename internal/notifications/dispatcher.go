package notifications

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qommercehub/backoffice-backend/pkg/enums"
)

// ItemLine is one line of an order confirmation, with the product fields
// resolved for display.
type ItemLine struct {
	ProductName string
	SKU         string
	Quantity    int
	Price       decimal.Decimal
}

// OrderConfirmation is sent to the customer once an order has committed.
type OrderConfirmation struct {
	OrderID       uuid.UUID
	TenantID      uuid.UUID
	CustomerName  string
	CustomerEmail string
	Total         decimal.Decimal
	Items         []ItemLine
}

// StatusChange is sent when an order moves to a different status.
type StatusChange struct {
	OrderID       uuid.UUID
	TenantID      uuid.UUID
	CustomerName  string
	CustomerEmail string
	OldStatus     enums.OrderStatus
	NewStatus     enums.OrderStatus
}

// Dispatcher attempts delivery of a single notification. Implementations may
// fail; callers go through Notifier, which isolates those failures from the
// request path.
type Dispatcher interface {
	SendOrderConfirmation(ctx context.Context, payload OrderConfirmation) error
	SendStatusChange(ctx context.Context, payload StatusChange) error
}
