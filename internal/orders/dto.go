package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qommercehub/backoffice-backend/pkg/enums"
	"github.com/qommercehub/backoffice-backend/pkg/pagination"
)

// ItemInput is one requested order line. Price is what the back-office caller
// agreed with the customer; it is snapshotted as-is, not re-read from the
// catalog.
type ItemInput struct {
	InventoryID uuid.UUID
	Quantity    int
	Price       decimal.Decimal
}

// CreateInput is an order creation request.
type CreateInput struct {
	CustomerID uuid.UUID
	Notes      *string
	Items      []ItemInput
}

// ListQuery carries the listing filters from the API surface.
type ListQuery struct {
	Status *enums.OrderStatus
	Page   pagination.Params
}

// InsufficientStockDetails names the first line that could not be fulfilled.
type InsufficientStockDetails struct {
	ItemName  string `json:"item_name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}
