package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots one product-quantity-price triple at order time.
// Immutable after creation; price is decoupled from later catalog changes.
// The inventory reference is RESTRICT on delete, which is why inventory rows
// are soft-deleted instead.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index:idx_order_items_order" json:"order_id"`
	InventoryID uuid.UUID       `gorm:"column:inventory_id;type:uuid;not null" json:"inventory_id"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Inventory   *InventoryItem  `gorm:"foreignKey:InventoryID;constraint:OnDelete:RESTRICT" json:"inventory,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
