package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem holds the live stock counter. Quantity is only ever
// decremented inside an order-creation transaction holding this row's lock;
// soft-deleted rows stay around for order history but are invisible to
// listing and ordering.
type InventoryItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index:idx_inventory_tenant" json:"tenant_id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	SKU       string          `gorm:"column:sku;not null;index:idx_inventory_tenant_sku" json:"sku"`
	Quantity  int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	IsDeleted bool            `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (i *InventoryItem) TableName() string { return "inventory" }

func (i *InventoryItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
