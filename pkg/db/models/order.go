package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qommercehub/backoffice-backend/pkg/enums"
)

// Order is created atomically with its items and inventory decrements.
// TotalAmount is fixed at creation time from the snapshotted line item
// prices; status is the only field mutated afterwards.
type Order struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;index:idx_orders_tenant" json:"tenant_id"`
	CustomerID  uuid.UUID         `gorm:"column:customer_id;type:uuid;not null;index:idx_orders_customer" json:"customer_id"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:'pending';index:idx_orders_status" json:"status"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null" json:"total_amount"`
	Notes       *string           `gorm:"column:notes" json:"notes,omitempty"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
