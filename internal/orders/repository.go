package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qommercehub/backoffice-backend/pkg/db/models"
	"github.com/qommercehub/backoffice-backend/pkg/enums"
)

// Repository is the persistence surface of the order path. The lock and
// decrement methods are only meaningful inside a transaction; callers rebind
// with WithTx before using them.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.OrderStatus) (int64, error)
	LockInventoryItem(ctx context.Context, tenantID, inventoryID uuid.UUID) (*models.InventoryItem, error)
	DecrementInventory(ctx context.Context, tenantID, inventoryID uuid.UUID, quantity int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an order repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Inventory").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Order, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tenant_id = ?", tenantID)
	if q.Status != nil {
		base = base.Where("status = ?", *q.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Page.Normalize()
	var results []models.Order
	err := base.
		Preload("Customer").
		Preload("Items").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(q.Page.Offset()).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.OrderStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// LockInventoryItem reads the live stock row under FOR UPDATE so concurrent
// order transactions serialize on it. SQLite locks the whole database on
// write and rejects the locking clause, so it is skipped there; the guarded
// decrement still keeps the counter from going negative.
func (r *repository) LockInventoryItem(ctx context.Context, tenantID, inventoryID uuid.UUID) (*models.InventoryItem, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var item models.InventoryItem
	err := query.
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", inventoryID, tenantID, false).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DecrementInventory subtracts quantity only when enough stock remains; the
// caller checks RowsAffected to detect a lost race.
func (r *repository) DecrementInventory(ctx context.Context, tenantID, inventoryID uuid.UUID, quantity int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND tenant_id = ? AND quantity >= ?", inventoryID, tenantID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	return res.RowsAffected, res.Error
}
