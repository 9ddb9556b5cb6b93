package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qommercehub/backoffice-backend/pkg/db/models"
	"github.com/qommercehub/backoffice-backend/pkg/pagination"
)

// ListQuery carries the listing filters from the API surface.
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      pagination.Params
}

// Repository is the tenant-scoped persistence surface for inventory rows.
// Listing reads are unlocked snapshots; the authoritative stock check happens
// under the row lock inside the order transaction, never here.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.InventoryItem) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.InventoryItem, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, updates map[string]any) (int64, error)
	SetDeleted(ctx context.Context, tenantID, id uuid.UUID, deleted bool) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", id, tenantID, false).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// sortColumns whitelists what callers may order by.
var sortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"quantity":   "quantity",
	"price":      "price",
	"created_at": "created_at",
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.InventoryItem, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("tenant_id = ? AND is_deleted = ?", tenantID, false)

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.SortOrder, "asc") {
		direction = "ASC"
	}

	page := q.Page.Normalize()
	var items []models.InventoryItem
	err := base.
		Order(column + " " + direction).
		Limit(page.Limit).
		Offset(q.Page.Offset()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repository) Update(ctx context.Context, tenantID, id uuid.UUID, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", id, tenantID, false).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) SetDeleted(ctx context.Context, tenantID, id uuid.UUID, deleted bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", id, tenantID, !deleted).
		Update("is_deleted", deleted)
	return res.RowsAffected, res.Error
}
