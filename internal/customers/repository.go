package customers

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
	Search string
	Page   pagination.Params
}

// Repository is the tenant-scoped persistence surface for customers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Customer, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customer repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Customer, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("tenant_id = ?", tenantID)

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Page.Normalize()
	var customers []models.Customer
	err := base.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(q.Page.Offset()).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *repository) Update(ctx context.Context, tenantID, id uuid.UUID, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Customer{})
	return res.RowsAffected, res.Error
}
