package inventory

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qommercehub/backoffice-backend/pkg/db/models"
	"github.com/qommercehub/backoffice-backend/pkg/errors"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
	"github.com/qommercehub/backoffice-backend/pkg/pagination"
)

// CreateInput is a new inventory row. Price arrives from the back-office
// operator and is stored as given.
type CreateInput struct {
	Name     string
	SKU      string
	Quantity int
	Price    decimal.Decimal
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name     *string
	SKU      *string
	Quantity *int
	Price    *decimal.Decimal
}

// Service exposes the inventory operations used by the API layer.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.InventoryItem, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.InventoryItem, pagination.Meta, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.InventoryItem, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Restore(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the inventory service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.InventoryItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.SKU = strings.TrimSpace(input.SKU)

	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "name is required")
	}
	if input.SKU == "" {
		return nil, errors.New(errors.CodeValidation, "sku is required")
	}
	if input.Quantity < 0 {
		return nil, errors.New(errors.CodeValidation, "quantity cannot be negative")
	}
	if input.Price.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "price cannot be negative")
	}

	item := &models.InventoryItem{
		TenantID: tenantID,
		Name:     input.Name,
		SKU:      input.SKU,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "create inventory item")
	}
	return item, nil
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "inventory item not found")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "find inventory item")
	}
	return item, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.InventoryItem, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, tenantID, q)
	if err != nil {
		return nil, pagination.Meta{}, errors.Wrap(errors.CodeDependency, err, "list inventory")
	}
	return items, pagination.MetaFor(q.Page, total), nil
}

func (s *service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.InventoryItem, error) {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New(errors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, errors.New(errors.CodeValidation, "sku cannot be empty")
		}
		updates["sku"] = sku
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, errors.New(errors.CodeValidation, "quantity cannot be negative")
		}
		updates["quantity"] = *input.Quantity
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, errors.New(errors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if len(updates) == 0 {
		return nil, errors.New(errors.CodeValidation, "no fields to update")
	}

	affected, err := s.repo.Update(ctx, tenantID, id, updates)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "update inventory item")
	}
	if affected == 0 {
		return nil, errors.New(errors.CodeNotFound, "inventory item not found")
	}
	return s.Get(ctx, tenantID, id)
}

func (s *service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	affected, err := s.repo.SetDeleted(ctx, tenantID, id, true)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "delete inventory item")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "inventory item not found")
	}
	return nil
}

func (s *service) Restore(ctx context.Context, tenantID, id uuid.UUID) (*models.InventoryItem, error) {
	affected, err := s.repo.SetDeleted(ctx, tenantID, id, false)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "restore inventory item")
	}
	if affected == 0 {
		return nil, errors.New(errors.CodeNotFound, "inventory item not found")
	}
	return s.Get(ctx, tenantID, id)
}
