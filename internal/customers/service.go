package customers

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qommercehub/backoffice-backend/pkg/db"
	"github.com/qommercehub/backoffice-backend/pkg/db/models"
	"github.com/qommercehub/backoffice-backend/pkg/errors"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
	"github.com/qommercehub/backoffice-backend/pkg/pagination"
)

// CreateInput is a new customer record.
type CreateInput struct {
	Name    string
	Email   string
	Phone   *string
	Address *string
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Service exposes the customer operations used by the API layer.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Customer, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Customer, pagination.Meta, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Customer, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the customer service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New(errors.CodeValidation, "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errors.New(errors.CodeValidation, "email is invalid")
	}
	return email, nil
}

func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Customer, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, errors.New(errors.CodeValidation, "name is required")
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		TenantID: tenantID,
		Name:     input.Name,
		Email:    email,
		Phone:    input.Phone,
		Address:  input.Address,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		if db.IsUniqueViolation(err, "uq_customers_tenant_email") {
			return nil, errors.New(errors.CodeConflict, "a customer with this email already exists")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "create customer")
	}
	return customer, nil
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "customer not found")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "find customer")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Customer, pagination.Meta, error) {
	customers, total, err := s.repo.List(ctx, tenantID, q)
	if err != nil {
		return nil, pagination.Meta{}, errors.Wrap(errors.CodeDependency, err, "list customers")
	}
	return customers, pagination.MetaFor(q.Page, total), nil
}

func (s *service) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*models.Customer, error) {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New(errors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if len(updates) == 0 {
		return nil, errors.New(errors.CodeValidation, "no fields to update")
	}

	affected, err := s.repo.Update(ctx, tenantID, id, updates)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_customers_tenant_email") {
			return nil, errors.New(errors.CodeConflict, "a customer with this email already exists")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "update customer")
	}
	if affected == 0 {
		return nil, errors.New(errors.CodeNotFound, "customer not found")
	}
	return s.Get(ctx, tenantID, id)
}

func (s *service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return errors.New(errors.CodeConflict, "customer has orders and cannot be deleted")
		}
		return errors.Wrap(errors.CodeDependency, err, "delete customer")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "customer not found")
	}
	return nil
}
