package orders

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qommercehub/backoffice-backend/internal/customers"
	"github.com/qommercehub/backoffice-backend/internal/notifications"
	"github.com/qommercehub/backoffice-backend/pkg/db"
	"github.com/qommercehub/backoffice-backend/pkg/db/models"
	"github.com/qommercehub/backoffice-backend/pkg/enums"
	"github.com/qommercehub/backoffice-backend/pkg/errors"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
	"github.com/qommercehub/backoffice-backend/pkg/metrics"
	"github.com/qommercehub/backoffice-backend/pkg/pagination"
)

// Service exposes the order operations used by the API layer.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Order, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Order, pagination.Meta, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	client    *db.Client
	repo      Repository
	customers customers.Repository
	notifier  *notifications.Notifier
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
}

// NewService wires the order service. Notifier, metrics and logger are
// optional; the datastore collaborators are not.
func NewService(
	client *db.Client,
	repo Repository,
	customerRepo customers.Repository,
	notifier *notifications.Notifier,
	orderMetrics *metrics.OrderMetrics,
	logg *logger.Logger,
) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{
		client:    client,
		repo:      repo,
		customers: customerRepo,
		notifier:  notifier,
		metrics:   orderMetrics,
		logg:      logg,
	}, nil
}

// Create runs the whole order transaction: validate, lock each stock row,
// check availability, snapshot prices into order items, decrement stock, and
// commit. Nothing is visible to other transactions until the commit; any
// failure rolls the whole attempt back. The confirmation email fires only
// after the commit and never affects the result.
func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Order, error) {
	start := time.Now()
	order, err := s.createTx(ctx, tenantID, input)
	if err != nil {
		s.metrics.IncFailed(failureReason(err))
		return nil, err
	}
	s.metrics.IncCreated()
	s.metrics.ObserveDuration(time.Since(start))

	if s.logg != nil {
		lctx := s.logg.WithTenantID(ctx, tenantID.String())
		lctx = s.logg.WithOrderID(lctx, order.ID.String())
		s.logg.Info(lctx, "order created")
	}
	s.sendConfirmation(ctx, order)
	return order, nil
}

func validateCreate(input CreateInput) error {
	if input.CustomerID == uuid.Nil {
		return errors.New(errors.CodeValidation, "customer_id is required")
	}
	if len(input.Items) == 0 {
		return errors.New(errors.CodeValidation, "order must contain at least one item")
	}
	for _, line := range input.Items {
		if line.InventoryID == uuid.Nil {
			return errors.New(errors.CodeValidation, "inventory_id is required on every item")
		}
		if line.Quantity <= 0 {
			return errors.New(errors.CodeValidation, "item quantity must be positive")
		}
		if line.Price.IsNegative() {
			return errors.New(errors.CodeValidation, "item price cannot be negative")
		}
	}
	return nil
}

func (s *service) createTx(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*models.Order, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, line := range input.Items {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	var orderID uuid.UUID
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		customerRepo := s.customers.WithTx(tx)

		if _, err := customerRepo.FindByID(ctx, tenantID, input.CustomerID); err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.CodeNotFound, "customer not found")
			}
			return errors.Wrap(errors.CodeDependency, err, "find customer")
		}

		order := &models.Order{
			TenantID:    tenantID,
			CustomerID:  input.CustomerID,
			Status:      enums.OrderStatusPending,
			TotalAmount: total,
			Notes:       input.Notes,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return errors.Wrap(errors.CodeDependency, err, "insert order")
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			stock, err := repo.LockInventoryItem(ctx, tenantID, line.InventoryID)
			if err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New(errors.CodeNotFound, "inventory item not found")
				}
				return errors.Wrap(errors.CodeDependency, err, "lock inventory row")
			}
			if stock.Quantity < line.Quantity {
				return insufficientStock(stock, line.Quantity)
			}

			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				InventoryID: line.InventoryID,
				Quantity:    line.Quantity,
				Price:       line.Price,
			})

			affected, err := repo.DecrementInventory(ctx, tenantID, line.InventoryID, line.Quantity)
			if err != nil {
				return errors.Wrap(errors.CodeDependency, err, "decrement inventory")
			}
			if affected == 0 {
				// Lost a race that the row lock normally prevents; the
				// guarded UPDATE is the backstop.
				return insufficientStock(stock, line.Quantity)
			}
		}

		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return errors.Wrap(errors.CodeDependency, err, "insert order items")
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		if typed := errors.As(err); typed != nil {
			return nil, typed
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "order transaction")
	}

	order, err := s.repo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load created order")
	}
	return order, nil
}

func insufficientStock(stock *models.InventoryItem, requested int) error {
	return errors.New(errors.CodeInsufficientStock, "insufficient stock for "+stock.Name).
		WithDetails(InsufficientStockDetails{
			ItemName:  stock.Name,
			Available: stock.Quantity,
			Requested: requested,
		})
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "order not found")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "find order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]models.Order, pagination.Meta, error) {
	if q.Status != nil && !q.Status.Valid() {
		return nil, pagination.Meta{}, errors.New(errors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"valid_statuses": enums.OrderStatuses()})
	}
	results, total, err := s.repo.List(ctx, tenantID, q)
	if err != nil {
		return nil, pagination.Meta{}, errors.Wrap(errors.CodeDependency, err, "list orders")
	}
	return results, pagination.MetaFor(q.Page, total), nil
}

// UpdateStatus moves the order to any valid status. Cancelling does not
// restock: the decrement at creation time is permanent, and back-office staff
// restock manually if the goods actually come back.
func (s *service) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, errors.New(errors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"valid_statuses": enums.OrderStatuses()})
	}

	var oldStatus enums.OrderStatus
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.FindByID(ctx, tenantID, id)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New(errors.CodeNotFound, "order not found")
			}
			return errors.Wrap(errors.CodeDependency, err, "find order")
		}
		oldStatus = current.Status

		affected, err := repo.UpdateStatus(ctx, tenantID, id, status)
		if err != nil {
			return errors.Wrap(errors.CodeDependency, err, "update order status")
		}
		if affected == 0 {
			return errors.New(errors.CodeNotFound, "order not found")
		}
		return nil
	})
	if err != nil {
		if typed := errors.As(err); typed != nil {
			return nil, typed
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "status transaction")
	}

	order, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "load updated order")
	}

	if oldStatus != order.Status {
		s.sendStatusChange(ctx, order, oldStatus)
	}
	return order, nil
}

func (s *service) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.notifier == nil || order.Customer == nil {
		return
	}
	lines := make([]notifications.ItemLine, 0, len(order.Items))
	for _, item := range order.Items {
		line := notifications.ItemLine{
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		if item.Inventory != nil {
			line.ProductName = item.Inventory.Name
			line.SKU = item.Inventory.SKU
		}
		lines = append(lines, line)
	}
	s.notifier.OrderConfirmation(ctx, notifications.OrderConfirmation{
		OrderID:       order.ID,
		TenantID:      order.TenantID,
		CustomerName:  order.Customer.Name,
		CustomerEmail: order.Customer.Email,
		Total:         order.TotalAmount,
		Items:         lines,
	})
}

func (s *service) sendStatusChange(ctx context.Context, order *models.Order, oldStatus enums.OrderStatus) {
	if s.notifier == nil || order.Customer == nil {
		return
	}
	s.notifier.OrderStatusChange(ctx, notifications.StatusChange{
		OrderID:       order.ID,
		TenantID:      order.TenantID,
		CustomerName:  order.Customer.Name,
		CustomerEmail: order.Customer.Email,
		OldStatus:     oldStatus,
		NewStatus:     order.Status,
	})
}

func failureReason(err error) string {
	typed := errors.As(err)
	if typed == nil {
		return metrics.ReasonDatastore
	}
	switch typed.Code() {
	case errors.CodeValidation:
		return metrics.ReasonValidation
	case errors.CodeNotFound:
		return metrics.ReasonNotFound
	case errors.CodeInsufficientStock:
		return metrics.ReasonInsufficientStock
	default:
		return metrics.ReasonDatastore
	}
}
