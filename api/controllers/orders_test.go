package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qommercehub/backoffice-backend/api/responses"
	ordersvc "github.com/qommercehub/backoffice-backend/internal/orders"
	"github.com/qommercehub/backoffice-backend/pkg/db/models"
	"github.com/qommercehub/backoffice-backend/pkg/enums"
	pkgerrors "github.com/qommercehub/backoffice-backend/pkg/errors"
	"github.com/qommercehub/backoffice-backend/pkg/pagination"
)

type stubOrderService struct {
	create       func(ctx context.Context, tenantID uuid.UUID, input ordersvc.CreateInput) (*models.Order, error)
	get          func(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error)
	list         func(ctx context.Context, tenantID uuid.UUID, q ordersvc.ListQuery) ([]models.Order, pagination.Meta, error)
	updateStatus func(ctx context.Context, tenantID, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

func (s *stubOrderService) Create(ctx context.Context, tenantID uuid.UUID, input ordersvc.CreateInput) (*models.Order, error) {
	return s.create(ctx, tenantID, input)
}

func (s *stubOrderService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Order, error) {
	return s.get(ctx, tenantID, id)
}

func (s *stubOrderService) List(ctx context.Context, tenantID uuid.UUID, q ordersvc.ListQuery) ([]models.Order, pagination.Meta, error) {
	return s.list(ctx, tenantID, q)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	return s.updateStatus(ctx, tenantID, id, status)
}

func orderRouter(svc ordersvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/orders", OrderCreate(svc, nil))
	r.Get("/orders", OrderList(svc, nil))
	r.Get("/orders/{orderId}", OrderDetail(svc, nil))
	r.Put("/orders/{orderId}/status", OrderUpdateStatus(svc, nil))
	return r
}

func TestOrderCreateHandler(t *testing.T) {
	customerID := uuid.New()
	inventoryID := uuid.New()
	svc := &stubOrderService{
		create: func(_ context.Context, _ uuid.UUID, input ordersvc.CreateInput) (*models.Order, error) {
			require.Equal(t, customerID, input.CustomerID)
			require.Len(t, input.Items, 1)
			require.Equal(t, inventoryID, input.Items[0].InventoryID)
			require.Equal(t, 2, input.Items[0].Quantity)
			return &models.Order{
				ID:          uuid.New(),
				CustomerID:  input.CustomerID,
				Status:      enums.OrderStatusPending,
				TotalAmount: decimal.NewFromInt(50),
			}, nil
		},
	}

	body := `{"customer_id":"` + customerID.String() + `","items":[{"inventory_id":"` + inventoryID.String() + `","quantity":2,"price":"25.00"}]}`
	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope responses.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	payload := envelope.Data.(map[string]any)
	assert.Equal(t, "pending", payload["status"])
}

func TestOrderCreateHandlerRejectsBadBody(t *testing.T) {
	svc := &stubOrderService{
		create: func(context.Context, uuid.UUID, ordersvc.CreateInput) (*models.Order, error) {
			t.Fatal("service must not be called on invalid payloads")
			return nil, nil
		},
	}

	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"items":[]}`))
	w := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderCreateHandlerInsufficientStock(t *testing.T) {
	svc := &stubOrderService{
		create: func(context.Context, uuid.UUID, ordersvc.CreateInput) (*models.Order, error) {
			return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for Widget").
				WithDetails(ordersvc.InsufficientStockDetails{ItemName: "Widget", Available: 1, Requested: 3})
		},
	}

	body := `{"customer_id":"` + uuid.NewString() + `","items":[{"inventory_id":"` + uuid.NewString() + `","quantity":3,"price":"5.00"}]}`
	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(w, r)

	require.Equal(t, http.StatusConflict, w.Code)
	var envelope responses.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	assert.Equal(t, string(pkgerrors.CodeInsufficientStock), envelope.Error.Code)
	details := envelope.Error.Details.(map[string]any)
	assert.Equal(t, "Widget", details["item_name"])
}

func TestOrderDetailHandlerRejectsBadID(t *testing.T) {
	svc := &stubOrderService{
		get: func(context.Context, uuid.UUID, uuid.UUID) (*models.Order, error) {
			t.Fatal("service must not be called with an invalid id")
			return nil, nil
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	w := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderListHandlerPassesStatusFilter(t *testing.T) {
	svc := &stubOrderService{
		list: func(_ context.Context, _ uuid.UUID, q ordersvc.ListQuery) ([]models.Order, pagination.Meta, error) {
			require.NotNil(t, q.Status)
			assert.Equal(t, enums.OrderStatusCompleted, *q.Status)
			assert.Equal(t, 2, q.Page.Page)
			return []models.Order{}, pagination.MetaFor(q.Page, 0), nil
		},
	}

	r := httptest.NewRequest(http.MethodGet, "/orders?status=completed&page=2&limit=5", nil)
	w := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderUpdateStatusHandler(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{
		updateStatus: func(_ context.Context, _ uuid.UUID, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
			assert.Equal(t, orderID, id)
			assert.Equal(t, enums.OrderStatusCancelled, status)
			return &models.Order{ID: id, Status: status}, nil
		},
	}

	r := httptest.NewRequest(http.MethodPut, "/orders/"+orderID.String()+"/status", strings.NewReader(`{"status":"Cancelled"}`))
	w := httptest.NewRecorder()
	orderRouter(svc).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
