package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qommercehub/backoffice-backend/api/middleware"
	"github.com/qommercehub/backoffice-backend/api/responses"
	"github.com/qommercehub/backoffice-backend/api/validators"
	ordersvc "github.com/qommercehub/backoffice-backend/internal/orders"
	"github.com/qommercehub/backoffice-backend/pkg/enums"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
)

type createOrderItemRequest struct {
	InventoryID uuid.UUID       `json:"inventory_id" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	CustomerID uuid.UUID                `json:"customer_id" validate:"required"`
	Notes      *string                  `json:"notes,omitempty"`
	Items      []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func OrderCreate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]ordersvc.ItemInput, 0, len(payload.Items))
		for _, line := range payload.Items {
			items = append(items, ordersvc.ItemInput{
				InventoryID: line.InventoryID,
				Quantity:    line.Quantity,
				Price:       line.Price,
			})
		}

		order, err := svc.Create(r.Context(), tenantID, ordersvc.CreateInput{
			CustomerID: payload.CustomerID,
			Notes:      payload.Notes,
			Items:      items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := ordersvc.ListQuery{Page: page}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.OrderStatus(raw)
			query.Status = &status
		}

		results, meta, err := svc.List(r.Context(), tenantID, query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessPage(w, results, meta)
	}
}

func OrderDetail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), tenantID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrderUpdateStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), tenantID, id, enums.OrderStatus(strings.ToLower(strings.TrimSpace(payload.Status))))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
