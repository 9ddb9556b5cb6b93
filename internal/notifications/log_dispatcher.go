package notifications

import (
	"context"

	"github.com/qommercehub/backoffice-backend/pkg/config"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
)

// LogDispatcher records notifications in the structured log instead of
// delivering them. Actual email delivery lives outside this service; this
// default keeps the contract observable in every environment.
type LogDispatcher struct {
	logg *logger.Logger
	from config.NotifyConfig
}

func NewLogDispatcher(logg *logger.Logger, from config.NotifyConfig) *LogDispatcher {
	return &LogDispatcher{logg: logg, from: from}
}

func (d *LogDispatcher) SendOrderConfirmation(ctx context.Context, payload OrderConfirmation) error {
	if d.logg == nil {
		return nil
	}
	ctx = d.logg.WithFields(ctx, map[string]any{
		"from":          d.from.FromAddress,
		"to":            payload.CustomerEmail,
		"order_id":      payload.OrderID.String(),
		"total":         payload.Total.StringFixed(2),
		"item_count":    len(payload.Items),
		"customer_name": payload.CustomerName,
		"tenant_id":     payload.TenantID.String(),
	})
	d.logg.Info(ctx, "order confirmation dispatched")
	return nil
}

func (d *LogDispatcher) SendStatusChange(ctx context.Context, payload StatusChange) error {
	if d.logg == nil {
		return nil
	}
	ctx = d.logg.WithFields(ctx, map[string]any{
		"from":       d.from.FromAddress,
		"to":         payload.CustomerEmail,
		"order_id":   payload.OrderID.String(),
		"old_status": payload.OldStatus.String(),
		"new_status": payload.NewStatus.String(),
	})
	d.logg.Info(ctx, "order status change dispatched")
	return nil
}
