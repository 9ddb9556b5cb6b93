package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qommercehub/backoffice-backend/api/controllers"
	"github.com/qommercehub/backoffice-backend/api/middleware"
	"github.com/qommercehub/backoffice-backend/internal/customers"
	"github.com/qommercehub/backoffice-backend/internal/inventory"
	"github.com/qommercehub/backoffice-backend/internal/orders"
	"github.com/qommercehub/backoffice-backend/pkg/config"
	"github.com/qommercehub/backoffice-backend/pkg/db"
	"github.com/qommercehub/backoffice-backend/pkg/logger"
	"github.com/qommercehub/backoffice-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	inventoryService inventory.Service,
	customerService customers.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, redisClient, logg))

		r.Post("/auth/logout", controllers.AuthLogout(redisClient, cfg.JWT, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Post("/", controllers.InventoryCreate(inventoryService, logg))
			r.Get("/{itemId}", controllers.InventoryDetail(inventoryService, logg))
			r.Put("/{itemId}", controllers.InventoryUpdate(inventoryService, logg))
			r.Delete("/{itemId}", controllers.InventoryDelete(inventoryService, logg))
			r.Put("/{itemId}/restore", controllers.InventoryRestore(inventoryService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(customerService, logg))
			r.Post("/", controllers.CustomerCreate(customerService, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(customerService, logg))
			r.Put("/{customerId}", controllers.CustomerUpdate(customerService, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(customerService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(orderService, logg))
			r.Post("/", controllers.OrderCreate(orderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
			r.Put("/{orderId}/status", controllers.OrderUpdateStatus(orderService, logg))
		})
	})

	return r
}
