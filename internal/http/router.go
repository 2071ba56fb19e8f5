package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/stocksync/internal/auth"
	"github.com/rogerio-castellano/stocksync/internal/http/handlers"
	rl "github.com/rogerio-castellano/stocksync/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/stocksync/docs"
)

type RouterConfig struct {
	Signer         *auth.Signer
	Revocations    auth.Revocations
	WebhookLimiter *rl.Visitors
}

// NewRouter mounts the API. Handlers read their components from the
// handlers package setters, which must be called first.
func NewRouter(cfg RouterConfig) http.Handler {
	handlers.SetSigner(cfg.Signer)
	handlers.SetRevocations(cfg.Revocations)

	r := chi.NewRouter()
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/session/anonymous", handlers.AnonymousSessionHandler)
	r.Post("/session/token", handlers.TokenSessionHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Signer, cfg.Revocations))

		r.Post("/session/signout", handlers.SignOutHandler)

		r.Post("/products", handlers.CreateProductHandler)
		r.Get("/products", handlers.GetProductsHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/{id}/adjust", handlers.AdjustQuantityHandler)

		r.Get("/orders", handlers.GetOrdersHandler)
		r.Post("/orders", handlers.CreateOrderHandler)
		r.Post("/orders/simulate", handlers.SimulateOrderHandler)
		r.With(RateLimitMiddleware(cfg.WebhookLimiter)).Post("/orders/{id}/status", handlers.OrderStatusWebhookHandler)

		r.Get("/notifications", handlers.GetNotificationsHandler)
		r.Post("/notifications/{id}/read", handlers.MarkNotificationReadHandler)

		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

		r.Get("/stream", handlers.StreamHandler)
	})
	return r
}
