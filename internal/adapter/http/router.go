package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"insurance-brokerage/internal/adapter/middleware"
)

type Handlers struct {
	Health   *Handler
	Products *ProductHandler
	Clients  *ClientHandler
	Policies *PolicyHandler
}

// Register mounts every route. The idempotency guard only wraps policy submission.
func Register(e *echo.Echo, h Handlers, rdb *redis.Client, idempTTL time.Duration, log *zap.Logger) {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/products", h.Products.ListProducts)
	e.GET("/products/:product_id", h.Products.GetProduct)
	e.POST("/products", h.Products.CreateProduct)
	e.PUT("/products/:product_id", h.Products.UpdateProduct)

	e.GET("/rules", h.Policies.ListRules)
	e.GET("/rules/:code/defaults", h.Policies.Defaults)

	e.GET("/clients", h.Clients.ListClients)
	e.GET("/clients/:client_id", h.Clients.GetClient)
	e.POST("/clients", h.Clients.CreateClient)

	p := e.Group("/policies")
	p.POST("/quote", h.Policies.Quote)
	p.POST("", h.Policies.Submit, middleware.Idempotency(rdb, idempTTL, log))
	p.GET("/:policy_id", h.Policies.GetPolicy)
	p.POST("/:policy_id/status", h.Policies.Transition)
	p.POST("/:policy_id/reject", h.Policies.Reject)
	p.GET("/:policy_id/rejection", h.Policies.GetRejection)
	p.PUT("/:policy_id/agent", h.Policies.AssignAgent)
	p.DELETE("/:policy_id", h.Policies.DeletePolicy)
}
