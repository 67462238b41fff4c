package router

import (
	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/billing/backend/internal/infrastructure/logger"
	"github.com/billing/backend/internal/interfaces/http/handler"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the handlers wired into the router
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Invoice  *handler.InvoiceHandler
	System   *handler.SystemHandler
}

// New builds the gin engine with middleware and all routes
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	v1 := engine.Group("/api/v1")

	v1.GET("/health", h.System.Health)
	v1.POST("/auth/login", h.Auth.Login)

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(jwtService))
	{
		authed.GET("/customers", h.Customer.List)
		authed.POST("/customers", h.Customer.Create)
		authed.GET("/customers/:id", h.Customer.Get)
		authed.PUT("/customers/:id", h.Customer.Update)

		authed.GET("/invoices", h.Invoice.List)
		authed.GET("/invoices/:id", h.Invoice.Get)

		authed.GET("/ops/metrics", h.Invoice.Metrics)
	}

	return engine
}
