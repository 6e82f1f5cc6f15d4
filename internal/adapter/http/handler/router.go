package handler

import (
	"wager-settlement/internal/adapter/http/middleware"
	"wager-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SettlementSvc  ports.SettlementService
	Normalizer     ports.AmountNormalizer
	TokenSvc       ports.TokenService
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.MaxBodySize(1 << 16)) // 64 KB request body limit

	// Reconcile and admin calls are audited once the response is written.
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.SettlementSvc, deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rules := middleware.DefaultRateLimitRules()
	passThrough := func(c *gin.Context) { c.Next() }
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return passThrough
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	wagerHandler := NewWagerHandler(deps.SettlementSvc)
	wagers := v1.Group("/wagers")
	{
		wagers.POST("", rl("wagers"), wagerHandler.PlaceWager)
		wagers.GET("/:id", rl("balance"), wagerHandler.GetWager)
		wagers.POST("/:id/actions", rl("actions"), wagerHandler.ApplyAction)
		wagers.POST("/:id/cashout", rl("actions"), wagerHandler.CashOut)
		wagers.POST("/:id/reconcile", rl("wagers"), wagerHandler.Reconcile)
	}

	accountHandler := NewAccountHandler(deps.SettlementSvc, deps.Normalizer)
	balance := v1.Group("/balance")
	{
		balance.GET("", accountHandler.GetBalance)
		balance.POST("/refresh", rl("balance"), accountHandler.RefreshBalance)
	}
	mode := v1.Group("/mode")
	{
		mode.GET("", accountHandler.GetMode)
		mode.POST("/reconnect", rl("mode"), accountHandler.Reconnect)
	}

	// Operator routes exist only when a JWT secret is configured.
	if deps.TokenSvc != nil {
		jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
		adminHandler := NewAdminHandler(deps.SettlementSvc, deps.Logger)
		admin := v1.Group("/admin", jwtAuth)
		{
			admin.POST("/wagers/:id/force-end", rl("admin"), adminHandler.ForceEnd)
		}
	}

	return r
}
