package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/tradepool/internal/middleware"
	"github.com/guttosm/tradepool/internal/ws"
)

// NewRouter creates a Gin engine with routes configured. It receives the
// handlers with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, RateLimiter).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any) and the event stream (/ws/events).
//   - Configures API v1 routes (/api/v1); admin routes require the token.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in
//     app.InitializeApp().
func NewRouter(handler *Handler, admin *AdminHandler, hub *ws.Hub, adminToken string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if hub != nil {
		router.GET("/ws/events", hub.HandleWS)
	}

	v1 := router.Group("/api/v1")
	{
		trades := v1.Group("/trades")
		{
			trades.POST("", handler.CreateTrade)
			trades.POST("/deposit", handler.CreateAndDeposit)
			trades.GET("/:id", handler.GetTrade)
			trades.POST("/:id/deposit", handler.Deposit)
			trades.POST("/:id/settle", handler.Settle)
			trades.POST("/:id/claim", handler.Claim)
			trades.POST("/:id/withdraw", handler.Withdraw)
		}

		v1.POST("/payoffs/digital", admin.CreateDigitalPayoff)
		v1.POST("/oracles", admin.CreateOracle)
		v1.GET("/accounts/:asset/:holder", admin.GetBalance)

		restricted := v1.Group("", middleware.AdminAuth(adminToken))
		{
			restricted.POST("/accounts/credit", admin.Credit)
			restricted.POST("/admin/pause", admin.Pause)
			restricted.POST("/admin/unpause", admin.Unpause)
		}
	}

	return router
}
