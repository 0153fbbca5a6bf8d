package routes

import (
	"context"
	"net/http"
	"time"

	_ "dealflow_backend/docs"
	"dealflow_backend/internal/handlers"
	"dealflow_backend/internal/logger"
	"dealflow_backend/ws"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	authMW gin.HandlerFunc,
	db *gorm.DB,
) {
	ginRouter.GET("/health", healthHandler(db))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTTP API v1
	api := ginRouter.Group("/api/v1")
	appHandlers.RegisterRoutes(api, authMW)

	// WebSocket
	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(authMW)
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws registered")
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.CtxWithError(ctx, "Health check failed", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
