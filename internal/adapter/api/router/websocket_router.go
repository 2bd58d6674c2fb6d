package router

import (
	"time"

	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket,
		authMiddleware.Authenticate,
		rateLimitMiddleware.Limit("ws_connect", 10, 10, time.Minute),
	)
}
