package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	wsHandler *handler.WebSocketHandler,
) {
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupVehicleRouter(e, authMiddleware, adminMiddleware)
	SetupPartRouter(e, authMiddleware, adminMiddleware)
	SetupSwapRouter(e, authMiddleware)
	SetupPaymentRouter(e, authMiddleware, adminMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupReportRouter(e, authMiddleware, adminMiddleware, rateLimitMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupFavoriteRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupWebSocketRouter(e, wsHandler, authMiddleware, rateLimitMiddleware)
	SetupHealthRouter(e)
}
