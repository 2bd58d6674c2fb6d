package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupNotificationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	notificationHandler := handler.GetNotificationHandler()

	notifications := e.Group("/v1/notifications")
	notifications.Use(authMiddleware.Authenticate)
	notifications.GET("", notificationHandler.ListNotifications)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/read-all", notificationHandler.MarkAllRead)
	notifications.DELETE("/:id", notificationHandler.DeleteNotification)
	notifications.DELETE("", notificationHandler.ClearNotifications)
}
