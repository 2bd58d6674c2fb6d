package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)
	chats.GET("", chatHandler.ListChats)
	chats.POST("", chatHandler.StartChat)
	chats.GET("/:id/messages", chatHandler.ListMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
}
