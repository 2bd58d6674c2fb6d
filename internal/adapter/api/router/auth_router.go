package router

import (
	"gearswap/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
}
