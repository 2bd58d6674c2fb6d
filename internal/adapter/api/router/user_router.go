package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	e.GET("/v1/users/:id", userHandler.GetPublicProfile)

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", userHandler.GetProfile)
	me.PUT("", userHandler.UpdateProfile)
	me.DELETE("", userHandler.DeactivateAccount)
}
