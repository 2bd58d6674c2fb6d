package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupPartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	partHandler := handler.GetPartHandler()

	parts := e.Group("/v1/parts")
	parts.GET("", partHandler.ListParts)
	parts.GET("/:id", partHandler.GetPart)

	myParts := e.Group("/v1/my-parts")
	myParts.Use(authMiddleware.Authenticate)
	myParts.GET("", partHandler.ListMyParts)
	myParts.POST("", partHandler.CreatePart)
	myParts.PUT("/:id", partHandler.UpdatePart)
	myParts.DELETE("/:id", partHandler.DeletePart)

	admin := e.Group("/v1/admin/parts")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("/:id/approve", partHandler.ApprovePart)
}
