package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupVehicleRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	vehicleHandler := handler.GetVehicleHandler()

	vehicles := e.Group("/v1/vehicles")
	vehicles.GET("", vehicleHandler.ListVehicles)
	vehicles.GET("/search", vehicleHandler.SearchVehicles)
	vehicles.GET("/:id", vehicleHandler.GetVehicle)

	myVehicles := e.Group("/v1/my-vehicles")
	myVehicles.Use(authMiddleware.Authenticate)
	myVehicles.GET("", vehicleHandler.ListMyVehicles)
	myVehicles.POST("", vehicleHandler.CreateVehicle)
	myVehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
	myVehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)

	admin := e.Group("/v1/admin/vehicles")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("/:id/approve", vehicleHandler.ApproveVehicle)
}
