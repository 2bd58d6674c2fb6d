package router

import (
	"time"

	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReportRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	reportHandler := handler.GetReportHandler()

	reports := e.Group("/v1/reports")
	reports.Use(authMiddleware.Authenticate)
	reports.POST("", reportHandler.SubmitReport, rateLimitMiddleware.Limit("report", 5, 5, time.Hour))

	admin := e.Group("/v1/admin/reports")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("", reportHandler.ListReports)
	admin.GET("/:id", reportHandler.GetReport)
	admin.POST("/:id/resolve", reportHandler.ResolveReport)
}
