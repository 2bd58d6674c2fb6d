package router

import (
	"gearswap/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()

	e.GET("/health", healthHandler.CheckHealth)
}
