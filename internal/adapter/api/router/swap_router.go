package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupSwapRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	swapHandler := handler.GetSwapHandler()

	swaps := e.Group("/v1/swaps")
	swaps.Use(authMiddleware.Authenticate)
	swaps.POST("", swapHandler.ProposeSwap)
	swaps.GET("", swapHandler.ListSwaps)
	swaps.GET("/:id", swapHandler.GetSwap)
	swaps.POST("/:id/accept", swapHandler.AcceptSwap)
	swaps.POST("/:id/reject", swapHandler.RejectSwap)
	swaps.POST("/:id/cancel", swapHandler.CancelSwap)
	swaps.POST("/:id/complete", swapHandler.CompleteSwap)
}
