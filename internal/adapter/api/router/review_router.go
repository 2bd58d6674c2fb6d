package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	e.GET("/v1/users/:id/reviews", reviewHandler.ListUserReviews)

	reviews := e.Group("/v1/reviews")
	reviews.Use(authMiddleware.Authenticate)
	reviews.POST("", reviewHandler.CreateReview)
}
