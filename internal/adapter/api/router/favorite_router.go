package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFavoriteRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	favoriteHandler := handler.GetFavoriteHandler()

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)
	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.POST("", favoriteHandler.AddFavorite)
	favorites.DELETE("/:itemType/:itemId", favoriteHandler.RemoveFavorite)
}
