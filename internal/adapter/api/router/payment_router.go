package router

import (
	"gearswap/internal/adapter/api/handler"
	"gearswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	// Gateway callback, authenticated by signature instead of a user token.
	e.POST("/v1/payments/webhook", paymentHandler.HandleWebhook)

	payments := e.Group("/v1/payments")
	payments.Use(authMiddleware.Authenticate)
	payments.POST("/initialize", paymentHandler.InitializePayment)
	payments.GET("/verify/:reference", paymentHandler.VerifyPayment)
	payments.GET("", paymentHandler.ListPayments)
	payments.GET("/:id", paymentHandler.GetPayment)
	payments.POST("/:id/cancel", paymentHandler.CancelPayment)
	payments.POST("/:id/refund", paymentHandler.RefundPayment)
}
