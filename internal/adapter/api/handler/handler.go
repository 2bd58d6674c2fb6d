package handler

import (
	"gearswap/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	vehicleHandler      *VehicleHandler
	partHandler         *PartHandler
	swapHandler         *SwapHandler
	paymentHandler      *PaymentHandler
	notificationHandler *NotificationHandler
	reportHandler       *ReportHandler
	reviewHandler       *ReviewHandler
	favoriteHandler     *FavoriteHandler
	chatHandler         *ChatHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	vehicleUseCase *usecase.VehicleUseCase,
	partUseCase *usecase.PartUseCase,
	swapUseCase *usecase.SwapUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	reportUseCase *usecase.ReportUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	chatUseCase *usecase.ChatUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	vehicleHandler = NewVehicleHandler(vehicleUseCase)
	partHandler = NewPartHandler(partUseCase)
	swapHandler = NewSwapHandler(swapUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	reportHandler = NewReportHandler(reportUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetVehicleHandler() *VehicleHandler {
	return vehicleHandler
}

func GetPartHandler() *PartHandler {
	return partHandler
}

func GetSwapHandler() *SwapHandler {
	return swapHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
