package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"gearswap/internal/adapter/api"
	"gearswap/internal/adapter/api/handler"
	apimiddleware "gearswap/internal/adapter/api/middleware"
	"gearswap/internal/adapter/api/router"
	"gearswap/internal/adapter/repository"
	"gearswap/internal/domain/service"
	"gearswap/internal/infrastructure/firebase"
	"gearswap/internal/infrastructure/mailer"
	"gearswap/internal/infrastructure/ratelimit"
	"gearswap/internal/infrastructure/sms"
	"gearswap/internal/infrastructure/websocket"
	"gearswap/internal/usecase"
	"gearswap/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	vehicleRepo := repository.NewFirestoreVehicleRepository(firestoreClient)
	partRepo := repository.NewFirestorePartRepository(firestoreClient)
	swapRepo := repository.NewFirestoreSwapRepository(firestoreClient)
	paymentRepo := repository.NewFirestorePaymentRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	reportRepo := repository.NewFirestoreReportRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)
	firebaseRestClient := firebase.NewFirebaseRestClient(cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	emailSender, err := mailer.NewSMTPSender(cfg)
	if err != nil {
		log.Printf("Email sending disabled: %v", err)
	}
	smsSender := sms.NewHTTPSMSSender(cfg)

	rateLimiter := ratelimit.NewRateLimiter()
	go func() {
		for range time.Tick(10 * time.Minute) {
			rateLimiter.Cleanup(30 * time.Minute)
		}
	}()

	paymentGateway := service.NewPaystackPaymentService(cfg.PaystackSecretKey)

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, wsManager, emailSender, smsSender)
	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, firebaseRestClient)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	vehicleUseCase := usecase.NewVehicleUseCase(vehicleRepo, userRepo, notificationUseCase)
	partUseCase := usecase.NewPartUseCase(partRepo, userRepo, notificationUseCase)
	swapUseCase := usecase.NewSwapUseCase(swapRepo, vehicleRepo, partRepo, userRepo, notificationUseCase)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, userRepo, vehicleRepo, partRepo, paymentGateway, notificationUseCase, cfg.PaymentCallback)
	reportUseCase := usecase.NewReportUseCase(reportRepo, userRepo, vehicleRepo, partRepo, swapRepo, reviewRepo, notificationUseCase)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, swapRepo, userRepo)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, vehicleRepo, partRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, notificationUseCase)

	handler.Setup(
		authUseCase,
		userUseCase,
		vehicleUseCase,
		partUseCase,
		swapUseCase,
		paymentUseCase,
		notificationUseCase,
		reportUseCase,
		reviewUseCase,
		favoriteUseCase,
		chatUseCase,
	)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(rateLimiter)

	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
