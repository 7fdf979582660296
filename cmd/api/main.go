package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"worldmart/internal/adapter/api"
	"worldmart/internal/adapter/api/handler"
	apimiddleware "worldmart/internal/adapter/api/middleware"
	"worldmart/internal/adapter/api/router"
	"worldmart/internal/adapter/repository"
	"worldmart/internal/cache"
	"worldmart/internal/infrastructure/ratelimit"
	"worldmart/internal/infrastructure/websocket"
	"worldmart/internal/usecase"
	"worldmart/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Try to get service account from environment variable (for production)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)

	conversationCache, err := cache.New(cfg.CacheSize)
	if err != nil {
		log.Fatalf("Failed to initialize conversation cache: %v", err)
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, productRepo, profileRepo, conversationCache, wsManager, rateLimiter)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, profileRepo)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, productRepo)
	profileUseCase := usecase.NewProfileUseCase(profileRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, router.Handlers{
		Conversation: handler.NewConversationHandler(conversationUseCase),
		Product:      handler.NewProductHandler(productUseCase),
		Favorite:     handler.NewFavoriteHandler(favoriteUseCase),
		Profile:      handler.NewProfileHandler(profileUseCase),
		WebSocket:    handler.NewWebSocketHandler(wsManager, authMiddleware),
		Health:       handler.NewHealthHandler(),
	}, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
