package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"formguard/internal/api"
	"formguard/internal/api/handlers"
	"formguard/internal/llm"
	"formguard/internal/repository"
	"formguard/internal/service"
	"formguard/internal/vectorstore"
	"formguard/pkg/auth"
	"formguard/pkg/config"
	"formguard/pkg/logger"
	"formguard/pkg/postgres"

	"go.uber.org/zap"
)

// @title FormGuard API
// @version 1.0
// @description Retrieval-augmented validation of extracted bank form data

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting FormGuard service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	validationRepo := repository.NewValidationRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	llmClient, err := llm.NewClient(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize GigaChat client", zap.Error(err))
	}
	defer llmClient.Close()

	store := vectorstore.NewStore(llmClient, appLogger)
	retrievalService := service.NewRetrievalService(store, cfg.Index.TopK, appLogger)
	reasonerService := service.NewReasonerService(llmClient, appLogger)
	validationService := service.NewValidationService(
		store, retrievalService, reasonerService, validationRepo, cfg.Index, appLogger,
	)

	authHandler := handlers.NewAuthHandler(authService, appLogger)
	validationHandler := handlers.NewValidationHandler(validationService, validationRepo, store, appLogger)

	app := api.SetupRouter(authHandler, validationHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
