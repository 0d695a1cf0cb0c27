package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/lumigen/lumigen/application/port/outbound"
	"github.com/lumigen/lumigen/application/usecase"
	"github.com/lumigen/lumigen/infrastructure/adapter/postgres"
	"github.com/lumigen/lumigen/infrastructure/config"
	httpserver "github.com/lumigen/lumigen/infrastructure/http"
	"github.com/lumigen/lumigen/infrastructure/http/handler"
	"github.com/lumigen/lumigen/infrastructure/http/middleware"
	"github.com/lumigen/lumigen/infrastructure/service/billing"
	"github.com/lumigen/lumigen/infrastructure/service/enhancer"
	"github.com/lumigen/lumigen/infrastructure/service/imagegen"
	"github.com/lumigen/lumigen/infrastructure/service/jwt"
	"github.com/lumigen/lumigen/infrastructure/service/logger"
	"github.com/lumigen/lumigen/infrastructure/service/password"
	"github.com/lumigen/lumigen/infrastructure/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "lumigen",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	// Repositories
	userRepo := postgres.NewUserRepositoryAdapter(db)
	generationRepo := postgres.NewGenerationRepositoryAdapter(db)

	// Services
	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)

	assetStore, err := storage.NewDiskStore(cfg.AssetDir)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	promptEnhancer := enhancer.NewGeminiEnhancer(cfg.GoogleAPIKey, cfg.GeminiModel, cfg.OutboundTimeout, structuredLogger)

	providers := make([]outbound.ImageProvider, 0, len(cfg.ImageModels))
	for _, model := range cfg.ImageModels {
		providers = append(providers, imagegen.NewOpenAIProvider(cfg.OpenAIAPIKey, model, cfg.ImageSize, cfg.OutboundTimeout))
	}
	orchestrator := imagegen.NewOrchestrator(providers, assetStore, cfg.OutboundTimeout, structuredLogger)

	billingGateway := billing.NewStripeGateway(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.StripePriceID,
		cfg.CheckoutSuccessURL,
		cfg.CheckoutCancelURL,
	)

	// Use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, tokenService, passwordService, structuredLogger, cfg.AccessTokenTTL)
	generationUseCase := usecase.NewGenerationUseCase(userRepo, generationRepo, promptEnhancer, orchestrator, structuredLogger)
	billingUseCase := usecase.NewBillingUseCase(userRepo, billingGateway, structuredLogger)

	// HTTP layer
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:                 cfg.ServerHost,
			Port:                 cfg.ServerPort,
			ReadTimeout:          15 * time.Second,
			WriteTimeout:         60 * time.Second,
			IdleTimeout:          60 * time.Second,
			CORSEnabled:          cfg.CORSEnabled,
			CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
			CORSAllowCredentials: cfg.CORSAllowCredentials,
		},
		handler.NewAuthHandler(authUseCase),
		handler.NewGenerationHandler(generationUseCase),
		handler.NewBillingHandler(billingUseCase),
		handler.NewAssetHandler(assetStore),
		authMiddleware,
		structuredLogger,
	)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			structuredLogger.Error(ctx, "Server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
