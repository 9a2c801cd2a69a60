// @title Video Quiz API
// @version 1.0
// @description Resolves video metadata and transcripts and turns them into quizzes.
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"video-quiz/internal/adapter"
	"video-quiz/internal/adapter/generation"
	"video-quiz/internal/cache"
	"video-quiz/internal/config"
	"video-quiz/internal/domain"
	"video-quiz/internal/handler"
	"video-quiz/internal/logger"
	"video-quiz/internal/middleware"
	"video-quiz/internal/resolver"
	"video-quiz/internal/service"
	"video-quiz/internal/smartsort"
	"video-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()
	if cfg.File != "" {
		appLogger.Info("Using config file", zap.String("path", cfg.File))
	}

	// Redis is optional; without an address records are resolved on every request.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			appLogger.Warn("Redis unavailable, media cache disabled", zap.String("address", cfg.Redis.Address), zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
		}
	}

	mediaResolver, err := resolver.NewFromConfig(cfg, cacheAdapter, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create media resolver", zap.Error(err))
	}

	backend, err := generation.NewFromConfig(cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create generation backend", zap.Error(err))
	}

	forwarder := smartsort.NewForwarder(cfg.SmartSort, appLogger)
	if !forwarder.Configured() {
		appLogger.Info("Smart sort service not configured, /api/smartsort will return 503")
	}

	// Initialize services
	quizService := service.NewQuizService(mediaResolver, backend, validation.NewValidator())

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	smartSortHandler := handler.NewSmartSortHandler(forwarder)
	healthHandler := handler.NewHealthHandler(backend, cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
		ExposeHeaders: middleware.RequestIDHeader,
		MaxAge:        86400,
	}))

	handler.RegisterRoutes(app, quizHandler, smartSortHandler, healthHandler)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("generation", backend.Name()))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
