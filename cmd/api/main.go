// @title Quiz Forge API
// @version 1.0
// @description Generates cloze and multiple-choice quizzes from uploaded documents.
// @host localhost:8090
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/quizgen"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	_ "quiz-forge/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	generator, err := quizgen.NewGenerator(quizgen.OptionsFromConfig(cfg.Generation), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}

	// Redis is optional; without it quizzes are returned but not stored.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
		}
	}

	quizCacheService := service.NewQuizCacheService(
		cacheAdapter,
		cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Quiz, 24*time.Hour),
		cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Digest, time.Hour),
	)
	quizService := service.NewQuizService(generator, quizCacheService, "")
	quizHandler := handler.NewQuizHandler(quizService)
	validationMiddleware := middleware.NewValidationMiddleware(
		validation.NewValidator(cfg.Generation.MaxQuestions),
		cfg.Generation.NumQuestions,
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app, quizHandler, validationMiddleware)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
