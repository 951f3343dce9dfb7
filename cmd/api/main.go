package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/buildforge/buildforge/docs" // Swagger docs (generated)
	"github.com/buildforge/buildforge/internal/assistant"
	"github.com/buildforge/buildforge/internal/auth"
	"github.com/buildforge/buildforge/internal/codegen"
	"github.com/buildforge/buildforge/internal/component"
	"github.com/buildforge/buildforge/internal/config"
	"github.com/buildforge/buildforge/internal/database"
	"github.com/buildforge/buildforge/internal/deploy"
	httpServer "github.com/buildforge/buildforge/internal/http"
	"github.com/buildforge/buildforge/internal/logging"
	"github.com/buildforge/buildforge/internal/project"
	"github.com/buildforge/buildforge/internal/ratelimit"
	"github.com/buildforge/buildforge/internal/user"
)

// @title           BuildForge API
// @version         1.0
// @description     Backend for a drag-and-drop website builder: projects, components, code generation, and mock deployment.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.CreateSchema(context.Background(), db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	projectRepo := project.NewRepository(db)
	componentRepo := component.NewRepository(db)

	// Initialize rate limiter
	rateLimiter := ratelimit.NewLimiter(redisClient)

	// Initialize PASETO service
	pasetoService, err := auth.NewPasetoService(cfg.Auth.PasetoKey)
	if err != nil {
		return fmt.Errorf("failed to initialize PASETO service: %w", err)
	}

	// Initialize auth service
	authService := auth.NewService(userRepo, pasetoService, cfg.Auth.AccessTokenDuration)

	// Initialize code generator
	generator, err := codegen.NewGenerator()
	if err != nil {
		return fmt.Errorf("failed to initialize code generator: %w", err)
	}
	codegenCache := codegen.NewCache(redisClient)

	// Initialize HTTP handlers
	handlers := httpServer.Handlers{
		Auth:      auth.NewHandler(authService, rateLimiter, logger),
		Project:   project.NewHandler(projectRepo, logger),
		Component: component.NewHandler(componentRepo, logger),
		Codegen:   codegen.NewHandler(projectRepo, componentRepo, generator, codegenCache, logger),
		Deploy:    deploy.NewHandler(projectRepo, logger),
		Assistant: assistant.NewHandler(logger),
	}
	authMiddleware := auth.NewMiddleware(pasetoService)

	// Initialize router
	router := httpServer.NewRouter(cfg, handlers, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received shutdown signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
