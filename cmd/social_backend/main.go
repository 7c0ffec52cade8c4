package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/social_media_app/internal/adapters/database/memory"
	mongorepo "github.com/SscSPs/social_media_app/internal/adapters/database/mongo"
	"github.com/SscSPs/social_media_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/social_media_app/internal/adapters/notification"
	portsrepo "github.com/SscSPs/social_media_app/internal/core/ports/repositories"
	"github.com/SscSPs/social_media_app/internal/core/services"
	"github.com/SscSPs/social_media_app/internal/handlers"
	"github.com/SscSPs/social_media_app/internal/metrics"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/platform/config"
	"github.com/SscSPs/social_media_app/internal/utils"
	"github.com/SscSPs/social_media_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Social Backend API
// @version 1.0
// @description Accounts, sessions and profiles of the social media backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := setupStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize credential store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.CloseRedisClient(redisClient)
	}

	appMetrics := metrics.New()
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	tracker := services.NewMultiTracker(appMetrics, posthogClient)

	notifier, err := notification.NewFromConfig(cfg)
	if err != nil {
		logger.Error("Failed to initialize notifications", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Email notifications configured", slog.String("provider", cfg.EmailProvider))

	serviceContainer := services.NewServiceContainer(cfg, repos, notifier, tracker)
	authenticator := middleware.NewAuthenticator(serviceContainer.TokenCodec, repos.UserRepo, repos.RefreshTokenRepo)

	authLimiter, err := middleware.NewRateLimiter(cfg.AuthRateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.StoreDriver != config.StoreMongo {
		go services.NewRefreshTokenPurger(repos.RefreshTokenRepo, cfg.RefreshTokenPurgeInterval).Run(ctx)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.MetricsMiddleware(appMetrics))
	if posthogClient.IsInitialized() {
		r.Use(middleware.RequestTrackingMiddleware(posthogClient))
	}

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(appMetrics.Handler()))
	handlers.RegisterRoutes(r, cfg, serviceContainer, authenticator, middleware.RateLimit(authLimiter))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupStore connects the configured credential store and returns its
// repositories with a function releasing the connection.
func setupStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("Using the in-memory store, data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil

	case config.StorePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	default:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		repos, err := mongorepo.NewRepositoryProvider(ctx, client, cfg)
		if err != nil {
			database.CloseMongoClient(context.Background(), client)
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
		}
		logger.Info("MongoDB connection established.", slog.String("database", cfg.DBName))
		return repos, func() { database.CloseMongoClient(context.Background(), client) }, nil
	}
}

// runMigrations applies every pending "up" migration.
func runMigrations(databaseURL, migrationsPath string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
