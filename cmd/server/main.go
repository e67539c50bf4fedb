package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/relengar/shopping-list-server/internal/config"
	"github.com/relengar/shopping-list-server/internal/db"
	"github.com/relengar/shopping-list-server/internal/handler"
	"github.com/relengar/shopping-list-server/internal/handler/middleware"
	"github.com/relengar/shopping-list-server/internal/repository/postgres"
	"github.com/relengar/shopping-list-server/internal/service"
	"github.com/relengar/shopping-list-server/pkg/email"
	"github.com/relengar/shopping-list-server/pkg/hash"
	"github.com/relengar/shopping-list-server/pkg/sessionstore"
	"github.com/relengar/shopping-list-server/pkg/token"
	"github.com/relengar/shopping-list-server/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := newLogger(cfg)

	// Initialize database connection
	database, err := initDB(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database connection")
		}
	}()
	logger.Info().Msg("Database connection established")

	// Run schema migration
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := db.Migrate(migrateCtx, database); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database schema")
	}
	logger.Info().Msg("Database schema up to date")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing Redis connection")
		}
	}()
	logger.Info().Msg("Redis connection established")

	// Load RSA keys for session tokens
	privateKey, publicKey, err := loadRSAKeys(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load RSA keys")
	}

	tokenService, err := token.NewService(privateKey, publicKey, cfg.JWT.Expiry, cfg.JWT.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize token service")
	}
	logger.Info().Msg("RSA keys loaded")

	hasher, err := hash.NewHasher(cfg.Auth.Salt)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize password hasher")
	}

	sessions := sessionstore.New(redisClient)

	// Initialize validator
	validate := validator.New()

	// Initialize email sender
	var mail email.Sender = email.Noop{}
	if cfg.Email.Enabled {
		sender, err := email.NewResendSender(email.Config{
			APIKey:    cfg.Email.APIKey,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize email sender, notifications disabled")
		} else {
			mail = sender
			logger.Info().Msg("Email sender initialized (Resend)")
		}
	} else {
		logger.Info().Msg("Email sender disabled (set EMAIL_ENABLED=true to enable)")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(database)
	listRepo := postgres.NewListRepository(database)
	itemRepo := postgres.NewItemRepository(database)
	shareRepo := postgres.NewShareRepository(database)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, sessions, hasher, logger)
	userService := service.NewUserService(userRepo, listRepo)
	listService := service.NewListService(listRepo, shareRepo, userRepo, mail, logger)
	itemService := service.NewItemService(itemRepo, listRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	userHandler := handler.NewUserHandler(authService, userService, validate)
	listHandler := handler.NewListHandler(listService, validate)
	itemHandler := handler.NewItemHandler(itemService, validate)
	sharingHandler := handler.NewSharingHandler(listService, validate)
	healthHandler := handler.NewHealthHandler()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Shopping List Server",
		ErrorHandler: handler.ErrorHandler(logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Global middlewares
	app.Use(middleware.Recovery(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())

	authMiddleware := middleware.Auth(tokenService, sessions)

	handler.SetupRoutes(
		app,
		authHandler,
		userHandler,
		listHandler,
		itemHandler,
		sharingHandler,
		healthHandler,
		authMiddleware,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info().Str("addr", addr).Str("environment", cfg.Server.Environment).Msg("Server starting")
		if err := app.Listen(addr); err != nil {
			logger.Error().Err(err).Msg("Server failed to start")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.Server.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger
}

// initDB connects to PostgreSQL with retry logic and verifies the connection.
func initDB(cfg *config.Config, logger zerolog.Logger) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var database *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		database, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		logger.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).Msg("Failed to connect to database")
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	database.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	database.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	database.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	if err := database.PingContext(ctx); err != nil {
		if closeErr := database.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("Error closing database after ping failure")
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return database, nil
}

// initRedis creates the Redis client and verifies the connection.
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping Redis: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// loadRSAKeys reads the PEM encoded signing key pair from disk.
func loadRSAKeys(cfg *config.Config) ([]byte, []byte, error) {
	privateKey, err := os.ReadFile(cfg.JWT.PrivateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	publicKey, err := os.ReadFile(cfg.JWT.PublicKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	if len(privateKey) == 0 {
		return nil, nil, fmt.Errorf("private key file is empty")
	}
	if len(publicKey) == 0 {
		return nil, nil, fmt.Errorf("public key file is empty")
	}

	return privateKey, publicKey, nil
}
