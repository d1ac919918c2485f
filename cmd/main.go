package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/RomanSiu/contacts-api/config"
	"github.com/RomanSiu/contacts-api/internal/handler"
	"github.com/RomanSiu/contacts-api/internal/middleware"
	"github.com/RomanSiu/contacts-api/internal/repository"
	"github.com/RomanSiu/contacts-api/internal/router"
	"github.com/RomanSiu/contacts-api/internal/service"
	"github.com/RomanSiu/contacts-api/pkg/cache"
	"github.com/RomanSiu/contacts-api/pkg/database"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"github.com/RomanSiu/contacts-api/pkg/mail"
	"github.com/RomanSiu/contacts-api/pkg/redis"
	"github.com/RomanSiu/contacts-api/pkg/storage"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	dbConfig := database.DefaultConfig()
	dbConfig.Host = config.Database.Host
	dbConfig.Port = config.Database.Port
	dbConfig.User = config.Database.User
	dbConfig.Password = config.Database.Password
	dbConfig.Database = config.Database.Name
	dbConfig.SSLMode = config.Database.SSLMode

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Session cache backend. Redis is preferred; when disabled the cache
	// falls back to an in-process store so single-node deployments still
	// skip the per-request user query.
	var sessionStore cache.Store
	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.NewClient(redis.Config{
			Addr:         config.RedisAddress(),
			Password:     config.Redis.Password,
			DB:           config.Redis.Database,
			PoolSize:     config.Redis.PoolSize,
			MinIdleConns: config.Redis.MinIdleConns,
			DialTimeout:  config.Redis.DialTimeout,
			ReadTimeout:  config.Redis.ReadTimeout,
			WriteTimeout: config.Redis.WriteTimeout,
		}, logger.GetLogger())
		if err != nil {
			logger.GetLogger().Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		sessionStore = redisClient
		logger.GetLogger().Info("Redis session store initialized",
			zap.String("addr", config.RedisAddress()),
		)
	} else {
		sessionStore = cache.NewMemory()
		logger.GetLogger().Info("Redis disabled, using in-memory session store")
	}

	// Avatar object storage
	avatarStore, err := storage.NewObjectStore(config.Storage)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize object storage", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := avatarStore.EnsureBucket(ctx); err != nil {
		logger.GetLogger().Fatal("Failed to ensure avatar bucket",
			zap.Error(err),
			zap.String("bucket", config.Storage.Bucket),
		)
	}

	// Services
	tokenService := service.NewTokenService(
		config.JWT.Secret,
		config.JWT.AccessTTL,
		config.JWT.RefreshTTL,
		config.JWT.EmailTokenTTL,
	)
	sessionCache := service.NewSessionCache(sessionStore, config.Cache.SessionTTL)
	mailer := mail.NewMailer(config.Mail, config.App.BaseURL)

	authService := service.NewAuthService(tokenService, userRepo, sessionCache, mailer)
	userService := service.NewUserService(userRepo, avatarStore, sessionCache)
	contactService := service.NewContactService(contactRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	contactHandler := handler.NewContactHandler(contactService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := router.NewRouter(
		authHandler,
		userHandler,
		contactHandler,
		healthHandler,

		authMiddleware,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
