package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/LangBridge/internal/cache"
	"github.com/Dias221467/LangBridge/internal/config"
	"github.com/Dias221467/LangBridge/internal/database"
	"github.com/Dias221467/LangBridge/internal/handlers"
	"github.com/Dias221467/LangBridge/internal/repository"
	"github.com/Dias221467/LangBridge/internal/repository/memstore"
	cron "github.com/Dias221467/LangBridge/internal/scheduler"
	"github.com/Dias221467/LangBridge/internal/services"
	jwtutil "github.com/Dias221467/LangBridge/pkg/jwt"
	"github.com/Dias221467/LangBridge/pkg/logger"
	"github.com/Dias221467/LangBridge/pkg/stream"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/rs/cors"
)

type stores struct {
	users         services.UserStore
	requests      services.FriendRequestStore
	notifications services.NotificationStore
	tx            database.Transactor
	health        handlers.Pinger
}

func main() {
	// Load configuration from .env file and environment
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	ctx := context.Background()

	st, closeStore := openStores(ctx, cfg)
	defer closeStore()

	// Optional token revocation
	var blacklist jwtutil.Blacklist
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Log.Fatalf("Redis connection error: %v", err)
		}
		defer client.Close()
		blacklist = cache.NewTokenBlacklist(client)
		logger.Log.Info("Token blacklist enabled")
	} else {
		logger.Log.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	// --- Services ---
	notificationService := services.NewNotificationService(st.notifications, cfg.NotificationTTL)
	userService := services.NewUserService(st.users)
	friendService := services.NewFriendService(st.requests, st.users, st.tx, notificationService)
	matchService := services.NewMatchService(st.users, st.requests)

	// --- Handlers ---
	rt := &handlers.Router{
		Auth:          handlers.NewAuthHandler(userService, cfg, blacklist),
		Friends:       handlers.NewFriendHandler(friendService),
		Users:         handlers.NewUserHandler(matchService),
		Chat:          handlers.NewChatHandler(stream.NewTokenProvider(cfg.StreamAPIKey, cfg.StreamAPISecret)),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Health:        &handlers.HealthHandler{Store: st.health},
		Activity:      userService,
		JWTSecret:     cfg.JWTSecret,
		Blacklist:     blacklist,
	}
	router := rt.Build()

	scheduler, err := cron.StartNotificationCronJobs(notificationService)
	if err != nil {
		logger.Log.Fatalf("Failed to schedule notification cleanup: %v", err)
	}
	defer scheduler.Stop()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(logger.Log),
	)(c.Handler(router))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Forced shutdown: %v", err)
	}
	logger.Log.Info("Server stopped")
}

// openStores selects the storage driver. The returned func releases its resources.
func openStores(ctx context.Context, cfg *config.Config) (stores, func()) {
	if cfg.StorageDriver == "memory" {
		logger.Log.Warn("Using in-memory storage, data will not survive a restart")
		mem := memstore.New()
		return stores{
			users:         mem,
			requests:      mem,
			notifications: mem,
			tx:            mem,
		}, func() {}
	}

	// Connect to MongoDB
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Log.Fatalf("Failed to create indexes: %v", err)
	}

	var tx database.Transactor = database.SequentialTransactor{}
	if cfg.MongoUseTx {
		tx = database.NewMongoTransactor(db)
	} else {
		logger.Log.Warn("MongoDB transactions disabled, accepting a request runs its steps sequentially")
	}

	return stores{
			users:         repository.NewUserRepository(db),
			requests:      repository.NewFriendRepository(db),
			notifications: repository.NewNotificationRepository(db),
			tx:            tx,
			health:        database.Pinger{DB: db},
		}, func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				logger.Log.Errorf("Failed to disconnect from MongoDB: %v", err)
			}
		}
}
