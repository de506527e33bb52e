package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"io.winapps.chatterbox/internal/audit"
	"io.winapps.chatterbox/internal/auth"
	"io.winapps.chatterbox/internal/config"
	"io.winapps.chatterbox/internal/db"
	firebaseutil "io.winapps.chatterbox/internal/firebase"
	"io.winapps.chatterbox/internal/friends"
	"io.winapps.chatterbox/internal/handlers"
	"io.winapps.chatterbox/internal/logger"
	"io.winapps.chatterbox/internal/realtime"
	"io.winapps.chatterbox/internal/router"
	"io.winapps.chatterbox/internal/users"
)

// backend is the storage and event relay pair selected by STORE_DRIVER.
type backend interface {
	audit.Store
	friends.Notifier
	realtime.Subscriber
}

type redisBackend struct {
	*db.RedisStore
	*realtime.RedisBroker
}

type memoryBackend struct {
	*db.MemoryStore
	*realtime.LocalBroker
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer sugar.Sync()

	ctx := context.Background()

	store, closeStore, err := newBackend(cfg)
	if err != nil {
		sugar.Fatalw("Failed to initialize store", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeStore()

	verifier, err := newVerifier(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("Failed to initialize token verifier", "provider", cfg.Auth.Provider, "error", err)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	directory := users.NewDirectory(store)
	service := friends.NewService(store, directory, store, sugar)
	reader := friends.NewReader(store, directory, sugar)

	r := router.New(router.Deps{
		Verifier:       verifier,
		AuthHandler:    handlers.NewAuthHandler(directory, sugar),
		FriendsHandler: handlers.NewFriendsHandler(service, reader, sugar),
		Gateway:        realtime.NewGateway(store, cfg.CORS.AllowOrigin, sugar),
		Logger:         sugar,
		AllowOrigin:    cfg.CORS.AllowOrigin,
	})

	var scheduler *audit.Scheduler
	if cfg.Audit.Enabled {
		scheduler, err = audit.NewScheduler(cfg.Audit.Schedule, audit.NewAuditor(store, sugar), sugar)
		if err != nil {
			sugar.Fatalw("Failed to schedule friendship audit", "error", err)
		}
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: r,
	}

	go func() {
		sugar.Infow("Server starting", "addr", cfg.HTTP.Addr, "store", cfg.Store.Driver, "auth", cfg.Auth.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Infow("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server forced to shutdown", "error", err)
	}

	sugar.Infow("Server exited")
}

func newBackend(cfg *config.Config) (backend, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		return memoryBackend{db.NewMemoryStore(), realtime.NewLocalBroker()}, func() {}, nil
	}

	client, err := db.InitRedis(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { client.Close() }
	return redisBackend{db.NewRedisStore(client), realtime.NewRedisBroker(client)}, closeFn, nil
}

func newVerifier(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (auth.Verifier, error) {
	if cfg.Auth.Provider == config.AuthProviderJWT {
		logger.Warnw("Using shared-secret JWT authentication; intended for local development")
		return auth.NewJWTVerifier(cfg.Auth.JWTSecret), nil
	}

	app, err := firebaseutil.InitFirebase(ctx, cfg.Firebase)
	if err != nil {
		return nil, err
	}
	return firebaseutil.NewVerifier(ctx, app)
}
