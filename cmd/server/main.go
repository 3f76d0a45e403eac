package main

import (
	"chessduel/internal/cache"
	"chessduel/internal/config"
	"chessduel/internal/repository"
	"chessduel/internal/rules"
	"chessduel/internal/service"
	"chessduel/internal/transport/rest"
	"chessduel/internal/transport/ws"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// @title chessduel API
// @version 1.0
// @description Remote two-player chess sessions
// @host localhost:8080
// @BasePath /v1
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store
	gameRepo, playerRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Redis connection
	var rdb *redis.Client
	var gameCache cache.GameCache
	if cfg.RedisURI != "" {
		opts, err := redis.ParseURL(cfg.RedisURI)
		if err != nil {
			return fmt.Errorf("parse REDIS_URI: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		gameCache = cache.NewGameCache(rdb, cfg.GameCacheTTL)
		logger.Info("connected to redis", "addr", opts.Addr)
	} else {
		logger.Warn("REDIS_URI not set, snapshot cache disabled")
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logger)
	defer wsHub.Close()

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret, 0)
	gameSvc := service.NewGameService(gameRepo, playerRepo, gameCache, rules.NewChessOracle(), cfg.ClientURL)
	gameSvc.SetLogger(logger)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.EventRelay {
		// every instance publishes to redis and relays what it hears to its own hub
		bus := cache.NewEventBus(rdb, logger)
		gameSvc.SetBroadcaster(bus)
		g.Go(func() error { return bus.Run(gctx, wsHub) })
	} else {
		gameSvc.SetBroadcaster(wsHub)
	}

	if cfg.AbandonAfter > 0 {
		g.Go(func() error {
			gameSvc.RunAbandonSweeper(gctx, cfg.AbandonAfter, cfg.AbandonSweepInterval)
			return nil
		})
	}

	router := rest.NewRouter(&rest.Container{
		GameService:    gameSvc,
		AuthService:    authSvc,
		WSHub:          wsHub,
		Logger:         logger,
		RequireAuth:    cfg.RequireAuth,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr, "auth_required", cfg.RequireAuth, "event_relay", cfg.EventRelay)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}

// openStore connects to MongoDB, or falls back to process memory when no
// MONGO_URI is configured.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.GameRepo, repository.PlayerRepo, func(), error) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, games are kept in memory")
		return repository.NewMemoryGameRepo(), repository.NewMemoryPlayerRepo(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongodb disconnect failed", "error", err)
		}
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		closeFn()
		return nil, nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureGameIndexes(connectCtx, db); err != nil {
		closeFn()
		return nil, nil, nil, fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("connected to mongodb", "database", cfg.MongoDatabase)

	return repository.NewGameRepo(db), repository.NewPlayerRepo(db), closeFn, nil
}
