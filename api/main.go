package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/stocksync/internal/auth"
	"github.com/rogerio-castellano/stocksync/internal/config"
	"github.com/rogerio-castellano/stocksync/internal/db"
	api "github.com/rogerio-castellano/stocksync/internal/http"
	"github.com/rogerio-castellano/stocksync/internal/http/handlers"
	rl "github.com/rogerio-castellano/stocksync/internal/http/rate_limiter"
	"github.com/rogerio-castellano/stocksync/internal/logging"
	"github.com/rogerio-castellano/stocksync/internal/redissvc"
	"github.com/rogerio-castellano/stocksync/internal/repo"
	"go.uber.org/zap"
)

// @title StockSync API
// @version 1.0
// @description Inventory, supplier orders and low-stock alerts with live snapshots.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	flush, err := logging.Init(cfg.Logger)
	if err != nil {
		return fmt.Errorf("could not init logger: %w", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, revocations, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer closeStore()

	handlers.SetStore(store)

	webhookLimiter := rl.NewVisitors(cfg.Webhook.Rate, cfg.Webhook.Burst)
	go webhookLimiter.StartVisitorCleanupLoop(ctx)

	r := api.NewRouter(api.RouterConfig{
		Signer:         auth.NewSigner(cfg.JWTSecret),
		Revocations:    revocations,
		WebhookLimiter: webhookLimiter,
	})

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("shutdown failed", zap.Error(err))
		}
	}()

	zap.S().Infof("Server running on %s (storage: %s, app: %s)", cfg.HTTP.Addr, cfg.Storage.Driver, cfg.AppID)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zap.L().Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.AppConfig) (repo.DocumentStore, auth.Revocations, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		return repo.NewInMemoryDocumentStore(cfg.AppID), auth.NewInMemoryRevocations(), func() {}, nil
	}

	database, err := db.Connect(cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb, err := redissvc.Connect(ctx, cfg.Storage.RedisAddr)
	if err != nil {
		database.Close()
		return nil, nil, nil, err
	}
	closeAll := func() {
		rdb.Close()
		database.Close()
	}

	store := repo.NewPostgresDocumentStore(database, redissvc.NewChangeFeed(rdb, "stocksync:"), cfg.AppID)
	if err := store.EnsureSchema(ctx); err != nil {
		closeAll()
		return nil, nil, nil, err
	}
	return store, auth.NewRedisRevocations(rdb), closeAll, nil
}
