package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"crypto_backend/internal/app/di"
	"crypto_backend/internal/app/router"
	analysishandler "crypto_backend/internal/feature/analysis/transport/handler"
	analysisusecase "crypto_backend/internal/feature/analysis/usecase"
	candleshandler "crypto_backend/internal/feature/candles/transport/handler"
	candlesusecase "crypto_backend/internal/feature/candles/usecase"
	symbollisthandler "crypto_backend/internal/feature/symbollist/transport/handler"
	"crypto_backend/internal/platform/config"
	"crypto_backend/internal/platform/externalapi/binance"
	platformhandler "crypto_backend/internal/platform/http/handler"
	platformredis "crypto_backend/internal/platform/redis"
	"crypto_backend/internal/platform/scheduler"
)

// shutdownTimeout は終了シグナル受信後に処理中リクエストを待つ上限です。
const shutdownTimeout = 10 * time.Second

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis（任意）
	var (
		rdb  *redisv9.Client
		ping platformhandler.PingFunc
	)
	if cfg.RedisEnabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, cfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			ping = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	market := di.NewMarket(binance.LoadConfig())
	cachedMarket := di.NewCachedMarket(rdb, market)
	catalog := di.NewCatalog(cfg, market)

	// Usecase
	candlesUC := candlesusecase.NewCandlesUsecase(cachedMarket)
	analysisUC := analysisusecase.NewAnalysisUsecase(candlesUC)

	// スナップショットの定期更新
	if cfg.Catalog.SyncCron != "" {
		sched := scheduler.New(ctx)
		if err := sched.Add(cfg.Catalog.SyncCron, "catalog-sync", catalog.Refresh); err != nil {
			slog.Error("failed to schedule catalog sync", "error", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Handler
	r := router.NewRouter(router.Handlers{
		Health:   platformhandler.NewHealth(ping),
		Symbols:  symbollisthandler.NewSymbolHandler(catalog.Symbols),
		Candles:  candleshandler.NewCandlesHandler(candlesUC),
		Analysis: analysishandler.NewAnalysisHandler(analysisUC),
	}, cfg.HTTP.AllowOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// configPath はCONFIG_PATHが未設定の場合にカレントディレクトリのconfig.yamlを返します。
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
