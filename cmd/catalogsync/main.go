// Command catalogsync は取引所の銘柄一覧からローカルスナップショットを再生成します。
//
// 引数なしでは1回だけ更新して終了し、-cron を指定すると終了シグナルまで定期実行します。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"crypto_backend/internal/app/di"
	"crypto_backend/internal/platform/config"
	"crypto_backend/internal/platform/externalapi/binance"
	"crypto_backend/internal/platform/scheduler"
)

// oneShotTimeout は1回実行時の上限時間です。
const oneShotTimeout = 2 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cronSpec := flag.String("cron", cfg.Catalog.SyncCron, "cron schedule; empty runs once and exits")
	flag.Parse()
	cfg.Catalog.SyncCron = *cronSpec
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	catalog := di.NewCatalog(cfg, di.NewMarket(binance.LoadConfig()))

	if cfg.Catalog.SyncCron == "" {
		ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
		defer cancel()
		if err := catalog.Refresh(ctx); err != nil {
			slog.Error("catalog sync failed", "snapshot", cfg.Catalog.SnapshotPath, "error", err)
			os.Exit(1)
		}
		slog.Info("catalog sync ok", "snapshot", cfg.Catalog.SnapshotPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(ctx)
	if err := sched.Add(cfg.Catalog.SyncCron, "catalog-sync", catalog.Refresh); err != nil {
		slog.Error("failed to schedule catalog sync", "error", err)
		os.Exit(1)
	}
	// 起動直後にも1回更新する
	if err := sched.RunNow("catalog-sync", catalog.Refresh); err != nil {
		slog.Warn("initial catalog sync failed", "error", err)
	}
	sched.Start()
	slog.Info("catalog sync scheduled", "cron", cfg.Catalog.SyncCron)

	<-ctx.Done()
	sched.Stop()
}
