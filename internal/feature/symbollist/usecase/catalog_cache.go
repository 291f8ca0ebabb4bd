package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"crypto_backend/internal/feature/symbollist/domain/entity"
)

// DefaultCatalogTTL は読み込んだスナップショットを再読み込みせずに返す期間です。
const DefaultCatalogTTL = time.Hour

// CatalogLoader は銘柄スナップショット全体を読み込みます。
type CatalogLoader interface {
	Load(ctx context.Context) ([]entity.Instrument, error)
}

// CatalogCache は最後に読み込んだスナップショットをttlの間保持します。全リクエストで共有されます。
type CatalogCache struct {
	loader CatalogLoader
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	items     []entity.Instrument
	fetchedAt time.Time
	loaded    bool
}

// NewCatalogCache はloaderを元にCatalogCacheを生成します。
// ttlが0以下の場合はDefaultCatalogTTL、nowがnilの場合はtime.Nowを使用します。
func NewCatalogCache(loader CatalogLoader, ttl time.Duration, now func() time.Time) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	if now == nil {
		now = time.Now
	}
	return &CatalogCache{loader: loader, ttl: ttl, now: now}
}

// Fresh は時刻tにおいてキャッシュをそのまま返せるかを返します。
func (c *CatalogCache) Fresh(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.freshLocked(t)
}

func (c *CatalogCache) freshLocked(t time.Time) bool {
	return c.loaded && t.Sub(c.fetchedAt) < c.ttl
}

// Get はキャッシュ済みのスナップショットを返し、期限切れなら再読み込みします。
// 再読み込みに失敗した場合は以前の内容を変更せず、loaderのエラーを返します。
func (c *CatalogCache) Get(ctx context.Context) ([]entity.Instrument, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.freshLocked(now) {
		return c.items, nil
	}

	items, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.items = items
	c.fetchedAt = now
	c.loaded = true
	slog.Info("instrument catalog loaded", "count", len(items))
	return items, nil
}

// Invalidate は次回のGetで必ず再読み込みさせます。
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}
