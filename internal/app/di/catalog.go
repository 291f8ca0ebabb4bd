package di

import (
	"context"
	"errors"

	"crypto_backend/internal/feature/symbollist/adapters"
	"crypto_backend/internal/feature/symbollist/usecase"
	"crypto_backend/internal/platform/config"
)

// Catalog bundles the instrument catalog components that share one snapshot file.
type Catalog struct {
	Snapshot *adapters.SnapshotFile
	Cache    *usecase.CatalogCache
	Symbols  *usecase.SymbolUsecase
	Sync     *usecase.SyncUsecase
}

// NewCatalog wires the snapshot file, its TTL cache and the sync job. listing may be nil
// when the process never refreshes the snapshot.
func NewCatalog(cfg *config.Config, listing usecase.ExchangeListing) *Catalog {
	snapshot := adapters.NewSnapshotFile(cfg.Catalog.SnapshotPath)
	cache := usecase.NewCatalogCache(snapshot, cfg.Catalog.TTL, nil)
	c := &Catalog{
		Snapshot: snapshot,
		Cache:    cache,
		Symbols:  usecase.NewSymbolUsecase(cache, cfg.Catalog.Quote),
	}
	if listing != nil {
		c.Sync = usecase.NewSyncUsecase(listing, snapshot, cfg.Catalog.Quote)
	}
	return c
}

// Refresh rewrites the snapshot from the exchange and drops the cached copy so the next
// read sees the new file.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.Sync == nil {
		return errors.New("catalog sync is not configured")
	}
	if _, err := c.Sync.Refresh(ctx); err != nil {
		return err
	}
	c.Cache.Invalidate()
	return nil
}
