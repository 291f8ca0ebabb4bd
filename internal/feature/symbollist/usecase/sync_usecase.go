package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"crypto_backend/internal/feature/symbollist/domain/entity"
)

// ExchangeListing は取引所に上場中の全銘柄を問い合わせます。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ExchangeListing interface {
	ListInstruments(ctx context.Context) ([]entity.Instrument, error)
}

// SnapshotWriter は保存済みのスナップショットを置き換えます。
type SnapshotWriter interface {
	Save(ctx context.Context, instruments []entity.Instrument) error
}

// SyncUsecase は取引所の銘柄一覧からローカルスナップショットを更新します。
// 保守用のジョブであり、ダッシュボードのリクエスト処理中には実行しません。
type SyncUsecase struct {
	listing ExchangeListing
	store   SnapshotWriter
	quote   string
}

// NewSyncUsecase はSyncUsecaseの新しいインスタンスを生成します。quoteが空の場合はDefaultQuoteAssetを使用します。
func NewSyncUsecase(listing ExchangeListing, store SnapshotWriter, quote string) *SyncUsecase {
	if quote == "" {
		quote = DefaultQuoteAsset
	}
	return &SyncUsecase{listing: listing, store: store, quote: quote}
}

// Refresh は銘柄一覧を取得し、設定された決済通貨の取引可能な銘柄を保存します。
// 保存した銘柄数を返します。
func (u *SyncUsecase) Refresh(ctx context.Context) (int, error) {
	all, err := u.listing.ListInstruments(ctx)
	if err != nil {
		return 0, fmt.Errorf("list instruments: %w", err)
	}

	tradable := FilterTradableQuote(all, u.quote)
	if len(tradable) == 0 {
		// 空のスナップショットで既存ファイルを上書きしない
		return 0, fmt.Errorf("no tradable %s pairs in listing of %d instruments", u.quote, len(all))
	}

	if err := u.store.Save(ctx, tradable); err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}
	slog.Info("instrument snapshot refreshed", "quote", u.quote, "listed", len(all), "saved", len(tradable))
	return len(tradable), nil
}
