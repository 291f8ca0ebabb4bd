package usecase

import (
	"sort"
	"strings"

	"crypto_backend/internal/feature/symbollist/domain/entity"
)

// DefaultQuoteAsset はダッシュボードが既定で一覧表示する決済通貨です。
const DefaultQuoteAsset = "USDT"

// FilterTradableQuote はシンボルにquoteを含み、状態がある場合はTRADINGである銘柄のみを残します。
// 結果は基軸通貨、シンボルの順に並べ替えます。
func FilterTradableQuote(instruments []entity.Instrument, quote string) []entity.Instrument {
	quote = strings.ToUpper(strings.TrimSpace(quote))
	out := make([]entity.Instrument, 0, len(instruments))
	for _, in := range instruments {
		if quote != "" && !strings.Contains(strings.ToUpper(in.Symbol), quote) {
			continue
		}
		if in.Status != "" && !strings.EqualFold(in.Status, entity.StatusTrading) {
			continue
		}
		out = append(out, in)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BaseAsset != out[j].BaseAsset {
			return out[i].BaseAsset < out[j].BaseAsset
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
