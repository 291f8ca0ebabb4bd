package dto

// CandleResponse はローソク足データのレスポンスDTOです。
type CandleResponse struct {
	OpenTime    string  `json:"openTime"`  // RFC3339 (UTC)
	CloseTime   string  `json:"closeTime"` // RFC3339 (UTC)
	Open        float64 `json:"open"`      // 始値
	High        float64 `json:"high"`      // 高値
	Low         float64 `json:"low"`       // 安値
	Close       float64 `json:"close"`     // 終値
	Volume      float64 `json:"volume"`    // 出来高（基軸通貨建て）
	QuoteVolume float64 `json:"quoteVolume"`
	Trades      int64   `json:"trades"`
}
