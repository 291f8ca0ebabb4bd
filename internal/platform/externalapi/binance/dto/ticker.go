package dto

// TickerPriceResponse is the body of GET /api/v3/ticker/price?symbol=.
type TickerPriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// APIError is the error object Binance returns instead of the expected payload.
type APIError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
