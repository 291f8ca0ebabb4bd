// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem represents an instrument in the API response.
type SymbolItem struct {
	Symbol     string `json:"symbol"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
	Label      string `json:"label"` // "BTC (BTCUSDT)" for selection widgets
}
