// Package entity defines the domain models for the symbollist feature.
package entity

// Instrument is a tradable exchange pair as stored in the catalog snapshot.
// Symbol is the unique key.
type Instrument struct {
	Symbol     string `json:"symbol"`
	BaseAsset  string `json:"baseAsset"`
	QuoteAsset string `json:"quoteAsset"`
	Status     string `json:"status,omitempty"` // empty when the snapshot does not carry it
}

// StatusTrading is the exchange status of a pair open for trading.
const StatusTrading = "TRADING"
