// Package dto defines the wire shapes of the Binance REST responses.
package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// KlineFieldCount is the number of positional fields in one kline tuple.
const KlineFieldCount = 12

// Kline positions inside one tuple.
const (
	KlineOpenTime = iota
	KlineOpen
	KlineHigh
	KlineLow
	KlineClose
	KlineVolume
	KlineCloseTime
	KlineQuoteVolume
	KlineTrades
	KlineTakerBuyBaseVolume
	KlineTakerBuyQuoteVolume
	KlineIgnore
)

// KlineRow is one raw kline tuple. Prices and volumes are JSON strings,
// times and the trade count are JSON integers.
type KlineRow []json.RawMessage

// Int parses the integer field at position i.
func (r KlineRow) Int(i int) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(r[i], &n); err != nil {
		return 0, fmt.Errorf("field %d: %w", i, err)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("field %d: %w", i, err)
	}
	return v, nil
}

// Float parses the text-encoded decimal field at position i.
func (r KlineRow) Float(i int) (float64, error) {
	var s string
	if err := json.Unmarshal(r[i], &s); err != nil {
		return 0, fmt.Errorf("field %d: %w", i, err)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %d: %w", i, err)
	}
	return v, nil
}
