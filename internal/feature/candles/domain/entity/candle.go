// Package entity defines the domain models for the candles feature.
package entity

import "time"

// Candle represents one OHLCV bucket returned by the exchange kline endpoint.
type Candle struct {
	OpenTime    time.Time // Start of the bucket, used as the series key
	CloseTime   time.Time // Last millisecond of the bucket
	Open        float64   // Opening price
	High        float64   // Highest price during the bucket
	Low         float64   // Lowest price during the bucket
	Close       float64   // Closing price
	Volume      float64   // Base asset volume
	QuoteVolume float64   // Quote asset volume
	Trades      int64     // Number of trades
}

// Series is the ordered candle history for one (symbol, interval) pair.
// Candles are ascending by OpenTime and OpenTime values are unique.
type Series struct {
	Symbol   string
	Interval Interval
	Candles  []Candle
}

// Len returns the number of candles in the series.
func (s Series) Len() int { return len(s.Candles) }

// Closes returns the close prices in time order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}

// Volumes returns the base asset volumes in time order.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Volume
	}
	return out
}

// Last returns the most recent candle. ok is false for an empty series.
func (s Series) Last() (c Candle, ok bool) {
	if len(s.Candles) == 0 {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}
