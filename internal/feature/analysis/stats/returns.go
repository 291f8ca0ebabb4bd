// Package stats holds the numerical core of the analysis pipeline: return series, volatility
// moments and the weighted price density. Everything here is pure and safe for concurrent use.
package stats

import (
	"fmt"
	"math"
	"time"

	"crypto_backend/internal/feature/analysis/domain"
	"crypto_backend/internal/feature/analysis/domain/entity"
	candleentity "crypto_backend/internal/feature/candles/domain/entity"
)

// minReturns is the smallest return series the volatility statistics accept.
const minReturns = 2

// dailyResampled lists the intraday intervals whose closes are collapsed to one value per
// UTC calendar day before returns are taken.
var dailyResampled = map[candleentity.Interval]bool{
	candleentity.Interval1m:  true,
	candleentity.Interval3m:  true,
	candleentity.Interval5m:  true,
	candleentity.Interval15m: true,
	candleentity.Interval30m: true,
	candleentity.Interval1h:  true,
	candleentity.Interval4h:  true,
}

// PeriodFor reports the cadence BuildReturns will use for interval.
func PeriodFor(interval candleentity.Interval) entity.PeriodLabel {
	if interval == candleentity.Interval1d || dailyResampled[interval] {
		return entity.PeriodDaily
	}
	return entity.PeriodNative
}

type observation struct {
	t     time.Time
	close float64
}

// BuildReturns converts a candle series into simple returns close[t]/close[t-1] - 1.
//
// 1d series are used as-is; the intraday intervals in dailyResampled are first reduced to
// the last close of each UTC day (days without candles are skipped, never filled); every
// other interval keeps its native granularity. Closes that are not finite and positive are
// ignored. Fewer than two resulting returns is ErrInsufficientData.
func BuildReturns(series candleentity.Series, interval candleentity.Interval) (entity.ReturnSeries, entity.PeriodLabel, error) {
	period := PeriodFor(interval)

	obs := make([]observation, 0, len(series.Candles))
	for _, c := range series.Candles {
		if !validPrice(c.Close) {
			continue
		}
		obs = append(obs, observation{t: c.OpenTime.UTC(), close: c.Close})
	}
	if dailyResampled[interval] {
		obs = lastPerDay(obs)
	}

	points := make([]entity.ReturnPoint, 0, len(obs))
	for i := 1; i < len(obs); i++ {
		points = append(points, entity.ReturnPoint{
			Time:  obs[i].t,
			Value: obs[i].close/obs[i-1].close - 1,
		})
	}
	if len(points) < minReturns {
		return entity.ReturnSeries{}, period, fmt.Errorf("%w: %d return(s) from %d candle(s) at %s, need %d",
			domain.ErrInsufficientData, len(points), len(series.Candles), interval, minReturns)
	}
	return entity.ReturnSeries{Points: points, Period: period}, period, nil
}

// lastPerDay keeps the last observation of each UTC calendar day, stamped at midnight.
// obs must be in ascending time order.
func lastPerDay(obs []observation) []observation {
	out := make([]observation, 0, len(obs))
	for _, o := range obs {
		day := time.Date(o.t.Year(), o.t.Month(), o.t.Day(), 0, 0, 0, 0, time.UTC)
		if n := len(out); n > 0 && out[n-1].t.Equal(day) {
			out[n-1].close = o.close
			continue
		}
		out = append(out, observation{t: day, close: o.close})
	}
	return out
}

func validPrice(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
