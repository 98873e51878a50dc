package indicator

import (
	"math"
	"sort"

	"btcpulse/internal/domain"
)

const levelRounding = 100

// NormalizeLevels reduces the daily candle window (oldest first, ideally 14
// days) to tradable levels. The weekly range uses the last 7 candles, swings
// use the full window.
func NormalizeLevels(candles []domain.Candle) *domain.PriceLevels {
	if len(candles) == 0 {
		return nil
	}

	price := candles[len(candles)-1].Close

	weekStart := len(candles) - 7
	if weekStart < 0 {
		weekStart = 0
	}
	weekHigh, weekLow := rangeOf(candles[weekStart:])
	swingHigh, swingLow := rangeOf(candles)

	record := &domain.PriceLevels{
		Price:     price,
		WeekHigh:  weekHigh,
		WeekLow:   weekLow,
		SwingHigh: swingHigh,
		SwingLow:  swingLow,
		Supports: pickLevels([]float64{
			weekLow, swingLow, price * 0.97,
		}, price, false),
		Resistances: pickLevels([]float64{
			weekHigh, swingHigh, price * 1.03,
		}, price, true),
	}

	if price >= (weekHigh+weekLow)/2 {
		record.Bias = domain.BiasAboveMid
	} else {
		record.Bias = domain.BiasBelowMid
	}

	return record
}

func rangeOf(candles []domain.Candle) (high, low float64) {
	high = candles[0].High
	low = candles[0].Low
	for _, c := range candles {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}

// pickLevels rounds candidates, drops the ones on the wrong side of price and
// duplicates, and returns up to three sorted nearest-first.
func pickLevels(candidates []float64, price float64, above bool) []float64 {
	seen := make(map[float64]bool, len(candidates))
	out := make([]float64, 0, 3)
	for _, v := range candidates {
		rounded := math.Round(v/levelRounding) * levelRounding
		if rounded <= 0 || seen[rounded] {
			continue
		}
		if above && rounded <= price {
			continue
		}
		if !above && rounded >= price {
			continue
		}
		seen[rounded] = true
		out = append(out, rounded)
	}

	sort.Slice(out, func(i, j int) bool {
		if above {
			return out[i] < out[j]
		}
		return out[i] > out[j]
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}
