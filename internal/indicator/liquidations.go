package indicator

import (
	"time"

	"btcpulse/internal/domain"
)

// NormalizeLiquidations buckets raw force orders into 1h/24h windows relative
// to now. SELL orders close longs, BUY orders close shorts.
func NormalizeLiquidations(orders []domain.ForceOrder, now time.Time) *domain.Liquidations {
	if len(orders) == 0 {
		return nil
	}

	cutoff24h := now.Add(-24 * time.Hour)
	cutoff1h := now.Add(-time.Hour)

	record := &domain.Liquidations{}
	for _, order := range orders {
		if order.Time.Before(cutoff24h) || order.Time.After(now) {
			continue
		}
		value := order.Price * order.Quantity
		record.Count24h++
		switch order.Side {
		case "SELL":
			record.Long24hUSD += value
			if !order.Time.Before(cutoff1h) {
				record.Long1hUSD += value
			}
		case "BUY":
			record.Short24hUSD += value
			if !order.Time.Before(cutoff1h) {
				record.Short1hUSD += value
			}
		}
	}
	record.Total24hUSD = record.Long24hUSD + record.Short24hUSD

	switch {
	case record.Long24hUSD > 2*record.Short24hUSD && record.Long24hUSD > 0:
		record.Signal = domain.SignalLongsRekt
	case record.Short24hUSD > 2*record.Long24hUSD && record.Short24hUSD > 0:
		record.Signal = domain.SignalShortsRekt
	default:
		record.Signal = domain.SentimentBalanced
	}

	switch {
	case record.Total24hUSD >= 200e6:
		record.Intensity = domain.IntensityExtreme
	case record.Total24hUSD >= 100e6:
		record.Intensity = domain.IntensityHigh
	case record.Total24hUSD >= 50e6:
		record.Intensity = domain.IntensityModerate
	default:
		record.Intensity = domain.IntensityLow
	}

	return record
}
