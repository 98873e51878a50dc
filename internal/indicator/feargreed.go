package indicator

import (
	"btcpulse/internal/domain"
	"btcpulse/internal/provider"
)

const fearGreedHistoryLen = 7

// NormalizeFearGreed reduces the daily index series (most recent first) to the
// dashboard record. Deltas fall back to 0 when the series is too short.
func NormalizeFearGreed(points []provider.FearGreedPoint) *domain.FearGreed {
	if len(points) == 0 {
		return nil
	}

	value := points[0].Value
	record := &domain.FearGreed{
		Value:          value,
		Classification: points[0].Classification,
		Signal:         fearGreedSignal(value),
	}

	if len(points) > 1 {
		record.Change24h = value - points[1].Value
	}
	if len(points) > 7 {
		record.Change7d = value - points[7].Value
	}
	if len(points) > 30 {
		record.Change30d = value - points[30].Value
	}

	n := min(fearGreedHistoryLen, len(points))
	record.History = make([]int, n)
	for i := 0; i < n; i++ {
		record.History[i] = points[i].Value
	}

	return record
}

func fearGreedSignal(value int) string {
	switch {
	case value <= 25:
		return domain.SignalBullish
	case value >= 65:
		return domain.SignalBearish
	default:
		return domain.SignalNeutral
	}
}
