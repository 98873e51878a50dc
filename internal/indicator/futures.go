package indicator

import (
	"btcpulse/internal/domain"
	"btcpulse/internal/provider"
)

// NormalizeLongShort combines account positioning with the taker flow ratio.
// The taker point is optional; without it the taker fields stay neutral/zero.
func NormalizeLongShort(ls *provider.LongShortPoint, taker *provider.TakerRatioPoint) *domain.LongShort {
	if ls == nil {
		return nil
	}

	record := &domain.LongShort{
		LongPct:     ls.LongPct,
		ShortPct:    ls.ShortPct,
		Ratio:       ls.Ratio,
		TakerSignal: domain.SignalNeutral,
	}

	switch {
	case ls.ShortPct > 55:
		record.Signal = domain.SignalSqueezePossible
	case ls.LongPct > 55:
		record.Signal = domain.SignalDumpPossible
	default:
		record.Signal = domain.SignalNeutral
	}

	if taker != nil {
		record.TakerRatio = taker.BuySellRatio
		switch {
		case taker.BuySellRatio > 1.05:
			record.TakerSignal = domain.SignalBullish
		case taker.BuySellRatio < 0.95:
			record.TakerSignal = domain.SignalBearish
		}
	}

	return record
}

// NormalizeOpenInterest compares the newest hourly point against the oldest in
// the window (roughly 24h back) to derive trend and leverage signal.
func NormalizeOpenInterest(points []provider.OpenInterestPoint) *domain.OpenInterest {
	if len(points) == 0 {
		return nil
	}

	latest := points[len(points)-1]
	change := pctChange(points[0].TotalBTC, latest.TotalBTC)

	record := &domain.OpenInterest{
		TotalBTC:  latest.TotalBTC,
		TotalUSD:  latest.TotalUSD,
		Change24h: change,
	}

	switch {
	case change > 2:
		record.Trend = domain.TrendRising
	case change < -2:
		record.Trend = domain.TrendFalling
	default:
		record.Trend = domain.TrendStable
	}

	switch {
	case change > 5:
		record.Signal = domain.SignalHighLeverage
	case change < -5:
		record.Signal = domain.SignalDeleveraging
	default:
		record.Signal = domain.SignalNormal
	}

	return record
}

// NormalizeFunding tags the current rate. Rates are percentages per period, so
// 0.05 means 0.05%.
func NormalizeFunding(point *provider.FundingPoint) *domain.Funding {
	if point == nil {
		return nil
	}

	record := &domain.Funding{
		CurrentPct: point.RatePct,
		MarkPrice:  point.MarkPrice,
		Sentiment:  domain.SentimentBalanced,
		Signal:     domain.SignalNeutral,
	}

	switch {
	case point.RatePct > 0.05:
		record.Sentiment = domain.SentimentOverleveragedLong
	case point.RatePct < -0.05:
		record.Sentiment = domain.SentimentOverleveragedShort
	}

	switch {
	case point.RatePct > 0.1:
		record.Signal = domain.SignalCorrectionLikely
	case point.RatePct < -0.1:
		record.Signal = domain.SignalBounceLikely
	}

	return record
}
