package indicator

import (
	"btcpulse/internal/domain"
	"btcpulse/internal/provider"
)

const hashPerEH = 1e18

// HashrateTrend classifies the trend from the three percentage changes alone.
// Branch order matters: crashing wins over dropping, rising over stable.
func HashrateTrend(change24h, change7d, changeFromPeak float64) string {
	switch {
	case changeFromPeak < -15:
		return domain.TrendCrashing
	case change24h < -2 && changeFromPeak < -5:
		return domain.TrendDropping
	case change24h > 2 && change7d > 5:
		return domain.TrendRising
	case change7d > 0 && change24h >= -2:
		return domain.TrendStable
	default:
		return domain.TrendFalling
	}
}

// NormalizeHashrate turns the raw sample window (oldest first) into the
// hashrate record. Returns nil when the window is unusable.
func NormalizeHashrate(window *provider.HashrateWindow) *domain.Hashrate {
	if window == nil || len(window.Samples) == 0 || window.Current <= 0 {
		return nil
	}

	current := window.Current
	samples := window.Samples

	peak := samples[0].Hashrate
	for _, s := range samples {
		if s.Hashrate > peak {
			peak = s.Hashrate
		}
	}
	if current > peak {
		peak = current
	}

	change24h := pctChange(sampleAgo(samples, 1), current)
	change7d := pctChange(sampleAgo(samples, 7), current)
	changeFromPeak := pctChange(peak, current)

	trend := HashrateTrend(change24h, change7d, changeFromPeak)

	return &domain.Hashrate{
		CurrentEHs:     current / hashPerEH,
		Change24h:      change24h,
		Change7d:       change7d,
		ChangeFromPeak: changeFromPeak,
		Trend:          trend,
		Signal:         hashrateSignal(trend),
		Interpretation: hashrateInterpretation(trend),
	}
}

// FallbackHashrate is the literal stand-in used when the source is down, so
// the dashboard never renders an empty miner panel.
func FallbackHashrate() *domain.Hashrate {
	return &domain.Hashrate{
		CurrentEHs:     1000,
		Trend:          domain.TrendUnknown,
		Signal:         domain.SignalNeutral,
		Interpretation: "Hashrate source unavailable, showing a nominal network estimate.",
	}
}

func hashrateSignal(trend string) string {
	switch trend {
	case domain.TrendRising:
		return domain.SignalBullish
	case domain.TrendDropping, domain.TrendFalling, domain.TrendCrashing:
		return domain.SignalBearish
	default:
		return domain.SignalNeutral
	}
}

func hashrateInterpretation(trend string) string {
	switch trend {
	case domain.TrendRising:
		return "Miners are expanding capacity, historically a sign of confidence in price."
	case domain.TrendStable:
		return "Network hashrate is steady, miners are holding their positions."
	case domain.TrendFalling:
		return "Hashrate is drifting lower, some miners are going offline."
	case domain.TrendDropping:
		return "Hashrate is dropping fast, weaker miners are capitulating."
	case domain.TrendCrashing:
		return "Hashrate collapse in progress, heavy miner capitulation under way."
	default:
		return "Hashrate trend could not be determined this cycle."
	}
}

// sampleAgo returns the sample value n steps before the last one, or the
// oldest sample when the window is shorter.
func sampleAgo(samples []provider.HashrateSample, n int) float64 {
	idx := len(samples) - 1 - n
	if idx < 0 {
		idx = 0
	}
	return samples[idx].Hashrate
}

func pctChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
