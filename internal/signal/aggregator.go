package signal

import (
	"fmt"
	"sort"

	"btcpulse/internal/domain"
)

// Rule type tags, in evaluation order.
const (
	TypeFearGreed       = "fear_greed"
	TypeCOTHedgeFunds   = "cot_hedge_funds"
	TypeCOTInstitutions = "cot_institutions"
	TypeETFDaily        = "etf_daily"
	TypeETFWeekly       = "etf_weekly"
	TypeLongShort       = "long_short"
	TypeFunding         = "funding"
	TypeLiquidations    = "liquidations"
	TypeHashrate        = "hashrate"
	TypeTakerRatio      = "taker_ratio"
)

const defaultMaxSignals = 5

// Options tunes the emitted signal list. The zero value keeps the historical
// behavior: first five triggered rules in evaluation order.
type Options struct {
	MaxSignals   int
	RankByWeight bool
}

type accumulator struct {
	bull    int
	bear    int
	signals []domain.SignalEntry
}

func (a *accumulator) bullish(ruleType string, weight int, reason string) {
	a.bull += weight
	a.signals = append(a.signals, domain.SignalEntry{Type: ruleType, Weight: weight, Reason: reason})
}

func (a *accumulator) bearish(ruleType string, weight int, reason string) {
	a.bear += weight
	a.signals = append(a.signals, domain.SignalEntry{Type: ruleType, Weight: weight, Reason: reason})
}

// Aggregate runs the fixed rule list over whatever indicators are present.
// Absent indicators contribute nothing; rules never observe each other.
func Aggregate(set domain.IndicatorSet, opts Options) domain.AggregateSignal {
	acc := &accumulator{}

	if fg := set.FearGreed; fg != nil {
		switch {
		case fg.Value <= 15:
			acc.bullish(TypeFearGreed, 3, fmt.Sprintf("Extreme fear at %d, historically a strong buy zone", fg.Value))
		case fg.Value <= 25:
			acc.bullish(TypeFearGreed, 2, fmt.Sprintf("Fear at %d, sentiment washed out", fg.Value))
		case fg.Value >= 80:
			acc.bearish(TypeFearGreed, 3, fmt.Sprintf("Extreme greed at %d, euphoria risk", fg.Value))
		case fg.Value >= 65:
			acc.bearish(TypeFearGreed, 2, fmt.Sprintf("Greed at %d, market is running hot", fg.Value))
		}
	}

	if cot := set.COT; cot != nil {
		if cot.HedgeFunds.ShortPct > 55 {
			acc.bullish(TypeCOTHedgeFunds, 2,
				fmt.Sprintf("Hedge funds %.0f%% short, squeeze fuel building", cot.HedgeFunds.ShortPct))
		}
		switch cot.Institutions.Signal {
		case domain.SignalBullish:
			acc.bullish(TypeCOTInstitutions, 1, "Institutions positioned net long")
		case domain.SignalBearish:
			acc.bearish(TypeCOTInstitutions, 1, "Institutions positioned net short")
		}
	}

	if etf := set.ETFFlows; etf != nil {
		switch {
		case etf.DailyNetM >= 50:
			acc.bullish(TypeETFDaily, 1, fmt.Sprintf("ETF daily inflow of $%.0fM", etf.DailyNetM))
		case etf.DailyNetM <= -50:
			acc.bearish(TypeETFDaily, 1, fmt.Sprintf("ETF daily outflow of $%.0fM", -etf.DailyNetM))
		}
		switch {
		case etf.WeeklyNetM >= 500:
			acc.bullish(TypeETFWeekly, 2, fmt.Sprintf("ETF weekly inflow of $%.0fM", etf.WeeklyNetM))
		case etf.WeeklyNetM <= -500:
			acc.bearish(TypeETFWeekly, 2, fmt.Sprintf("ETF weekly outflow of $%.0fM", -etf.WeeklyNetM))
		}
	}

	if ls := set.LongShort; ls != nil {
		switch ls.Signal {
		case domain.SignalSqueezePossible:
			acc.bullish(TypeLongShort, 2,
				fmt.Sprintf("%.0f%% of accounts short, short squeeze possible", ls.ShortPct))
		case domain.SignalDumpPossible:
			acc.bearish(TypeLongShort, 2,
				fmt.Sprintf("%.0f%% of accounts long, crowded longs at risk", ls.LongPct))
		}
	}

	if f := set.Funding; f != nil {
		switch f.Signal {
		case domain.SignalCorrectionLikely:
			acc.bearish(TypeFunding, 2, fmt.Sprintf("Funding at %.3f%%, longs overpaying", f.CurrentPct))
		case domain.SignalBounceLikely:
			acc.bullish(TypeFunding, 2, fmt.Sprintf("Funding at %.3f%%, shorts overpaying", f.CurrentPct))
		default:
			switch f.Sentiment {
			case domain.SentimentOverleveragedLong:
				acc.bearish(TypeFunding, 1, "Longs overleveraged on funding")
			case domain.SentimentOverleveragedShort:
				acc.bullish(TypeFunding, 1, "Shorts overleveraged on funding")
			}
		}
	}

	if liq := set.Liquidations; liq != nil {
		weight := 1
		if liq.Intensity == domain.IntensityExtreme {
			weight = 2
		}
		switch liq.Signal {
		case domain.SignalShortsRekt:
			acc.bullish(TypeLiquidations, weight,
				fmt.Sprintf("$%.0fM in shorts liquidated over 24h", liq.Short24hUSD/1e6))
		case domain.SignalLongsRekt:
			acc.bearish(TypeLiquidations, weight,
				fmt.Sprintf("$%.0fM in longs liquidated over 24h", liq.Long24hUSD/1e6))
		}
	}

	if h := set.Hashrate; h != nil {
		switch {
		case h.Signal == domain.SignalBullish:
			acc.bullish(TypeHashrate, 1, "Hashrate rising, miners confident")
		case h.Trend == domain.TrendCrashing:
			acc.bearish(TypeHashrate, 2, "Hashrate crashing, miner capitulation")
		case h.Signal == domain.SignalBearish:
			acc.bearish(TypeHashrate, 1, "Hashrate declining")
		}
	}

	if ls := set.LongShort; ls != nil {
		switch ls.TakerSignal {
		case domain.SignalBullish:
			acc.bullish(TypeTakerRatio, 1, fmt.Sprintf("Taker buy/sell ratio %.2f, buyers aggressive", ls.TakerRatio))
		case domain.SignalBearish:
			acc.bearish(TypeTakerRatio, 1, fmt.Sprintf("Taker buy/sell ratio %.2f, sellers aggressive", ls.TakerRatio))
		}
	}

	net := acc.bull - acc.bear
	cls := Classify(net)

	return domain.AggregateSignal{
		BullScore: acc.bull,
		BearScore: acc.bear,
		NetScore:  net,
		Signals:   truncateSignals(acc.signals, opts),
		Label:     cls.Label,
		Emoji:     cls.Emoji,
	}
}

func truncateSignals(signals []domain.SignalEntry, opts Options) []domain.SignalEntry {
	maxSignals := opts.MaxSignals
	if maxSignals <= 0 {
		maxSignals = defaultMaxSignals
	}
	if opts.RankByWeight {
		sort.SliceStable(signals, func(i, j int) bool {
			return signals[i].Weight > signals[j].Weight
		})
	}
	if len(signals) > maxSignals {
		signals = signals[:maxSignals]
	}
	if signals == nil {
		signals = []domain.SignalEntry{}
	}
	return signals
}
