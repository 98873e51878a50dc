package narrative

import (
	"fmt"
	"strings"

	"btcpulse/internal/domain"
)

// Template builds the deterministic story used whenever the model path is
// unavailable. Fragments are fixed; only the numbers vary.
func Template(set domain.IndicatorSet, agg domain.AggregateSignal) string {
	var parts []string

	if fg := set.FearGreed; fg != nil {
		switch {
		case fg.Value <= 15:
			parts = append(parts, fmt.Sprintf("The market is gripped by extreme fear (index at %d), the kind of capitulation that has historically marked local bottoms.", fg.Value))
		case fg.Value <= 25:
			parts = append(parts, fmt.Sprintf("Sentiment sits in fear territory (index at %d); weak hands have mostly sold.", fg.Value))
		case fg.Value >= 80:
			parts = append(parts, fmt.Sprintf("Sentiment is euphoric (index at %d), a level that has repeatedly preceded sharp pullbacks.", fg.Value))
		case fg.Value >= 65:
			parts = append(parts, fmt.Sprintf("Greed is creeping in (index at %d); chasing strength here carries risk.", fg.Value))
		default:
			parts = append(parts, fmt.Sprintf("Sentiment is balanced (index at %d) with no crowd extreme either way.", fg.Value))
		}
	}

	if cot := set.COT; cot != nil && cot.HedgeFunds.ShortPct > 55 {
		parts = append(parts, fmt.Sprintf("Hedge funds hold %.0f%% of their futures book short, leaving plenty of fuel for a squeeze if price pushes higher.", cot.HedgeFunds.ShortPct))
	}

	if etf := set.ETFFlows; etf != nil {
		switch {
		case etf.DailyNetM >= 50:
			parts = append(parts, fmt.Sprintf("Spot ETFs pulled in $%.0fM on the day, a sign institutional demand is still there.", etf.DailyNetM))
		case etf.DailyNetM <= -50:
			parts = append(parts, fmt.Sprintf("Spot ETFs bled $%.0fM on the day, institutional money is stepping back.", -etf.DailyNetM))
		}
	}

	switch {
	case strings.Contains(agg.Label, "accumulation"):
		parts = append(parts, "Taken together the indicators point to accumulation: patient buyers are absorbing supply.")
	case strings.Contains(agg.Label, "distribution"):
		parts = append(parts, "Taken together the indicators point to distribution: strength is being sold into.")
	default:
		parts = append(parts, "Taken together the indicators are mixed; no side has control right now.")
	}

	return strings.Join(parts, " ")
}
