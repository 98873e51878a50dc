package signal

import "btcpulse/internal/domain"

// Classification is the single source of truth for mapping a net score to a
// market-state label and a plan bias. Both the aggregator and the plan deriver
// consume it so the breakpoints can never drift apart.
type Classification struct {
	Label     string
	Emoji     string
	Direction string // long | short | hold
	Strength  string // strong | moderate | weak
}

// Classify maps a net score through the ordered breakpoints 5, 2, -2, -5.
// Every integer lands in exactly one bucket.
func Classify(netScore int) Classification {
	switch {
	case netScore >= 5:
		return Classification{
			Label:     domain.LabelStrongAccumulation,
			Emoji:     "🚀",
			Direction: "long",
			Strength:  "strong",
		}
	case netScore >= 2:
		return Classification{
			Label:     domain.LabelAccumulation,
			Emoji:     "📈",
			Direction: "long",
			Strength:  "moderate",
		}
	case netScore <= -5:
		return Classification{
			Label:     domain.LabelStrongDistribution,
			Emoji:     "🔻",
			Direction: "short",
			Strength:  "strong",
		}
	case netScore <= -2:
		return Classification{
			Label:     domain.LabelDistribution,
			Emoji:     "📉",
			Direction: "short",
			Strength:  "moderate",
		}
	default:
		return Classification{
			Label:     domain.LabelNeutral,
			Emoji:     "⚖️",
			Direction: "hold",
			Strength:  "weak",
		}
	}
}
