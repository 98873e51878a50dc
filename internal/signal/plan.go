package signal

import "btcpulse/internal/domain"

// DerivePlan turns the aggregate and price levels into an actionable zone.
// Returns nil without price data; the fear/greed record only drives the
// horizon and may be nil.
func DerivePlan(agg domain.AggregateSignal, levels *domain.PriceLevels, fg *domain.FearGreed) *domain.TradingPlan {
	if levels == nil {
		return nil
	}

	cls := Classify(agg.NetScore)

	plan := &domain.TradingPlan{
		Bias: domain.PlanBias{
			Direction: cls.Direction,
			Strength:  cls.Strength,
		},
		Horizon: planHorizon(fg),
		Levels:  planLevels(cls.Direction, levels),
		Factors: planFactors(agg.Signals),
		Risk:    planRisk(cls.Strength),
	}

	return plan
}

func planHorizon(fg *domain.FearGreed) string {
	if fg != nil && (fg.Value <= 20 || fg.Value >= 80) {
		return "24-72h"
	}
	return "1-2 weeks"
}

func planRisk(strength string) string {
	if strength == "strong" {
		return "3-5% of portfolio"
	}
	return "1-2% of portfolio"
}

// planLevels maps the normalized support/resistance arrays onto an entry
// zone, an invalidation level and targets. No level is recomputed here.
func planLevels(direction string, levels *domain.PriceLevels) domain.PlanLevels {
	switch direction {
	case "long":
		out := domain.PlanLevels{
			EntryHigh:    levels.Price,
			Invalidation: levels.SwingLow,
			Targets:      levels.Resistances,
		}
		if len(levels.Supports) > 0 {
			out.EntryLow = levels.Supports[0]
		} else {
			out.EntryLow = levels.WeekLow
		}
		return out
	case "short":
		out := domain.PlanLevels{
			EntryLow:     levels.Price,
			Invalidation: levels.SwingHigh,
			Targets:      levels.Supports,
		}
		if len(levels.Resistances) > 0 {
			out.EntryHigh = levels.Resistances[0]
		} else {
			out.EntryHigh = levels.WeekHigh
		}
		return out
	default:
		return domain.PlanLevels{
			EntryLow:     levels.WeekLow,
			EntryHigh:    levels.WeekHigh,
			Invalidation: levels.SwingLow,
			Targets:      levels.Resistances,
		}
	}
}

var factorPriorities = []string{"primary", "secondary", "supporting"}

func planFactors(signals []domain.SignalEntry) []domain.PlanFactor {
	n := min(len(signals), len(factorPriorities))
	factors := make([]domain.PlanFactor, 0, n)
	for i := 0; i < n; i++ {
		factors = append(factors, domain.PlanFactor{
			Priority: factorPriorities[i],
			Type:     signals[i].Type,
			Reason:   signals[i].Reason,
		})
	}
	return factors
}
