package news

import (
	"strings"

	"btcpulse/internal/domain"
)

var (
	bullishTokens = []string{"bull", "breakout", "surge", "rally", "adoption", "inflow", "growth", "buy", "uptrend", "recover", "approval", "etf inflow"}
	bearishTokens = []string{"bear", "dump", "sell-off", "crash", "hack", "lawsuit", "ban", "outflow", "decline", "downtrend", "liquidation", "exploit"}
	majorTokens   = []string{"sec", "etf", "fed", "halving", "blackrock", "treasury", "regulation", "bankrupt"}
)

// HeuristicSentiment derives the deterministic annotation for a headline:
// impact tag, expected price effect and an importance tier 1..3.
func HeuristicSentiment(title, summary string) (impact, priceEffect string, importance int) {
	text := strings.ToLower(strings.TrimSpace(title + " " + summary))
	if text == "" {
		return domain.SignalNeutral, "flat", 1
	}

	bullCount := countMatches(text, bullishTokens)
	bearCount := countMatches(text, bearishTokens)

	switch {
	case bullCount > bearCount:
		impact, priceEffect = domain.SignalBullish, "up"
	case bearCount > bullCount:
		impact, priceEffect = domain.SignalBearish, "down"
	default:
		impact, priceEffect = domain.SignalNeutral, "flat"
	}

	importance = 1
	if bullCount+bearCount >= 2 {
		importance = 2
	}
	if countMatches(text, majorTokens) > 0 {
		importance = 3
	}
	return impact, priceEffect, importance
}

func countMatches(text string, tokens []string) int {
	count := 0
	for _, token := range tokens {
		if strings.Contains(text, token) {
			count++
		}
	}
	return count
}
