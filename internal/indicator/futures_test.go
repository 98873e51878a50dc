package indicator

import (
	"testing"

	"btcpulse/internal/domain"
	"btcpulse/internal/provider"
)

func TestNormalizeLongShortSignals(t *testing.T) {
	cases := []struct {
		long, short float64
		want        string
	}{
		{40, 60, domain.SignalSqueezePossible},
		{60, 40, domain.SignalDumpPossible},
		{50, 50, domain.SignalNeutral},
		{55, 45, domain.SignalNeutral},
	}
	for _, tc := range cases {
		record := NormalizeLongShort(&provider.LongShortPoint{LongPct: tc.long, ShortPct: tc.short}, nil)
		if record.Signal != tc.want {
			t.Fatalf("long %v short %v: expected %q, got %q", tc.long, tc.short, tc.want, record.Signal)
		}
		if record.TakerSignal != domain.SignalNeutral {
			t.Fatalf("expected neutral taker signal without taker data, got %q", record.TakerSignal)
		}
	}
}

func TestNormalizeLongShortTakerBounds(t *testing.T) {
	cases := []struct {
		ratio float64
		want  string
	}{
		{1.10, domain.SignalBullish},
		{0.90, domain.SignalBearish},
		{1.00, domain.SignalNeutral},
		{1.05, domain.SignalNeutral},
		{0.95, domain.SignalNeutral},
	}
	for _, tc := range cases {
		record := NormalizeLongShort(
			&provider.LongShortPoint{LongPct: 50, ShortPct: 50},
			&provider.TakerRatioPoint{BuySellRatio: tc.ratio},
		)
		if record.TakerSignal != tc.want {
			t.Fatalf("ratio %v: expected %q, got %q", tc.ratio, tc.want, record.TakerSignal)
		}
	}
}

func TestNormalizeLongShortNil(t *testing.T) {
	if NormalizeLongShort(nil, &provider.TakerRatioPoint{BuySellRatio: 2}) != nil {
		t.Fatal("expected nil without positioning data")
	}
}

func TestNormalizeOpenInterest(t *testing.T) {
	cases := []struct {
		first, last float64
		trend       string
		signal      string
	}{
		{100, 107, domain.TrendRising, domain.SignalHighLeverage},
		{100, 103, domain.TrendRising, domain.SignalNormal},
		{100, 93, domain.TrendFalling, domain.SignalDeleveraging},
		{100, 99, domain.TrendStable, domain.SignalNormal},
	}
	for _, tc := range cases {
		record := NormalizeOpenInterest([]provider.OpenInterestPoint{
			{TotalBTC: tc.first},
			{TotalBTC: tc.last, TotalUSD: tc.last * 97000},
		})
		if record.Trend != tc.trend || record.Signal != tc.signal {
			t.Fatalf("%v -> %v: expected %s/%s, got %s/%s",
				tc.first, tc.last, tc.trend, tc.signal, record.Trend, record.Signal)
		}
		if record.TotalBTC != tc.last {
			t.Fatalf("unexpected total: %v", record.TotalBTC)
		}
	}
}

func TestNormalizeOpenInterestEmpty(t *testing.T) {
	if NormalizeOpenInterest(nil) != nil {
		t.Fatal("expected nil for empty window")
	}
}

func TestNormalizeFunding(t *testing.T) {
	cases := []struct {
		rate      float64
		sentiment string
		signal    string
	}{
		{0.02, domain.SentimentBalanced, domain.SignalNeutral},
		{0.07, domain.SentimentOverleveragedLong, domain.SignalNeutral},
		{0.12, domain.SentimentOverleveragedLong, domain.SignalCorrectionLikely},
		{-0.07, domain.SentimentOverleveragedShort, domain.SignalNeutral},
		{-0.12, domain.SentimentOverleveragedShort, domain.SignalBounceLikely},
	}
	for _, tc := range cases {
		record := NormalizeFunding(&provider.FundingPoint{RatePct: tc.rate, MarkPrice: 97000})
		if record.Sentiment != tc.sentiment || record.Signal != tc.signal {
			t.Fatalf("rate %v: expected %s/%s, got %s/%s",
				tc.rate, tc.sentiment, tc.signal, record.Sentiment, record.Signal)
		}
	}
}

func TestNormalizeFundingNil(t *testing.T) {
	if NormalizeFunding(nil) != nil {
		t.Fatal("expected nil without funding data")
	}
}
