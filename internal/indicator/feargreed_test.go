package indicator

import (
	"testing"

	"btcpulse/internal/domain"
	"btcpulse/internal/provider"
)

func fearGreedSeries(values ...int) []provider.FearGreedPoint {
	points := make([]provider.FearGreedPoint, len(values))
	for i, v := range values {
		points[i] = provider.FearGreedPoint{Value: v, Classification: "Fear"}
	}
	return points
}

func TestNormalizeFearGreedDeltasAndHistory(t *testing.T) {
	values := make([]int, 31)
	for i := range values {
		values[i] = 20 + i
	}
	points := fearGreedSeries(values...)

	record := NormalizeFearGreed(points)
	if record == nil {
		t.Fatal("expected record")
	}
	if record.Value != 20 {
		t.Fatalf("unexpected value: %d", record.Value)
	}
	if record.Change24h != -1 || record.Change7d != -7 || record.Change30d != -30 {
		t.Fatalf("unexpected deltas: %+v", record)
	}
	if len(record.History) != 7 || record.History[0] != 20 || record.History[6] != 26 {
		t.Fatalf("unexpected history: %v", record.History)
	}
}

func TestNormalizeFearGreedSignals(t *testing.T) {
	cases := []struct {
		value int
		want  string
	}{
		{10, domain.SignalBullish},
		{25, domain.SignalBullish},
		{26, domain.SignalNeutral},
		{64, domain.SignalNeutral},
		{65, domain.SignalBearish},
		{90, domain.SignalBearish},
	}
	for _, tc := range cases {
		record := NormalizeFearGreed(fearGreedSeries(tc.value))
		if record.Signal != tc.want {
			t.Fatalf("value %d: expected %q, got %q", tc.value, tc.want, record.Signal)
		}
	}
}

func TestNormalizeFearGreedShortSeries(t *testing.T) {
	record := NormalizeFearGreed(fearGreedSeries(42, 40))
	if record.Change24h != 2 {
		t.Fatalf("unexpected 24h delta: %d", record.Change24h)
	}
	if record.Change7d != 0 || record.Change30d != 0 {
		t.Fatalf("expected zero deltas for short series: %+v", record)
	}
	if len(record.History) != 2 {
		t.Fatalf("unexpected history length: %d", len(record.History))
	}
}

func TestNormalizeFearGreedEmpty(t *testing.T) {
	if NormalizeFearGreed(nil) != nil {
		t.Fatal("expected nil for empty series")
	}
}
