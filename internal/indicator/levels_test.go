package indicator

import (
	"testing"
	"time"

	"btcpulse/internal/domain"
)

func dailyCandles(base float64, closes ...float64) []domain.Candle {
	start := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	out := make([]domain.Candle, len(closes))
	for i, c := range closes {
		out[i] = domain.Candle{
			OpenTime: start.AddDate(0, 0, i),
			Open:     c,
			High:     c + base*0.01,
			Low:      c - base*0.01,
			Close:    c,
			Volume:   1000,
		}
	}
	return out
}

func TestNormalizeLevels(t *testing.T) {
	closes := []float64{
		91000, 92000, 93000, 94000, 95000, 96000, 95500,
		95000, 96500, 97000, 96000, 95500, 96800, 97200,
	}
	record := NormalizeLevels(dailyCandles(95000, closes...))
	if record == nil {
		t.Fatal("expected record")
	}
	if record.Price != 97200 {
		t.Fatalf("unexpected price: %v", record.Price)
	}

	// Weekly range covers the last 7 candles only.
	if record.WeekLow != 94050 {
		t.Fatalf("unexpected week low: %v", record.WeekLow)
	}
	if record.SwingLow != 90050 {
		t.Fatalf("swing low should extend below the week low, got %v", record.SwingLow)
	}

	if len(record.Supports) == 0 || len(record.Supports) > 3 {
		t.Fatalf("unexpected supports: %v", record.Supports)
	}
	for _, s := range record.Supports {
		if s >= record.Price {
			t.Fatalf("support %v above price %v", s, record.Price)
		}
	}
	for _, r := range record.Resistances {
		if r <= record.Price {
			t.Fatalf("resistance %v below price %v", r, record.Price)
		}
	}

	if record.Bias != domain.BiasAboveMid {
		t.Fatalf("expected above_mid bias, got %s", record.Bias)
	}
}

func TestNormalizeLevelsBelowMid(t *testing.T) {
	closes := []float64{97000, 97500, 98000, 97000, 96000, 95000, 94000}
	record := NormalizeLevels(dailyCandles(96000, closes...))
	if record.Bias != domain.BiasBelowMid {
		t.Fatalf("expected below_mid bias, got %s", record.Bias)
	}
}

func TestNormalizeLevelsEmpty(t *testing.T) {
	if NormalizeLevels(nil) != nil {
		t.Fatal("expected nil without candles")
	}
}
