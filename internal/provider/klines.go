package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"btcpulse/internal/domain"

	"github.com/adshao/go-binance/v2/futures"
	"go.opentelemetry.io/otel/trace"
)

// KlinesProvider fetches daily OHLCV candles through the go-binance SDK.
type KlinesProvider struct {
	client *futures.Client
	tracer trace.Tracer
}

func NewKlinesProvider(tracer trace.Tracer) *KlinesProvider {
	client := futures.NewClient("", "")
	client.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	return &KlinesProvider{client: client, tracer: tracer}
}

// SetBaseURL points the SDK at a different endpoint (used by tests).
func (p *KlinesProvider) SetBaseURL(baseURL string) {
	p.client.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

// FetchDailyCandles returns the last `limit` daily candles, oldest first.
func (p *KlinesProvider) FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]domain.Candle, error) {
	_, span := p.tracer.Start(ctx, "klines.fetch-daily")
	defer span.End()

	if limit <= 0 {
		limit = 14
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	kls, err := p.client.NewKlinesService().Symbol(symbol).Interval("1d").Limit(limit).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch daily klines for %s: %w", symbol, err)
	}

	out := make([]domain.Candle, 0, len(kls))
	for _, kl := range kls {
		if kl == nil {
			continue
		}
		out = append(out, domain.Candle{
			OpenTime: time.UnixMilli(kl.OpenTime).UTC(),
			Open:     parseFloatString(kl.Open),
			High:     parseFloatString(kl.High),
			Low:      parseFloatString(kl.Low),
			Close:    parseFloatString(kl.Close),
			Volume:   parseFloatString(kl.Volume),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("klines response has no rows for %s", symbol)
	}
	return out, nil
}
