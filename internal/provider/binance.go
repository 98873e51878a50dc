package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"btcpulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const binanceFuturesBaseURL = "https://fapi.binance.com"

// BinanceFuturesProvider fetches futures market-data endpoints that the
// go-binance SDK does not cover (futures/data statistics and force orders).
type BinanceFuturesProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewBinanceFuturesProvider creates a provider rate limited to 20 requests
// per minute (one token every 3 seconds), well under the public IP limits.
func NewBinanceFuturesProvider(tracer trace.Tracer) *BinanceFuturesProvider {
	return &BinanceFuturesProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: binanceFuturesBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(20, 3*time.Second),
	}
}

// FetchFunding returns the current premium-index funding reading as percent.
func (p *BinanceFuturesProvider) FetchFunding(ctx context.Context, symbol string) (*FundingPoint, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-funding")
	defer span.End()

	body, err := p.doRequest(ctx, fmt.Sprintf("%s/fapi/v1/premiumIndex?symbol=%s", p.baseURL, symbol))
	if err != nil {
		return nil, fmt.Errorf("fetch funding: %w", err)
	}

	var raw struct {
		LastFundingRate string `json:"lastFundingRate"`
		MarkPrice       string `json:"markPrice"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse funding payload: %w", err)
	}

	return &FundingPoint{
		RatePct:   parseFloatString(raw.LastFundingRate) * 100,
		MarkPrice: parseFloatString(raw.MarkPrice),
	}, nil
}

// FetchLongShort returns the latest global account long/short bucket.
func (p *BinanceFuturesProvider) FetchLongShort(ctx context.Context, symbol string) (*LongShortPoint, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-long-short")
	defer span.End()

	url := fmt.Sprintf("%s/futures/data/globalLongShortAccountRatio?symbol=%s&period=1h&limit=1", p.baseURL, symbol)
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch long/short ratio: %w", err)
	}

	var rows []struct {
		LongAccount    string `json:"longAccount"`
		ShortAccount   string `json:"shortAccount"`
		LongShortRatio string `json:"longShortRatio"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parse long/short payload: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("long/short payload has no rows")
	}

	row := rows[len(rows)-1]
	return &LongShortPoint{
		LongPct:  parseFloatString(row.LongAccount) * 100,
		ShortPct: parseFloatString(row.ShortAccount) * 100,
		Ratio:    parseFloatString(row.LongShortRatio),
	}, nil
}

// FetchTakerRatio returns the latest taker buy/sell volume bucket.
func (p *BinanceFuturesProvider) FetchTakerRatio(ctx context.Context, symbol string) (*TakerRatioPoint, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-taker-ratio")
	defer span.End()

	url := fmt.Sprintf("%s/futures/data/takerlongshortRatio?symbol=%s&period=1h&limit=1", p.baseURL, symbol)
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch taker ratio: %w", err)
	}

	var rows []struct {
		BuySellRatio string `json:"buySellRatio"`
		BuyVol       string `json:"buyVol"`
		SellVol      string `json:"sellVol"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parse taker ratio payload: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("taker ratio payload has no rows")
	}

	row := rows[len(rows)-1]
	return &TakerRatioPoint{
		BuySellRatio: parseFloatString(row.BuySellRatio),
		BuyVolume:    parseFloatString(row.BuyVol),
		SellVolume:   parseFloatString(row.SellVol),
	}, nil
}

// FetchOpenInterestHistory returns hourly open-interest buckets covering the
// last 24 hours plus the current one, oldest first.
func (p *BinanceFuturesProvider) FetchOpenInterestHistory(ctx context.Context, symbol string) ([]OpenInterestPoint, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-open-interest")
	defer span.End()

	url := fmt.Sprintf("%s/futures/data/openInterestHist?symbol=%s&period=1h&limit=25", p.baseURL, symbol)
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch open interest: %w", err)
	}

	var rows []struct {
		SumOpenInterest      string `json:"sumOpenInterest"`
		SumOpenInterestValue string `json:"sumOpenInterestValue"`
		Timestamp            int64  `json:"timestamp"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parse open interest payload: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("open interest payload has no rows")
	}

	points := make([]OpenInterestPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, OpenInterestPoint{
			Timestamp: time.UnixMilli(row.Timestamp).UTC(),
			TotalBTC:  parseFloatString(row.SumOpenInterest),
			TotalUSD:  parseFloatString(row.SumOpenInterestValue),
		})
	}
	return points, nil
}

// FetchForceOrders returns the raw liquidation order list, newest last.
func (p *BinanceFuturesProvider) FetchForceOrders(ctx context.Context, symbol string) ([]domain.ForceOrder, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-force-orders")
	defer span.End()

	url := fmt.Sprintf("%s/fapi/v1/allForceOrders?symbol=%s&limit=1000", p.baseURL, symbol)
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch force orders: %w", err)
	}

	var rows []struct {
		Side     string `json:"side"`
		Price    string `json:"price"`
		AvgPrice string `json:"avgPrice"`
		OrigQty  string `json:"origQty"`
		Time     int64  `json:"time"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parse force orders payload: %w", err)
	}

	orders := make([]domain.ForceOrder, 0, len(rows))
	for _, row := range rows {
		price := parseFloatString(row.AvgPrice)
		if price <= 0 {
			price = parseFloatString(row.Price)
		}
		orders = append(orders, domain.ForceOrder{
			Side:     row.Side,
			Price:    price,
			Quantity: parseFloatString(row.OrigQty),
			Time:     time.UnixMilli(row.Time).UTC(),
		})
	}
	return orders, nil
}

func (p *BinanceFuturesProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("binance futures API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
