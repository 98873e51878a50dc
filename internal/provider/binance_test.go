package provider

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func newTestBinanceProvider(t *testing.T, handler func(req *http.Request) (*http.Response, error)) *BinanceFuturesProvider {
	t.Helper()
	p := NewBinanceFuturesProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.baseURL = "https://example.com"
	p.client = &http.Client{Transport: roundTripFunc(handler)}
	return p
}

func TestBinanceFetchFunding(t *testing.T) {
	p := newTestBinanceProvider(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/fapi/v1/premiumIndex" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.URL.Query().Get("symbol") != "BTCUSDT" {
			t.Fatalf("unexpected symbol: %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"lastFundingRate":"0.00035","markPrice":"97123.40"}`), nil
	})

	point, err := p.FetchFunding(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.RatePct != 0.035 {
		t.Fatalf("unexpected rate pct: %v", point.RatePct)
	}
	if point.MarkPrice != 97123.40 {
		t.Fatalf("unexpected mark price: %v", point.MarkPrice)
	}
}

func TestBinanceFetchLongShort(t *testing.T) {
	p := newTestBinanceProvider(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/futures/data/globalLongShortAccountRatio" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `[{"longAccount":"0.42","shortAccount":"0.58","longShortRatio":"0.7241"}]`), nil
	})

	point, err := p.FetchLongShort(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.LongPct != 42 || point.ShortPct != 58 {
		t.Fatalf("unexpected percentages: %+v", point)
	}
	if point.Ratio != 0.7241 {
		t.Fatalf("unexpected ratio: %v", point.Ratio)
	}
}

func TestBinanceFetchTakerRatio(t *testing.T) {
	p := newTestBinanceProvider(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/futures/data/takerlongshortRatio" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `[{"buySellRatio":"1.1230","buyVol":"8420.5","sellVol":"7498.2"}]`), nil
	})

	point, err := p.FetchTakerRatio(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if point.BuySellRatio != 1.1230 {
		t.Fatalf("unexpected ratio: %v", point.BuySellRatio)
	}
}

func TestBinanceFetchOpenInterestHistory(t *testing.T) {
	p := newTestBinanceProvider(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/futures/data/openInterestHist" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `[
			{"sumOpenInterest":"81000.5","sumOpenInterestValue":"7850000000","timestamp":1771000000000},
			{"sumOpenInterest":"83500.1","sumOpenInterestValue":"8010000000","timestamp":1771003600000}
		]`
		return jsonResponse(http.StatusOK, body), nil
	})

	points, err := p.FetchOpenInterestHistory(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1].TotalBTC != 83500.1 {
		t.Fatalf("unexpected open interest: %v", points[1].TotalBTC)
	}
	if !points[0].Timestamp.Equal(time.UnixMilli(1771000000000).UTC()) {
		t.Fatalf("unexpected timestamp: %v", points[0].Timestamp)
	}
}

func TestBinanceFetchForceOrdersPrefersAvgPrice(t *testing.T) {
	p := newTestBinanceProvider(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/fapi/v1/allForceOrders" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `[
			{"side":"SELL","price":"96000","avgPrice":"95980.5","origQty":"2.5","time":1771000000000},
			{"side":"BUY","price":"97200","avgPrice":"0","origQty":"0.8","time":1771000600000}
		]`
		return jsonResponse(http.StatusOK, body), nil
	})

	orders, err := p.FetchForceOrders(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Price != 95980.5 {
		t.Fatalf("expected avgPrice to win, got %v", orders[0].Price)
	}
	if orders[1].Price != 97200 {
		t.Fatalf("expected fallback to price, got %v", orders[1].Price)
	}
}

func TestBinanceNon200IsError(t *testing.T) {
	p := newTestBinanceProvider(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusForbidden, `{"code":-1003}`), nil
	})

	if _, err := p.FetchFunding(context.Background(), "BTCUSDT"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
