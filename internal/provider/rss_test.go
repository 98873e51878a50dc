package provider

import (
	"context"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>CoinDesk</title>
    <item>
      <title>Bitcoin ETF inflows resume after three-day pause</title>
      <link>https://www.coindesk.com/markets/etf-inflows</link>
      <description>&lt;p&gt;Spot ETFs recorded net inflows on Thursday.&lt;/p&gt;</description>
      <pubDate>Thu, 27 Aug 2026 14:05:00 +0000</pubDate>
    </item>
    <item>
      <title>Miners expand capacity ahead of winter</title>
      <link>https://www.coindesk.com/tech/miners-expand</link>
      <description>Several public miners announced new sites.</description>
      <pubDate>Thu, 27 Aug 2026 09:30:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSFetchFeed(t *testing.T) {
	p := NewRSSProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host != "www.coindesk.com" {
			t.Fatalf("unexpected host: %s", req.URL.Host)
		}
		return jsonResponse(http.StatusOK, sampleFeed), nil
	})}

	items, err := p.FetchFeed(context.Background(), "https://www.coindesk.com/arc/outboundfeeds/rss/", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Source != "CoinDesk" {
		t.Fatalf("expected channel title as source, got %q", items[0].Source)
	}
	if items[0].Excerpt != "Spot ETFs recorded net inflows on Thursday." {
		t.Fatalf("expected HTML stripped from excerpt, got %q", items[0].Excerpt)
	}
	if items[0].PublishedAt.IsZero() {
		t.Fatal("expected parsed publish date")
	}
}

func TestRSSFetchFeedRespectsMaxItems(t *testing.T) {
	p := NewRSSProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, sampleFeed), nil
	})}

	items, err := p.FetchFeed(context.Background(), "https://www.coindesk.com/rss", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestRSSFetchFeedEmptyURL(t *testing.T) {
	p := NewRSSProvider(trace.NewNoopTracerProvider().Tracer("test"))
	if _, err := p.FetchFeed(context.Background(), "  ", 5); err == nil {
		t.Fatal("expected error for empty feed url")
	}
}

func TestParseRSSDateLayouts(t *testing.T) {
	cases := []string{
		"Thu, 27 Aug 2026 14:05:00 +0000",
		"Thu, 27 Aug 2026 14:05:00 UTC",
		"2026-08-27T14:05:00Z",
	}
	for _, v := range cases {
		if parseRSSDate(v).IsZero() {
			t.Fatalf("expected %q to parse", v)
		}
	}
	if !parseRSSDate("not a date").IsZero() {
		t.Fatal("expected zero time for garbage input")
	}
}
