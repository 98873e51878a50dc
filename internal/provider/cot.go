package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const cftcBaseURL = "https://publicreporting.cftc.gov"

// cftcMarketName selects the CME bitcoin futures row of the weekly
// Traders-in-Financial-Futures report.
const cftcMarketName = "BITCOIN - CHICAGO MERCANTILE EXCHANGE"

// COTProvider fetches the latest weekly positioning report from the CFTC
// Socrata API.
type COTProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewCOTProvider(tracer trace.Tracer) *COTProvider {
	return &COTProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: cftcBaseURL,
		tracer:  tracer,
	}
}

func (p *COTProvider) FetchLatest(ctx context.Context) (*COTReport, error) {
	_, span := p.tracer.Start(ctx, "cot.fetch-latest")
	defer span.End()

	q := url.Values{}
	q.Set("market_and_exchange_names", cftcMarketName)
	q.Set("$order", "report_date_as_yyyy_mm_dd DESC")
	q.Set("$limit", "1")
	reqURL := strings.TrimRight(p.baseURL, "/") + "/resource/gpe5-46if.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
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
		return nil, fmt.Errorf("CFTC API error %d: %s", resp.StatusCode, string(body))
	}

	var rows []struct {
		ReportDate        string `json:"report_date_as_yyyy_mm_dd"`
		DealerLong        string `json:"dealer_positions_long_all"`
		DealerShort       string `json:"dealer_positions_short_all"`
		AssetManagerLong  string `json:"asset_mgr_positions_long"`
		AssetManagerShort string `json:"asset_mgr_positions_short"`
		LeveragedLong     string `json:"lev_money_positions_long"`
		LeveragedShort    string `json:"lev_money_positions_short"`
		NonReportableLong string `json:"nonrept_positions_long_all"`
		NonReportableShrt string `json:"nonrept_positions_short_all"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode CFTC response: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CFTC response has no rows for %q", cftcMarketName)
	}

	row := rows[0]
	reportDate, err := time.Parse("2006-01-02T15:04:05.000", strings.TrimSpace(row.ReportDate))
	if err != nil {
		if reportDate, err = time.Parse("2006-01-02", strings.TrimSpace(row.ReportDate)); err != nil {
			return nil, fmt.Errorf("parse CFTC report date %q: %w", row.ReportDate, err)
		}
	}

	return &COTReport{
		ReportDate:         reportDate.UTC(),
		DealerLong:         parseIntString(row.DealerLong),
		DealerShort:        parseIntString(row.DealerShort),
		AssetManagerLong:   parseIntString(row.AssetManagerLong),
		AssetManagerShort:  parseIntString(row.AssetManagerShort),
		LeveragedLong:      parseIntString(row.LeveragedLong),
		LeveragedShort:     parseIntString(row.LeveragedShort),
		NonReportableLong:  parseIntString(row.NonReportableLong),
		NonReportableShort: parseIntString(row.NonReportableShrt),
	}, nil
}
