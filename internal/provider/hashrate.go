package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const mempoolBaseURL = "https://mempool.space"

type HashrateProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewHashrateProvider(tracer trace.Tracer) *HashrateProvider {
	return &HashrateProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: mempoolBaseURL,
		tracer:  tracer,
	}
}

// FetchWindow returns the one-month daily hashrate series plus the live value.
func (p *HashrateProvider) FetchWindow(ctx context.Context) (*HashrateWindow, error) {
	_, span := p.tracer.Start(ctx, "hashrate.fetch-window")
	defer span.End()

	url := strings.TrimRight(p.baseURL, "/") + "/api/v1/mining/hashrate/1m"
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
		return nil, fmt.Errorf("mempool hashrate error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Hashrates []struct {
			Timestamp   int64   `json:"timestamp"`
			AvgHashrate float64 `json:"avgHashrate"`
		} `json:"hashrates"`
		CurrentHashrate float64 `json:"currentHashrate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode mempool hashrate payload: %w", err)
	}
	if len(payload.Hashrates) == 0 {
		return nil, fmt.Errorf("mempool hashrate payload has no samples")
	}

	window := &HashrateWindow{
		Current: payload.CurrentHashrate,
		Samples: make([]HashrateSample, 0, len(payload.Hashrates)),
	}
	for _, row := range payload.Hashrates {
		window.Samples = append(window.Samples, HashrateSample{
			Timestamp: time.Unix(row.Timestamp, 0).UTC(),
			Hashrate:  row.AvgHashrate,
		})
	}
	if window.Current <= 0 {
		window.Current = window.Samples[len(window.Samples)-1].Hashrate
	}
	return window, nil
}
