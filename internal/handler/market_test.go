package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"btcpulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type fakeReader struct {
	market *domain.MarketDocument
	news   *domain.NewsDocument
}

func (f *fakeReader) ReadMarket() (*domain.MarketDocument, error) {
	if f.market == nil {
		return nil, fmt.Errorf("missing")
	}
	return f.market, nil
}

func (f *fakeReader) ReadNews() (*domain.NewsDocument, error) {
	if f.news == nil {
		return nil, fmt.Errorf("missing")
	}
	return f.news, nil
}

type fakeRunner struct {
	result domain.RunResult
	err    error
}

func (f *fakeRunner) RunCycle(ctx context.Context, now time.Time) (domain.RunResult, error) {
	return f.result, f.err
}

func setupRouter(store ArtifactReader, runner CycleRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(trace.NewNoopTracerProvider().Tracer("test"), store, runner).RegisterRoutes(r)
	return r
}

func TestHealth(t *testing.T) {
	r := setupRouter(&fakeReader{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestGetMarket(t *testing.T) {
	store := &fakeReader{market: &domain.MarketDocument{
		Symbol: domain.Symbol,
		Analysis: domain.AggregateSignal{
			Label: domain.LabelAccumulation, NetScore: 3,
			Signals: []domain.SignalEntry{},
		},
	}}
	r := setupRouter(store, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/market", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	var doc domain.MarketDocument
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.Symbol != domain.Symbol || doc.Analysis.Label != domain.LabelAccumulation {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestGetMarketNotFound(t *testing.T) {
	r := setupRouter(&fakeReader{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/market", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetNews(t *testing.T) {
	store := &fakeReader{news: &domain.NewsDocument{News: []domain.NewsItem{}}}
	r := setupRouter(store, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
}

func TestTriggerRun(t *testing.T) {
	runner := &fakeRunner{result: domain.RunResult{
		Label: domain.LabelStrongAccumulation, NetScore: 7, IndicatorsOK: 9,
	}}
	r := setupRouter(&fakeReader{}, runner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/run", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["label"] != domain.LabelStrongAccumulation {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestTriggerRunFailure(t *testing.T) {
	r := setupRouter(&fakeReader{}, &fakeRunner{err: fmt.Errorf("disk full")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/run", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestTriggerRunUnavailable(t *testing.T) {
	r := setupRouter(&fakeReader{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/run", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
