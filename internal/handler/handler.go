package handler

import (
	"context"
	"time"

	"btcpulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// ArtifactReader serves the persisted dashboard documents.
type ArtifactReader interface {
	ReadMarket() (*domain.MarketDocument, error)
	ReadNews() (*domain.NewsDocument, error)
}

// CycleRunner triggers a scoring run on demand.
type CycleRunner interface {
	RunCycle(ctx context.Context, now time.Time) (domain.RunResult, error)
}

type Handler struct {
	tracer trace.Tracer
	store  ArtifactReader
	runner CycleRunner
}

func New(tracer trace.Tracer, store ArtifactReader, runner CycleRunner) *Handler {
	return &Handler{tracer: tracer, store: store, runner: runner}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/market", h.GetMarket)
	r.GET("/api/news", h.GetNews)
	r.POST("/api/run", h.TriggerRun)
}
