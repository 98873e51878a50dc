package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btcpulse/internal/cache"
	"btcpulse/internal/config"
	"btcpulse/internal/handler"
	"btcpulse/internal/narrative"
	"btcpulse/internal/provider"
	"btcpulse/internal/pulse"
	scoring "btcpulse/internal/signal"
	"btcpulse/internal/snapshot"
	"btcpulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}

	store, err := snapshot.NewFileStore(cfg.OutputDir)
	if err != nil {
		log.Fatalf("failed to open output dir: %v", err)
	}

	llm := narrative.NewOpenAIClient(cfg.OpenAIAPIKey)
	narrator := narrative.NewGenerator(llm, cfg.OpenAIModel, time.Duration(cfg.FetchTimeoutSecs)*time.Second)

	svc := pulse.NewService(pulse.Deps{
		Tracer:       tracer,
		FearGreed:    provider.NewFearGreedProvider(tracer),
		Hashrate:     provider.NewHashrateProvider(tracer),
		Futures:      provider.NewBinanceFuturesProvider(tracer),
		Candles:      provider.NewKlinesProvider(tracer),
		COT:          provider.NewCOTProvider(tracer),
		Reference:    provider.NewStaticReference(),
		Narrator:     narrator,
		Store:        store,
		Cache:        cache.New(ctx, cfg.RedisURL),
		FetchTimeout: time.Duration(cfg.FetchTimeoutSecs) * time.Second,
		SignalOpts: scoring.Options{
			MaxSignals:   cfg.MaxSignals,
			RankByWeight: cfg.RankByWeight,
		},
	})

	r := gin.Default()
	r.Use(otelgin.Middleware("btcpulse"))
	handler.New(tracer, store, svc).RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServePort),
		Handler: r,
	}

	go func() {
		log.Printf("Serving dashboard API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
}
