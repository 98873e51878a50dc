package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btcpulse/internal/bot"
	"btcpulse/internal/cache"
	"btcpulse/internal/config"
	"btcpulse/internal/job"
	"btcpulse/internal/narrative"
	"btcpulse/internal/news"
	"btcpulse/internal/provider"
	"btcpulse/internal/pulse"
	scoring "btcpulse/internal/signal"
	"btcpulse/internal/snapshot"
	"btcpulse/pkg/tracing"

	"github.com/joho/godotenv"
)

func main() {
	loop := flag.Bool("loop", false, "keep running on the poll interval instead of a single cycle")
	withNews := flag.Bool("news", true, "also run the news cycle")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	store, err := snapshot.NewFileStore(cfg.OutputDir)
	if err != nil {
		log.Fatalf("failed to open output dir: %v", err)
	}

	llm := narrative.NewOpenAIClient(cfg.OpenAIAPIKey)
	narrator := narrative.NewGenerator(llm, cfg.OpenAIModel, time.Duration(cfg.FetchTimeoutSecs)*time.Second)

	newsService := news.NewService(
		tracer,
		provider.NewRSSProvider(tracer),
		annotator(cfg),
		cfg.NewsFeeds,
		cfg.NewsItemLimit,
	)

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
		Notifier:     notifier(cfg),
		News:         newsService,
		FetchTimeout: time.Duration(cfg.FetchTimeoutSecs) * time.Second,
		SignalOpts: scoring.Options{
			MaxSignals:   cfg.MaxSignals,
			RankByWeight: cfg.RankByWeight,
		},
	})

	if *loop {
		pulseJob := job.NewPulseJob(tracer, svc, time.Duration(cfg.PollSecs)*time.Second, *withNews)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-quit
			log.Println("Shutting down...")
			cancel()
		}()

		pulseJob.Start(ctx)
		return
	}

	runOnce(ctx, svc, *withNews)
}

func runOnce(ctx context.Context, svc *pulse.Service, withNews bool) {
	now := time.Now()

	result, err := svc.RunCycle(ctx, now)
	if err != nil {
		log.Printf("pulse cycle failed: %v", err)
		os.Exit(1)
	}
	log.Printf("Pulse cycle done: label=%s net=%d ok=%d fail=%d llm=%t",
		result.Label, result.NetScore, result.IndicatorsOK, result.IndicatorsFail, result.StoryFromLLM)
	for _, e := range result.Errors {
		log.Printf("source error: %s", e)
	}

	if !withNews {
		return
	}
	newsResult, err := svc.RunNews(ctx, now)
	if err != nil {
		log.Printf("news cycle failed: %v", err)
		os.Exit(1)
	}
	log.Printf("News cycle done: fetched=%d annotated=%d llm=%t",
		newsResult.ItemsFetched, newsResult.ItemsAnnotated, newsResult.LLMUsed)
	for _, e := range newsResult.Errors {
		log.Printf("source error: %s", e)
	}
}

func annotator(cfg *config.Config) news.BatchAnnotator {
	a := news.NewOpenAIAnnotator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if a == nil {
		return nil
	}
	return a
}

func notifier(cfg *config.Config) pulse.Notifier {
	n := bot.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	if n == nil {
		return nil
	}
	return n
}
