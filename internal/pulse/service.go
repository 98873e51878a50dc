package pulse

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"btcpulse/internal/domain"
	"btcpulse/internal/indicator"
	"btcpulse/internal/provider"
	"btcpulse/internal/signal"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Source boundaries, implemented by the provider package in production and
// stubbed in tests.
type FearGreedSource interface {
	FetchHistory(ctx context.Context) ([]provider.FearGreedPoint, error)
}

type HashrateSource interface {
	FetchWindow(ctx context.Context) (*provider.HashrateWindow, error)
}

type FuturesSource interface {
	FetchFunding(ctx context.Context, symbol string) (*provider.FundingPoint, error)
	FetchLongShort(ctx context.Context, symbol string) (*provider.LongShortPoint, error)
	FetchTakerRatio(ctx context.Context, symbol string) (*provider.TakerRatioPoint, error)
	FetchOpenInterestHistory(ctx context.Context, symbol string) ([]provider.OpenInterestPoint, error)
	FetchForceOrders(ctx context.Context, symbol string) ([]domain.ForceOrder, error)
}

type CandleSource interface {
	FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]domain.Candle, error)
}

type COTSource interface {
	FetchLatest(ctx context.Context) (*provider.COTReport, error)
}

// Narrator produces the story; the bool reports whether a model wrote it.
type Narrator interface {
	Narrate(ctx context.Context, set domain.IndicatorSet, agg domain.AggregateSignal) (string, bool)
}

// Store persists the dashboard artifacts.
type Store interface {
	WriteMarket(doc *domain.MarketDocument) error
	ReadMarket() (*domain.MarketDocument, error)
	WriteNews(doc *domain.NewsDocument) error
}

// ContextCache keeps the last market context across runs. May be nil.
type ContextCache interface {
	StoreContext(ctx context.Context, mc *domain.NewsContext) error
	LoadContext(ctx context.Context) (*domain.NewsContext, error)
}

// Notifier is told when the market-state label flips between runs. May be nil.
type Notifier interface {
	NotifyLabelChange(ctx context.Context, previous, current string, agg domain.AggregateSignal) error
}

// NewsRunner produces the news document. May be nil to skip the news cycle.
type NewsRunner interface {
	Run(ctx context.Context, now time.Time, mc *domain.NewsContext) (*domain.NewsDocument, domain.NewsRunResult)
}

const candleWindowDays = 14

type Service struct {
	tracer trace.Tracer

	fearGreed FearGreedSource
	hashrate  HashrateSource
	futures   FuturesSource
	candles   CandleSource
	cot       COTSource
	reference provider.ReferenceData

	narrator Narrator
	store    Store
	cache    ContextCache
	notifier Notifier
	news     NewsRunner

	fetchTimeout time.Duration
	signalOpts   signal.Options
}

type Deps struct {
	Tracer       trace.Tracer
	FearGreed    FearGreedSource
	Hashrate     HashrateSource
	Futures      FuturesSource
	Candles      CandleSource
	COT          COTSource
	Reference    provider.ReferenceData
	Narrator     Narrator
	Store        Store
	Cache        ContextCache
	Notifier     Notifier
	News         NewsRunner
	FetchTimeout time.Duration
	SignalOpts   signal.Options
}

func NewService(deps Deps) *Service {
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = 12 * time.Second
	}
	return &Service{
		tracer:       deps.Tracer,
		fearGreed:    deps.FearGreed,
		hashrate:     deps.Hashrate,
		futures:      deps.Futures,
		candles:      deps.Candles,
		cot:          deps.COT,
		reference:    deps.Reference,
		narrator:     deps.Narrator,
		store:        deps.Store,
		cache:        deps.Cache,
		notifier:     deps.Notifier,
		news:         deps.News,
		fetchTimeout: deps.FetchTimeout,
		signalOpts:   deps.SignalOpts,
	}
}

// fetchResults carries the raw fan-out payloads into normalization.
type fetchResults struct {
	fearGreed      []provider.FearGreedPoint
	hashrate       *provider.HashrateWindow
	funding        *provider.FundingPoint
	longShort      *provider.LongShortPoint
	taker          *provider.TakerRatioPoint
	openInterest   []provider.OpenInterestPoint
	forceOrders    []domain.ForceOrder
	candles        []domain.Candle
	cotReport      *provider.COTReport
	hashrateFailed bool
	cotFailed      bool
}

// RunCycle executes one full scoring run: concurrent fetch, normalize,
// aggregate, plan, narrate, persist. Per-source failures land in the result;
// only the final write is fatal.
func (s *Service) RunCycle(ctx context.Context, now time.Time) (domain.RunResult, error) {
	ctx, span := s.tracer.Start(ctx, "pulse.run-cycle")
	defer span.End()

	result := domain.RunResult{}
	raw := s.fetchAll(ctx, &result)

	set := s.normalize(raw, now)
	countIndicators(set, &result)

	agg := signal.Aggregate(set, s.signalOpts)
	plan := signal.DerivePlan(agg, set.Levels, set.FearGreed)
	story, fromLLM := s.narrator.Narrate(ctx, set, agg)

	result.Label = agg.Label
	result.NetScore = agg.NetScore
	result.StoryFromLLM = fromLLM

	previousLabel := ""
	if prev, err := s.store.ReadMarket(); err == nil && prev != nil {
		previousLabel = prev.Analysis.Label
	}

	doc := buildMarketDocument(now, set, agg, plan, story)
	if err := s.store.WriteMarket(doc); err != nil {
		return result, fmt.Errorf("persist market document: %w", err)
	}

	mc := marketContext(set, agg)
	if s.cache != nil {
		if err := s.cache.StoreContext(ctx, mc); err != nil {
			result.Errors = append(result.Errors, "cache: "+err.Error())
		}
	}

	if s.notifier != nil && previousLabel != "" && previousLabel != agg.Label {
		if err := s.notifier.NotifyLabelChange(ctx, previousLabel, agg.Label, agg); err != nil {
			result.Errors = append(result.Errors, "notify: "+err.Error())
		}
	}

	return result, nil
}

// fetchAll fans out one goroutine per source. Every slot recovers its own
// error into the shared result and returns nil, so one slow or dead source
// never cancels the others.
func (s *Service) fetchAll(ctx context.Context, result *domain.RunResult) *fetchResults {
	ctx, span := s.tracer.Start(ctx, "pulse.fetch-all")
	defer span.End()

	raw := &fetchResults{}
	var mu sync.Mutex
	fail := func(source string, err error) {
		mu.Lock()
		defer mu.Unlock()
		result.Errors = append(result.Errors, source+": "+err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		points, err := s.fearGreed.FetchHistory(fctx)
		if err != nil {
			fail("fear_greed", err)
			return nil
		}
		raw.fearGreed = points
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		window, err := s.hashrate.FetchWindow(fctx)
		if err != nil {
			fail("hashrate", err)
			raw.hashrateFailed = true
			return nil
		}
		raw.hashrate = window
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		point, err := s.futures.FetchFunding(fctx, domain.Symbol)
		if err != nil {
			fail("funding", err)
			return nil
		}
		raw.funding = point
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		point, err := s.futures.FetchLongShort(fctx, domain.Symbol)
		if err != nil {
			fail("long_short", err)
			return nil
		}
		raw.longShort = point
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		point, err := s.futures.FetchTakerRatio(fctx, domain.Symbol)
		if err != nil {
			fail("taker_ratio", err)
			return nil
		}
		raw.taker = point
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		points, err := s.futures.FetchOpenInterestHistory(fctx, domain.Symbol)
		if err != nil {
			fail("open_interest", err)
			return nil
		}
		raw.openInterest = points
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		orders, err := s.futures.FetchForceOrders(fctx, domain.Symbol)
		if err != nil {
			fail("liquidations", err)
			return nil
		}
		raw.forceOrders = orders
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		candles, err := s.candles.FetchDailyCandles(fctx, domain.Symbol, candleWindowDays)
		if err != nil {
			fail("candles", err)
			return nil
		}
		raw.candles = candles
		return nil
	})

	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, s.fetchTimeout)
		defer cancel()
		report, err := s.cot.FetchLatest(fctx)
		if err != nil {
			fail("cot", err)
			raw.cotFailed = true
			return nil
		}
		raw.cotReport = report
		return nil
	})

	// Slots never return errors; Wait is only a join point.
	_ = g.Wait()
	return raw
}

func (s *Service) normalize(raw *fetchResults, now time.Time) domain.IndicatorSet {
	set := domain.IndicatorSet{
		FearGreed:    indicator.NormalizeFearGreed(raw.fearGreed),
		Hashrate:     indicator.NormalizeHashrate(raw.hashrate),
		LongShort:    indicator.NormalizeLongShort(raw.longShort, raw.taker),
		OpenInterest: indicator.NormalizeOpenInterest(raw.openInterest),
		Funding:      indicator.NormalizeFunding(raw.funding),
		Liquidations: indicator.NormalizeLiquidations(raw.forceOrders, now),
		Levels:       indicator.NormalizeLevels(raw.candles),
	}

	if raw.hashrateFailed && set.Hashrate == nil {
		set.Hashrate = indicator.FallbackHashrate()
	}

	if raw.cotReport != nil {
		set.COT = indicator.NormalizeCOT(raw.cotReport, indicator.COTSourceCFTC)
	} else if raw.cotFailed && s.reference != nil {
		set.COT = indicator.NormalizeCOT(s.reference.COTFallback(), indicator.COTSourceReference)
	}

	if s.reference != nil {
		set.ETFFlows = indicator.NormalizeETF(s.reference.ETFFlows(), indicator.COTSourceReference)
	}

	return set
}

func countIndicators(set domain.IndicatorSet, result *domain.RunResult) {
	present := []bool{
		set.FearGreed != nil,
		set.Hashrate != nil,
		set.LongShort != nil,
		set.OpenInterest != nil,
		set.Funding != nil,
		set.Liquidations != nil,
		set.COT != nil,
		set.ETFFlows != nil,
		set.Levels != nil,
	}
	for _, ok := range present {
		if ok {
			result.IndicatorsOK++
		} else {
			result.IndicatorsFail++
		}
	}
}

func buildMarketDocument(now time.Time, set domain.IndicatorSet, agg domain.AggregateSignal, plan *domain.TradingPlan, story string) *domain.MarketDocument {
	price := 0.0
	if set.Levels != nil {
		price = set.Levels.Price
	} else if set.Funding != nil {
		price = set.Funding.MarkPrice
	}

	return &domain.MarketDocument{
		UpdatedAt:    now.UTC(),
		Symbol:       domain.Symbol,
		Price:        price,
		FearGreed:    set.FearGreed,
		Hashrate:     set.Hashrate,
		LongShort:    set.LongShort,
		OpenInterest: set.OpenInterest,
		Funding:      set.Funding,
		Liquidations: set.Liquidations,
		COT:          set.COT,
		ETFFlows:     set.ETFFlows,
		Levels:       set.Levels,
		Analysis:     agg,
		TradingPlan:  plan,
		Story:        story,
	}
}

func marketContext(set domain.IndicatorSet, agg domain.AggregateSignal) *domain.NewsContext {
	mc := &domain.NewsContext{Signal: agg.Label}
	if set.FearGreed != nil {
		mc.FearGreed = set.FearGreed.Value
	}
	if set.COT != nil {
		mc.HedgeFundsShort = set.COT.HedgeFunds.ShortPct
	}
	return mc
}

// RunNews executes the news cycle: previous-run context from the cache (file
// artifact as fallback), feed fetch and annotation, atomic persist.
func (s *Service) RunNews(ctx context.Context, now time.Time) (domain.NewsRunResult, error) {
	ctx, span := s.tracer.Start(ctx, "pulse.run-news")
	defer span.End()

	if s.news == nil {
		return domain.NewsRunResult{}, fmt.Errorf("news pipeline not configured")
	}

	mc := s.loadContext(ctx)
	doc, result := s.news.Run(ctx, now, mc)

	if prev, err := s.store.ReadMarket(); err == nil && prev != nil {
		doc.Narrative = prev.Story
	}

	if err := s.store.WriteNews(doc); err != nil {
		return result, fmt.Errorf("persist news document: %w", err)
	}
	return result, nil
}

func (s *Service) loadContext(ctx context.Context) *domain.NewsContext {
	if s.cache != nil {
		mc, err := s.cache.LoadContext(ctx)
		if err != nil {
			log.Printf("context cache read failed: %v", err)
		} else if mc != nil {
			return mc
		}
	}

	prev, err := s.store.ReadMarket()
	if err != nil || prev == nil {
		return nil
	}
	mc := &domain.NewsContext{Signal: prev.Analysis.Label}
	if prev.FearGreed != nil {
		mc.FearGreed = prev.FearGreed.Value
	}
	if prev.COT != nil {
		mc.HedgeFundsShort = prev.COT.HedgeFunds.ShortPct
	}
	return mc
}
