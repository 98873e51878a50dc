package news

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"btcpulse/internal/domain"
	"btcpulse/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

// FeedFetcher is the RSS boundary (provider.RSSProvider in production).
type FeedFetcher interface {
	FetchFeed(ctx context.Context, feedURL string, maxItems int) ([]provider.ContentItem, error)
}

type Service struct {
	tracer    trace.Tracer
	feeds     []string
	itemLimit int
	fetcher   FeedFetcher
	annotator BatchAnnotator
}

// NewService builds the news pipeline. The annotator may be nil, in which
// case items keep their heuristic annotations.
func NewService(tracer trace.Tracer, fetcher FeedFetcher, annotator BatchAnnotator, feeds []string, itemLimit int) *Service {
	if itemLimit <= 0 {
		itemLimit = 12
	}
	return &Service{
		tracer:    tracer,
		feeds:     feeds,
		itemLimit: itemLimit,
		fetcher:   fetcher,
		annotator: annotator,
	}
}

// Run fetches all feeds, annotates the newest items and assembles the news
// document. Per-feed failures land in the result, not in the error return;
// marketContext may be nil when no previous run is known.
func (s *Service) Run(ctx context.Context, now time.Time, marketContext *domain.NewsContext) (*domain.NewsDocument, domain.NewsRunResult) {
	ctx, span := s.tracer.Start(ctx, "news.run")
	defer span.End()

	result := domain.NewsRunResult{}

	var items []domain.NewsItem
	for _, feed := range s.feeds {
		fetched, err := s.fetcher.FetchFeed(ctx, feed, s.itemLimit)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("feed %s: %v", feed, err))
			continue
		}
		for _, raw := range fetched {
			items = append(items, newsItemFromContent(raw, marketContext))
		}
	}
	result.ItemsFetched = len(items)

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if len(items) > s.itemLimit {
		items = items[:s.itemLimit]
	}

	if s.annotator != nil && len(items) > 0 {
		annotations, err := s.annotator.AnnotateBatch(ctx, items)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("annotate: %v", err))
		} else {
			for _, ann := range annotations {
				if ann.Index < 0 || ann.Index >= len(items) {
					continue
				}
				applyAnnotation(&items[ann.Index], ann, marketContext)
				result.ItemsAnnotated++
			}
			result.LLMUsed = result.ItemsAnnotated > 0
		}
	}

	if items == nil {
		items = []domain.NewsItem{}
	}

	doc := &domain.NewsDocument{
		UpdatedAt: now.UTC(),
		Context:   marketContext,
		News:      items,
	}
	return doc, result
}

func newsItemFromContent(raw provider.ContentItem, marketContext *domain.NewsContext) domain.NewsItem {
	impact, priceEffect, importance := HeuristicSentiment(raw.Title, raw.Excerpt)
	return domain.NewsItem{
		Title:         raw.Title,
		TitleOriginal: raw.Title,
		Summary:       raw.Excerpt,
		Impact:        impact,
		PriceEffect:   priceEffect,
		ContextLink:   contextLink(impact, marketContext),
		Importance:    importance,
		Source:        raw.Source,
		Link:          raw.URL,
		Date:          raw.PublishedAt,
	}
}

func applyAnnotation(item *domain.NewsItem, ann Annotation, marketContext *domain.NewsContext) {
	if title := strings.TrimSpace(ann.Title); title != "" {
		item.Title = title
	}
	if summary := strings.TrimSpace(ann.Summary); summary != "" {
		item.Summary = summary
	}
	item.Impact = ann.Impact
	item.PriceEffect = ann.PriceEffect
	item.Importance = ann.Importance
	item.ContextLink = contextLink(ann.Impact, marketContext)
}

// contextLink relates a headline's impact to the previous run's market state.
func contextLink(impact string, marketContext *domain.NewsContext) string {
	if marketContext == nil || marketContext.Signal == "" {
		return ""
	}
	bullishState := strings.Contains(marketContext.Signal, "accumulation")
	bearishState := strings.Contains(marketContext.Signal, "distribution")

	switch {
	case impact == domain.SignalBullish && bullishState,
		impact == domain.SignalBearish && bearishState:
		return fmt.Sprintf("supports the current %s read", marketContext.Signal)
	case impact == domain.SignalBullish && bearishState,
		impact == domain.SignalBearish && bullishState:
		return fmt.Sprintf("runs counter to the current %s read", marketContext.Signal)
	default:
		return ""
	}
}
