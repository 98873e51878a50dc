package news

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"btcpulse/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Annotation is one model-refined headline, addressed by list index.
type Annotation struct {
	Index       int    `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Impact      string `json:"impact"`
	PriceEffect string `json:"priceEffect"`
	Importance  int    `json:"importance"`
}

// BatchAnnotator refines heuristic annotations with a language model.
type BatchAnnotator interface {
	AnnotateBatch(ctx context.Context, items []domain.NewsItem) ([]Annotation, error)
}

type openAIChatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type OpenAIAnnotator struct {
	client openAIChatClient
	model  string
}

// NewOpenAIAnnotator returns nil without an API key, which keeps the service
// on heuristic annotations alone.
func NewOpenAIAnnotator(apiKey, model string) *OpenAIAnnotator {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIAnnotator{client: &openAIClient{client: client}, model: model}
}

const annotatorSystemPrompt = "You annotate BTC news headlines for a dashboard. Return ONLY a JSON array. " +
	"Each object requires: id (int, echo the given id), title (clear rewrite, max 90 chars), " +
	"summary (one sentence), impact (bullish|bearish|neutral), priceEffect (up|down|flat), " +
	"importance (1..3). No markdown."

func (a *OpenAIAnnotator) AnnotateBatch(ctx context.Context, items []domain.NewsItem) ([]Annotation, error) {
	if a == nil || a.client == nil || len(items) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("id=%d\n", i))
		sb.WriteString(fmt.Sprintf("title=%s\n", strings.TrimSpace(item.TitleOriginal)))
		sb.WriteString(fmt.Sprintf("summary=%s\n\n", strings.TrimSpace(item.Summary)))
	}

	completion, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: a.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(annotatorSystemPrompt),
			openai.UserMessage("Items:\n" + sb.String()),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty annotator completion")
	}

	raw := trimCodeFence(strings.TrimSpace(completion.Choices[0].Message.Content))

	var parsed []Annotation
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse annotator json: %w", err)
	}

	out := make([]Annotation, 0, len(parsed))
	for _, row := range parsed {
		if row.Index < 0 || row.Index >= len(items) {
			continue
		}
		row.Impact = normalizeImpact(row.Impact)
		row.PriceEffect = normalizePriceEffect(row.PriceEffect)
		if row.Importance < 1 || row.Importance > 3 {
			row.Importance = 1
		}
		out = append(out, row)
	}
	return out, nil
}

func normalizeImpact(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "bull", "bullish", "positive":
		return domain.SignalBullish
	case "bear", "bearish", "negative":
		return domain.SignalBearish
	default:
		return domain.SignalNeutral
	}
}

func normalizePriceEffect(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "up", "rise":
		return "up"
	case "down", "drop":
		return "down"
	default:
		return "flat"
	}
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
