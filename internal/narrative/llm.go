package narrative

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"btcpulse/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

const defaultTimeout = 30 * time.Second

// Generator produces the market story. With a nil client it always uses the
// deterministic template; with a client it makes exactly one model attempt
// per run and falls back on any failure.
type Generator struct {
	llm     LLMClient
	model   string
	timeout time.Duration
}

func NewGenerator(llm LLMClient, model string, timeout time.Duration) *Generator {
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Generator{llm: llm, model: model, timeout: timeout}
}

// NewOpenAIClient returns nil when no key is configured, which keeps the
// generator on the template path.
func NewOpenAIClient(apiKey string) LLMClient {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openAIClient{client: client}
}

// Narrate returns the story and whether it came from the model.
func (g *Generator) Narrate(ctx context.Context, set domain.IndicatorSet, agg domain.AggregateSignal) (string, bool) {
	fallback := Template(set, agg)
	if g == nil || g.llm == nil {
		return fallback, false
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	completion, err := g.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(set, agg)),
		},
	})
	if err != nil {
		log.Printf("narrative model call failed, using template: %v", err)
		return fallback, false
	}
	if len(completion.Choices) == 0 {
		log.Println("narrative model returned no choices, using template")
		return fallback, false
	}

	story := strings.TrimSpace(completion.Choices[0].Message.Content)
	if story == "" {
		return fallback, false
	}
	return story, true
}

const systemPrompt = "You write short, plain-language BTC market commentary for a dashboard. " +
	"Two or three sentences, no hype, no financial advice disclaimers, no markdown."

func buildPrompt(set domain.IndicatorSet, agg domain.AggregateSignal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Market state: %s (net score %d, bull %d, bear %d).\n",
		agg.Label, agg.NetScore, agg.BullScore, agg.BearScore))

	if fg := set.FearGreed; fg != nil {
		sb.WriteString(fmt.Sprintf("Fear & Greed: %d (%s), 24h change %+d.\n", fg.Value, fg.Classification, fg.Change24h))
	}
	if cot := set.COT; cot != nil {
		sb.WriteString(fmt.Sprintf("Hedge funds short: %.0f%% of futures book.\n", cot.HedgeFunds.ShortPct))
	}
	if etf := set.ETFFlows; etf != nil {
		sb.WriteString(fmt.Sprintf("ETF flows: %+.0fM daily, %+.0fM weekly.\n", etf.DailyNetM, etf.WeeklyNetM))
	}
	if f := set.Funding; f != nil {
		sb.WriteString(fmt.Sprintf("Funding rate: %.3f%% (%s).\n", f.CurrentPct, f.Sentiment))
	}
	if h := set.Hashrate; h != nil {
		sb.WriteString(fmt.Sprintf("Hashrate: %.0f EH/s, trend %s.\n", h.CurrentEHs, h.Trend))
	}

	sb.WriteString("Top signals:\n")
	for _, s := range agg.Signals {
		sb.WriteString(fmt.Sprintf("- %s (weight %d): %s\n", s.Type, s.Weight, s.Reason))
	}
	return sb.String()
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
