package domain

import "time"

// Symbol is the only tracked asset pair. The pipeline is deliberately
// single-asset; every provider and rule assumes BTC.
const Symbol = "BTCUSDT"

// Directional tags shared across indicators.
const (
	SignalBullish = "bullish"
	SignalBearish = "bearish"
	SignalNeutral = "neutral"
)

// Market-state labels produced by the classifier.
const (
	LabelStrongAccumulation = "strong_accumulation"
	LabelAccumulation       = "accumulation"
	LabelNeutral            = "neutral"
	LabelDistribution       = "distribution"
	LabelStrongDistribution = "strong_distribution"
)

// FearGreed is the normalized sentiment-index record.
// History holds the last 7 daily values, most recent first.
type FearGreed struct {
	Value          int    `json:"value"`
	Classification string `json:"classification"`
	Change24h      int    `json:"change24h"`
	Change7d       int    `json:"change7d"`
	Change30d      int    `json:"change30d"`
	History        []int  `json:"history"`
	Signal         string `json:"signal"`
}

// Hashrate trend values.
const (
	TrendRising   = "rising"
	TrendStable   = "stable"
	TrendFalling  = "falling"
	TrendDropping = "dropping"
	TrendCrashing = "crashing"
	TrendUnknown  = "unknown"
)

type Hashrate struct {
	CurrentEHs     float64 `json:"currentEHs"`
	Change24h      float64 `json:"change24h"`
	Change7d       float64 `json:"change7d"`
	ChangeFromPeak float64 `json:"changeFromPeak"`
	Trend          string  `json:"trend"`
	Signal         string  `json:"signal"`
	Interpretation string  `json:"interpretation"`
}

// LongShort captures futures account positioning plus the taker flow ratio.
type LongShort struct {
	LongPct     float64 `json:"longPct"`
	ShortPct    float64 `json:"shortPct"`
	Ratio       float64 `json:"ratio"`
	Signal      string  `json:"signal"` // squeeze_possible | dump_possible | neutral
	TakerRatio  float64 `json:"takerRatio"`
	TakerSignal string  `json:"takerSignal"` // bullish | bearish | neutral
}

const (
	SignalSqueezePossible = "squeeze_possible"
	SignalDumpPossible    = "dump_possible"
)

type OpenInterest struct {
	TotalBTC  float64 `json:"totalBTC"`
	TotalUSD  float64 `json:"totalUSD"`
	Change24h float64 `json:"change24h"`
	Trend     string  `json:"trend"`  // rising | falling | stable
	Signal    string  `json:"signal"` // high_leverage | deleveraging | normal
}

const (
	SignalHighLeverage = "high_leverage"
	SignalDeleveraging = "deleveraging"
	SignalNormal       = "normal"
)

// Funding rates are expressed in percent (0.01 == 0.01% per period).
type Funding struct {
	CurrentPct float64 `json:"currentPct"`
	MarkPrice  float64 `json:"markPrice"`
	Sentiment  string  `json:"sentiment"` // overleveraged_long | overleveraged_short | balanced
	Signal     string  `json:"signal"`    // correction_likely | bounce_likely | neutral
}

const (
	SentimentOverleveragedLong  = "overleveraged_long"
	SentimentOverleveragedShort = "overleveraged_short"
	SentimentBalanced           = "balanced"
	SignalCorrectionLikely      = "correction_likely"
	SignalBounceLikely          = "bounce_likely"
)

type Liquidations struct {
	Long24hUSD  float64 `json:"long24hUSD"`
	Short24hUSD float64 `json:"short24hUSD"`
	Long1hUSD   float64 `json:"long1hUSD"`
	Short1hUSD  float64 `json:"short1hUSD"`
	Total24hUSD float64 `json:"total24hUSD"`
	Count24h    int     `json:"count24h"`
	Signal      string  `json:"signal"`    // longs_rekt | shorts_rekt | balanced
	Intensity   string  `json:"intensity"` // extreme | high | moderate | low
}

const (
	SignalLongsRekt  = "longs_rekt"
	SignalShortsRekt = "shorts_rekt"

	IntensityExtreme  = "extreme"
	IntensityHigh     = "high"
	IntensityModerate = "moderate"
	IntensityLow      = "low"
)

// COTCategory is one position-holder class from the weekly CFTC report.
type COTCategory struct {
	Long     int     `json:"long"`
	Short    int     `json:"short"`
	Net      int     `json:"net"`
	LongPct  float64 `json:"longPct"`
	ShortPct float64 `json:"shortPct"`
	Signal   string  `json:"signal"`
}

type COT struct {
	ReportDate   string      `json:"reportDate"`
	Dealers      COTCategory `json:"dealers"`
	Institutions COTCategory `json:"institutions"`
	HedgeFunds   COTCategory `json:"hedgeFunds"`
	Retail       COTCategory `json:"retail"`
	Source       string      `json:"source"` // cftc | reference
}

// ETFFlows carries net flows in millions of USD. It has no derived signal of
// its own; the aggregator applies literal thresholds directly.
type ETFFlows struct {
	DailyNetM  float64 `json:"dailyNetM"`
	WeeklyNetM float64 `json:"weeklyNetM"`
	AsOf       string  `json:"asOf"`
	Source     string  `json:"source"`
}

// PriceLevels is the 14-day candle window reduced to tradable levels.
type PriceLevels struct {
	Price       float64   `json:"price"`
	WeekHigh    float64   `json:"weekHigh"`
	WeekLow     float64   `json:"weekLow"`
	SwingHigh   float64   `json:"swingHigh"`
	SwingLow    float64   `json:"swingLow"`
	Supports    []float64 `json:"supports"`
	Resistances []float64 `json:"resistances"`
	Bias        string    `json:"bias"` // above_mid | below_mid
}

const (
	BiasAboveMid = "above_mid"
	BiasBelowMid = "below_mid"
)

// IndicatorSet is everything a single run managed to normalize. A nil field
// means the source failed this run and must contribute nothing downstream.
type IndicatorSet struct {
	FearGreed    *FearGreed    `json:"fearGreed,omitempty"`
	Hashrate     *Hashrate     `json:"hashrate,omitempty"`
	LongShort    *LongShort    `json:"longShort,omitempty"`
	OpenInterest *OpenInterest `json:"openInterest,omitempty"`
	Funding      *Funding      `json:"funding,omitempty"`
	Liquidations *Liquidations `json:"liquidations,omitempty"`
	COT          *COT          `json:"cot,omitempty"`
	ETFFlows     *ETFFlows     `json:"etfFlows,omitempty"`
	Levels       *PriceLevels  `json:"levels,omitempty"`
}

// SignalEntry is one triggered aggregation rule.
type SignalEntry struct {
	Type   string `json:"type"`
	Weight int    `json:"weight"`
	Reason string `json:"reason"`
}

type AggregateSignal struct {
	BullScore int           `json:"bullScore"`
	BearScore int           `json:"bearScore"`
	NetScore  int           `json:"netScore"`
	Signals   []SignalEntry `json:"signals"`
	Label     string        `json:"label"`
	Emoji     string        `json:"emoji"`
}

type PlanBias struct {
	Direction string `json:"direction"` // long | short | hold
	Strength  string `json:"strength"`  // strong | moderate | weak
}

type PlanLevels struct {
	EntryLow     float64   `json:"entryLow"`
	EntryHigh    float64   `json:"entryHigh"`
	Invalidation float64   `json:"invalidation"`
	Targets      []float64 `json:"targets"`
}

type PlanFactor struct {
	Priority string `json:"priority"` // primary | secondary | supporting
	Type     string `json:"type"`
	Reason   string `json:"reason"`
}

type TradingPlan struct {
	Bias    PlanBias     `json:"bias"`
	Horizon string       `json:"horizon"`
	Levels  PlanLevels   `json:"levels"`
	Factors []PlanFactor `json:"factors"`
	Risk    string       `json:"risk"`
}

// MarketDocument is the per-run artifact the static dashboard reads.
type MarketDocument struct {
	UpdatedAt    time.Time       `json:"updatedAt"`
	Symbol       string          `json:"symbol"`
	Price        float64         `json:"price"`
	FearGreed    *FearGreed      `json:"fearGreed,omitempty"`
	Hashrate     *Hashrate       `json:"hashrate,omitempty"`
	LongShort    *LongShort      `json:"longShort,omitempty"`
	OpenInterest *OpenInterest   `json:"openInterest,omitempty"`
	Funding      *Funding        `json:"funding,omitempty"`
	Liquidations *Liquidations   `json:"liquidations,omitempty"`
	COT          *COT            `json:"cot,omitempty"`
	ETFFlows     *ETFFlows       `json:"etfFlows,omitempty"`
	Levels       *PriceLevels    `json:"levels,omitempty"`
	Analysis     AggregateSignal `json:"analysis"`
	TradingPlan  *TradingPlan    `json:"tradingPlan,omitempty"`
	Story        string          `json:"story"`
}

// NewsItem is one annotated headline in the news artifact.
type NewsItem struct {
	Title         string    `json:"title"`
	TitleOriginal string    `json:"titleOriginal"`
	Summary       string    `json:"summary"`
	Impact        string    `json:"impact"`      // bullish | bearish | neutral
	PriceEffect   string    `json:"priceEffect"` // up | down | flat
	ContextLink   string    `json:"contextLink"`
	Importance    int       `json:"importance"` // 1 (low) .. 3 (high)
	Source        string    `json:"source"`
	Link          string    `json:"link"`
	Date          time.Time `json:"date"`
}

// NewsContext is the previous run's market state attached to the news feed.
type NewsContext struct {
	FearGreed       int     `json:"fearGreed"`
	HedgeFundsShort float64 `json:"hedgeFundsShort"`
	Signal          string  `json:"signal"`
}

type NewsDocument struct {
	UpdatedAt time.Time    `json:"updatedAt"`
	Context   *NewsContext `json:"context,omitempty"`
	Narrative string       `json:"narrative,omitempty"`
	News      []NewsItem   `json:"news"`
}

// Candle represents a single OHLCV candle.
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// ForceOrder is one raw liquidation order as reported by the exchange.
// Side BUY closes a short position, SELL closes a long.
type ForceOrder struct {
	Side     string    `json:"side"`
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	Time     time.Time `json:"time"`
}

// RunResult summarizes one pipeline cycle. Errors are non-fatal per-source
// failures; the cycle itself only fails on the final write.
type RunResult struct {
	IndicatorsOK   int      `json:"indicators_ok"`
	IndicatorsFail int      `json:"indicators_fail"`
	Label          string   `json:"label"`
	NetScore       int      `json:"net_score"`
	StoryFromLLM   bool     `json:"story_from_llm"`
	Errors         []string `json:"errors,omitempty"`
}

// NewsRunResult summarizes one news cycle.
type NewsRunResult struct {
	ItemsFetched   int      `json:"items_fetched"`
	ItemsAnnotated int      `json:"items_annotated"`
	LLMUsed        bool     `json:"llm_used"`
	Errors         []string `json:"errors,omitempty"`
}
