package provider

import "time"

// FearGreedPoint is one daily reading of the alternative.me index.
type FearGreedPoint struct {
	Value          int
	Classification string
	Timestamp      time.Time
}

// HashrateSample is one daily network hashrate sample in H/s.
type HashrateSample struct {
	Timestamp time.Time
	Hashrate  float64
}

// HashrateWindow is the raw one-month hashrate series plus the live value.
type HashrateWindow struct {
	Current float64
	Samples []HashrateSample
}

// LongShortPoint is one bucket of the global account long/short ratio.
// Percentages are 0-100.
type LongShortPoint struct {
	LongPct  float64
	ShortPct float64
	Ratio    float64
}

// TakerRatioPoint is one bucket of the taker buy/sell volume ratio.
type TakerRatioPoint struct {
	BuySellRatio float64
	BuyVolume    float64
	SellVolume   float64
}

// OpenInterestPoint is one open-interest statistics bucket.
type OpenInterestPoint struct {
	Timestamp time.Time
	TotalBTC  float64
	TotalUSD  float64
}

// FundingPoint is the current premium-index reading.
type FundingPoint struct {
	RatePct   float64 // percent, e.g. 0.01 == 0.01%
	MarkPrice float64
}

// COTReport is the raw weekly Traders-in-Financial-Futures row for BTC.
type COTReport struct {
	ReportDate        time.Time
	DealerLong        int
	DealerShort       int
	AssetManagerLong  int
	AssetManagerShort int
	LeveragedLong     int
	LeveragedShort    int
	NonReportableLong  int
	NonReportableShort int
}

// ETFFlowPoint is a spot-ETF net-flow reading in millions of USD.
type ETFFlowPoint struct {
	DailyNetM  float64
	WeeklyNetM float64
	AsOf       time.Time
}

// ContentItem is one fetched news entry before annotation.
type ContentItem struct {
	Source      string
	Title       string
	URL         string
	Excerpt     string
	PublishedAt time.Time
}
