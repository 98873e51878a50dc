package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	OutputDir        string
	FetchTimeoutSecs int
	PollSecs         int

	OpenAIAPIKey string
	OpenAIModel  string

	RedisURL string

	TelegramBotToken string
	TelegramChatID   int64

	NewsFeeds     []string
	NewsItemLimit int

	MaxSignals   int
	RankByWeight bool

	ServePort int
}

var defaultNewsFeeds = []string{
	"https://www.coindesk.com/arc/outboundfeeds/rss/",
	"https://cointelegraph.com/rss",
}

func Load() *Config {
	cfg := &Config{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.OutputDir = strings.TrimSpace(os.Getenv("OUTPUT_DIR"))
	if cfg.OutputDir == "" {
		cfg.OutputDir = "public/data"
	}

	cfg.FetchTimeoutSecs = 12
	if v := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutSecs = n
		}
	}

	cfg.PollSecs = 900
	if v := strings.TrimSpace(os.Getenv("PULSE_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollSecs = n
		}
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, narrative falls back to templates")
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	if v := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = n
		} else {
			log.Printf("Warning: invalid TELEGRAM_CHAT_ID %q, alerts disabled", v)
		}
	}

	cfg.NewsFeeds = defaultNewsFeeds
	if v := strings.TrimSpace(os.Getenv("NEWS_FEEDS")); v != "" {
		feeds := make([]string, 0, 4)
		for _, feed := range strings.Split(v, ",") {
			if feed = strings.TrimSpace(feed); feed != "" {
				feeds = append(feeds, feed)
			}
		}
		if len(feeds) > 0 {
			cfg.NewsFeeds = feeds
		}
	}

	cfg.NewsItemLimit = 12
	if v := strings.TrimSpace(os.Getenv("NEWS_ITEM_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.NewsItemLimit = n
		}
	}

	cfg.MaxSignals = 5
	if v := strings.TrimSpace(os.Getenv("MAX_SIGNALS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSignals = n
		}
	}

	cfg.RankByWeight = strings.EqualFold(strings.TrimSpace(os.Getenv("RANK_SIGNALS_BY_WEIGHT")), "true")

	cfg.ServePort = 8080
	if v := strings.TrimSpace(os.Getenv("SERVE_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ServePort = n
		}
	}

	return cfg
}
