package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("FETCH_TIMEOUT_SECS", "")
	t.Setenv("PULSE_POLL_SECS", "")
	t.Setenv("NEWS_FEEDS", "")
	t.Setenv("MAX_SIGNALS", "")
	t.Setenv("RANK_SIGNALS_BY_WEIGHT", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg := Load()
	if cfg.OutputDir != "public/data" {
		t.Fatalf("unexpected output dir: %s", cfg.OutputDir)
	}
	if cfg.FetchTimeoutSecs != 12 {
		t.Fatalf("unexpected fetch timeout: %d", cfg.FetchTimeoutSecs)
	}
	if cfg.PollSecs != 900 {
		t.Fatalf("unexpected poll secs: %d", cfg.PollSecs)
	}
	if cfg.MaxSignals != 5 || cfg.RankByWeight {
		t.Fatalf("unexpected signal truncation config: %d %v", cfg.MaxSignals, cfg.RankByWeight)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %s", cfg.OpenAIModel)
	}
	if len(cfg.NewsFeeds) != 2 {
		t.Fatalf("expected default feeds, got %v", cfg.NewsFeeds)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("FETCH_TIMEOUT_SECS", "5")
	t.Setenv("NEWS_FEEDS", "https://a.example/rss, https://b.example/rss ,")
	t.Setenv("MAX_SIGNALS", "7")
	t.Setenv("RANK_SIGNALS_BY_WEIGHT", "TRUE")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	cfg := Load()
	if cfg.OutputDir != "/tmp/out" {
		t.Fatalf("unexpected output dir: %s", cfg.OutputDir)
	}
	if cfg.FetchTimeoutSecs != 5 {
		t.Fatalf("unexpected fetch timeout: %d", cfg.FetchTimeoutSecs)
	}
	if len(cfg.NewsFeeds) != 2 || cfg.NewsFeeds[1] != "https://b.example/rss" {
		t.Fatalf("unexpected feeds: %v", cfg.NewsFeeds)
	}
	if cfg.MaxSignals != 7 || !cfg.RankByWeight {
		t.Fatalf("unexpected truncation config: %d %v", cfg.MaxSignals, cfg.RankByWeight)
	}
	if cfg.TelegramChatID != -100123 {
		t.Fatalf("unexpected chat id: %d", cfg.TelegramChatID)
	}
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_SECS", "zero")
	t.Setenv("PULSE_POLL_SECS", "-4")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	cfg := Load()
	if cfg.FetchTimeoutSecs != 12 || cfg.PollSecs != 900 {
		t.Fatalf("invalid values should fall back to defaults: %+v", cfg)
	}
	if cfg.TelegramChatID != 0 {
		t.Fatalf("invalid chat id should disable alerts, got %d", cfg.TelegramChatID)
	}
}
