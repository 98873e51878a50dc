package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"btcpulse/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// sender is the telebot surface the notifier needs.
type sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier pushes a Telegram message when the market-state label flips
// between runs. Optional: missing token or chat ID disables it.
type Notifier struct {
	bot    sender
	chatID int64
}

// NewNotifier returns nil when the bot is not configured or unreachable; a
// batch job must not die over a notification channel.
func NewNotifier(token string, chatID int64) *Notifier {
	token = strings.TrimSpace(token)
	if token == "" || chatID == 0 {
		log.Println("Telegram notifier disabled: token or chat ID not set")
		return nil
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.Printf("Warning: Telegram notifier disabled: %v", err)
		return nil
	}
	return &Notifier{bot: b, chatID: chatID}
}

func (n *Notifier) NotifyLabelChange(ctx context.Context, previous, current string, agg domain.AggregateSignal) error {
	if n == nil || n.bot == nil {
		return nil
	}

	msg := formatLabelChange(previous, current, agg)
	if _, err := n.bot.Send(tele.ChatID(n.chatID), msg); err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}
	return nil
}

func formatLabelChange(previous, current string, agg domain.AggregateSignal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s BTC market state changed: %s → %s (net score %d)\n",
		agg.Emoji, previous, current, agg.NetScore))
	for i, s := range agg.Signals {
		if i >= 3 {
			break
		}
		sb.WriteString(fmt.Sprintf("• %s\n", s.Reason))
	}
	return strings.TrimRight(sb.String(), "\n")
}
