// Package notify delivers arrival messages to the monitoring chat.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"arrivals.chinatownlogistic.com/internal/appconf"
	"arrivals.chinatownlogistic.com/internal/logging"
)

// Telegram sends messages through the Bot API sendMessage method.
type Telegram struct {
	config appconf.TelegramConfig
	client *http.Client
	logger *slog.Logger
}

func NewTelegram(config appconf.TelegramConfig, logger *slog.Logger) *Telegram {
	return &Telegram{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Notify posts message to the configured chat. Delivery is attempted once.
func (t *Telegram) Notify(ctx context.Context, message string) error {
	if t.config.Token == "" || t.config.ChatID == "" {
		return fmt.Errorf("telegram notifier is not configured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(t.config.BaseURL, "/"), t.config.Token)
	form := url.Values{
		"chat_id": {t.config.ChatID},
		"text":    {message},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		// the URL embeds the bot token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("telegram request failed: %w", urlErr.Err)
		}
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, t.logger, "telegram_response")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}
