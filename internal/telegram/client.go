// internal/telegram/client.go
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	apperrors "github.com/EmmanuelSan01/SportBot/internal/common/errors"
	"github.com/EmmanuelSan01/SportBot/internal/common/httpx"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/models"
)

var ErrTelegramSendFailed = errors.New("TELEGRAM_SEND_FAILED")

const telegramAPIBase = "https://api.telegram.org"

// Client sends messages through the Telegram Bot API.
type Client struct {
	baseURL string
	http    *httpx.Client
	logger  logger.Logger
}

func NewClient(cfg config.TelegramConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if cfg.Timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: fmt.Sprintf("%s/bot%s", telegramAPIBase, cfg.BotToken),
		http:    httpx.NewClient(timeout),
		logger:  log,
	}
}

// SendMessage delivers text to a chat, optionally as a reply to a previous
// message (replyTo <= 0 sends a plain message). Transport failures are
// retried per the delivery error policy; Bot API error statuses are not,
// since a rejected payload stays rejected.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) error {
	body := models.TelegramSendMessage{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	}
	if replyTo > 0 {
		body.ReplyToMessageID = replyTo
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTelegramSendFailed, err)
	}

	attempts := 1 + apperrors.GetRetryCount(apperrors.ErrCodeTelegramSendFailed)
	var resp *http.Response
	for attempt := 1; attempt <= attempts; attempt++ {
		req, reqErr := http.NewRequest(http.MethodPost, c.baseURL+"/sendMessage", bytes.NewReader(payload))
		if reqErr != nil {
			return fmt.Errorf("%w: %v", ErrTelegramSendFailed, reqErr)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.http.DoWithContext(ctx, req)
		if err == nil {
			break
		}
		c.logger.Warn("telegram send attempt failed", map[string]interface{}{
			"chat_id": chatID,
			"attempt": attempt,
			"error":   err.Error(),
		})
		if attempt == attempts || ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTelegramSendFailed, err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrTelegramSendFailed, resp.StatusCode, string(snippet))
	}

	c.logger.Debug("telegram message sent", map[string]interface{}{
		"chat_id":  chatID,
		"reply_to": replyTo,
	})
	return nil
}
