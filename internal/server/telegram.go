// internal/server/telegram.go
package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/EmmanuelSan01/SportBot/internal/common/validation"
	"github.com/EmmanuelSan01/SportBot/internal/models"
)

const maxWebhookBodyBytes = 256 * 1024

// handleTelegramWebhook acknowledges every well-formed update with 200.
// Processing failures are handled inside the processor (the user gets an
// error message in the chat); returning non-200 would only make Telegram
// retry an update that already failed.
func (s *Server) handleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	if err := validation.ValidateJSON(validation.WebhookUpdateSchema, body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var update models.TelegramUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	s.deps.Webhook.HandleUpdate(r.Context(), &update)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTelegramHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "telegram_bot",
	})
}
