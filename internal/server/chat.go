// internal/server/chat.go
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/EmmanuelSan01/SportBot/internal/agent"
	apperrors "github.com/EmmanuelSan01/SportBot/internal/common/errors"
	"github.com/EmmanuelSan01/SportBot/internal/common/metrics"
	"github.com/EmmanuelSan01/SportBot/internal/common/validation"
)

const maxChatBodyBytes = 64 * 1024

type chatMessageRequest struct {
	Mensaje   string `json:"mensaje"`
	UsuarioID int64  `json:"usuario_id"`
	ChatID    string `json:"chat_id"`
}

// handleChatMessage answers one user message through the conversational
// pipeline. The payload is schema-validated before it reaches the agent, so
// empty messages are rejected here rather than producing a fallback reply.
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxChatBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	if err := validation.ValidateJSON(validation.ChatRequestSchema, body); err != nil {
		writeStandardError(w, http.StatusUnprocessableEntity,
			apperrors.NewValidationFailedError(err.Error()))
		return
	}

	var req chatMessageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	reply := s.deps.Orchestrator.Process(r.Context(), req.Mensaje, &agent.UserInfo{
		UserID: req.UsuarioID,
	})
	metrics.MessagesProcessed.WithLabelValues("api", reply.Intent).Inc()

	if _, err := s.deps.Chats.RecordMessage(r.Context(), req.UsuarioID, req.ChatID, req.Mensaje); err != nil {
		s.logger.WithError(err).Warn("failed to record conversation turn", map[string]interface{}{
			"usuario_id": req.UsuarioID,
			"chat_id":    req.ChatID,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "mensaje procesado",
		"data":    reply,
	})
}

func (s *Server) handleChatsByUsuario(w http.ResponseWriter, r *http.Request) {
	usuarioID, err := strconv.ParseInt(r.PathValue("usuarioID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid usuario id")
		return
	}
	chats, err := s.deps.Chats.ListByUsuario(r.Context(), usuarioID)
	if err != nil {
		writeStoreError(w, "chat", 0, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}
