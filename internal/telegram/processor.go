// internal/telegram/processor.go
package telegram

import (
	"context"
	"strconv"

	"github.com/EmmanuelSan01/SportBot/internal/agent"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/common/metrics"
	"github.com/EmmanuelSan01/SportBot/internal/models"
	"github.com/EmmanuelSan01/SportBot/internal/session"
)

const processingErrorReply = "🚫 Ups! Algo salió mal. Nuestro equipo técnico ya está trabajando en solucionarlo. Por favor, intenta de nuevo en unos minutos."

// Responder produces the bot reply for an incoming message.
type Responder interface {
	Process(ctx context.Context, message string, user *agent.UserInfo) *agent.Reply
}

// Sender delivers outbound messages to the chat platform.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string, replyTo int64) error
}

// ConversationLog persists a conversation turn.
type ConversationLog interface {
	RecordMessage(ctx context.Context, usuarioID int64, chatID, mensaje string) (*models.Chat, error)
}

// Processor handles incoming webhook updates: it tracks the session, asks
// the agent for a reply and sends it back to the originating chat. It never
// surfaces an error to the webhook caller; Telegram retries failed webhooks
// and a retry of a processing failure would only fail again.
type Processor struct {
	sessions *session.Store
	agent    Responder
	sender   Sender
	chats    ConversationLog
	logger   logger.Logger
}

func NewProcessor(sessions *session.Store, responder Responder, sender Sender, chats ConversationLog, log logger.Logger) *Processor {
	return &Processor{
		sessions: sessions,
		agent:    responder,
		sender:   sender,
		chats:    chats,
		logger:   log,
	}
}

// HandleUpdate processes one webhook update. Updates without a text message
// or a sender are acknowledged and dropped.
func (p *Processor) HandleUpdate(ctx context.Context, update *models.TelegramUpdate) {
	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	if msg == nil {
		p.logger.Debug("update without message, skipping", map[string]interface{}{
			"update_id": update.UpdateID,
		})
		return
	}
	if msg.Text == "" || msg.From == nil {
		p.logger.Warn("message without text or sender, skipping", map[string]interface{}{
			"update_id": update.UpdateID,
			"chat_id":   msg.Chat.ID,
		})
		return
	}

	user := msg.From
	sess := p.sessions.Touch(user.ID, msg.Chat.ID, user.Username, user.FirstName, user.LastName)

	reply := p.agent.Process(ctx, msg.Text, &agent.UserInfo{
		FirstName: user.FirstName,
		UserID:    user.ID,
	})
	metrics.MessagesProcessed.WithLabelValues("telegram", reply.Intent).Inc()

	if err := p.sender.SendMessage(ctx, msg.Chat.ID, reply.Text, msg.MessageID); err != nil {
		p.logger.WithError(err).Error("failed to deliver reply", map[string]interface{}{
			"chat_id":   msg.Chat.ID,
			"update_id": update.UpdateID,
		})
		// Best effort: tell the user something went wrong. If the API is
		// down this fails too and there is nothing more to do.
		if sendErr := p.sender.SendMessage(ctx, msg.Chat.ID, processingErrorReply, 0); sendErr != nil {
			p.logger.WithError(sendErr).Error("failed to deliver error notice", map[string]interface{}{
				"chat_id": msg.Chat.ID,
			})
		}
		return
	}

	if _, err := p.chats.RecordMessage(ctx, user.ID, strconv.FormatInt(msg.Chat.ID, 10), msg.Text); err != nil {
		p.logger.WithError(err).Warn("failed to record conversation turn", map[string]interface{}{
			"usuario_id": user.ID,
			"chat_id":    msg.Chat.ID,
		})
	}

	p.logger.Info("telegram message processed", map[string]interface{}{
		"usuario_id":    user.ID,
		"chat_id":       msg.Chat.ID,
		"intent":        reply.Intent,
		"tier":          reply.Tier,
		"message_count": sess.MessageCount,
	})
}
