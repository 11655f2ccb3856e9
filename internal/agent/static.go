// internal/agent/static.go
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
)

var ErrLLMCompletionFailed = errors.New("LLM_COMPLETION_FAILED")

// chatAPI is the slice of the OpenAI client the responders use.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// UserInfo personalizes prompts; all fields optional.
type UserInfo struct {
	FirstName string
	UserID    int64
}

// StaticResponder always produces a commercial reply. With a language model
// configured it prompts against the static catalog; without one it serves
// canned Spanish templates. It never returns an error to its caller: any
// internal failure becomes the branded error reply.
type StaticResponder struct {
	client chatAPI
	model  string
	logger logger.Logger
}

func NewStaticResponder(cfg config.OpenAIConfig, log logger.Logger) *StaticResponder {
	r := &StaticResponder{
		model:  cfg.Model,
		logger: log.WithFields(map[string]interface{}{"component": "static-responder"}),
	}
	if cfg.Configured() {
		r.client = openai.NewClient(cfg.APIKey)
		r.logger.Info("language model client initialized", map[string]interface{}{"model": cfg.Model})
	} else {
		r.logger.Warn("no language model configured, serving catalog templates only", nil)
	}
	return r
}

// NewStaticResponderWithClient is used by tests to inject a fake API.
func NewStaticResponderWithClient(client chatAPI, model string, log logger.Logger) *StaticResponder {
	return &StaticResponder{client: client, model: model, logger: log}
}

// Respond handles one message. The reply always carries a commercial emoji
// and, for short replies, an intent-specific call to action.
func (r *StaticResponder) Respond(ctx context.Context, message string, user *UserInfo) string {
	analysis := Classify(message)

	var reply string
	if r.client != nil {
		var err error
		reply, err = r.completeWithModel(ctx, message, user, analysis)
		if err != nil {
			r.logger.Error("commercial completion failed", map[string]interface{}{
				"error":  err.Error(),
				"intent": analysis.PrimaryIntent,
			})
			return commercialErrorReply
		}
	} else {
		reply = r.fallbackReply(analysis)
	}

	return postProcess(reply, analysis)
}

// Available reports whether the model-backed path can run.
func (r *StaticResponder) Available() bool {
	return r.client != nil
}

func (r *StaticResponder) completeWithModel(ctx context.Context, message string, user *UserInfo, analysis Analysis) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildCommercialPrompt(message, user, analysis)},
		},
		MaxTokens:        800,
		Temperature:      0.4,
		TopP:             0.9,
		FrequencyPenalty: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrLLMCompletionFailed)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (r *StaticResponder) fallbackReply(analysis Analysis) string {
	if reply, ok := fallbackReplies[analysis.PrimaryIntent]; ok {
		return reply
	}
	return fallbackGeneralReply
}

// buildCommercialPrompt frames the user message with intent context so the
// model answers as a product consultant, not a generic assistant.
func buildCommercialPrompt(message string, user *UserInfo, analysis Analysis) string {
	parts := []string{"CONSULTA COMERCIAL DE PRODUCTOS DE TAEKWONDO"}

	parts = append(parts,
		fmt.Sprintf("INTENCIÓN: %s", analysis.PrimaryIntent),
		fmt.Sprintf("TIPO: %s", analysis.MessageType),
	)

	if user != nil && user.FirstName != "" {
		parts = append(parts, fmt.Sprintf("CLIENTE: %s", user.FirstName))
	}

	parts = append(parts, fmt.Sprintf("CONSULTA: %s", message))

	instructions := map[string]string{
		IntentDobokInquiry:   "ENFOQUE: Recomienda doboks específicos con precios, tallas y características técnicas.",
		IntentProtection:     "ENFOQUE: Especifica protecciones necesarias según nivel, con precios y comparaciones.",
		IntentPriceInquiry:   "ENFOQUE: Proporciona rangos de precios detallados y opciones para diferentes presupuestos.",
		IntentPromotion:      "ENFOQUE: Destaca promociones actuales, packs disponibles y formas de ahorrar.",
		IntentRecommendation: "ENFOQUE: Haz recomendaciones personalizadas basadas en necesidades y presupuesto.",
		IntentBeginnerGear:   "ENFOQUE: Pack de inicio completo con presupuesto mínimo y productos esenciales.",
	}
	if inst, ok := instructions[analysis.PrimaryIntent]; ok {
		parts = append(parts, inst)
	}

	parts = append(parts, "\nIMPORTANTE: Incluye precios, promociones aplicables y alternativas para diferentes presupuestos.")
	return strings.Join(parts, "\n")
}

// postProcess enforces the commercial texture of every outgoing reply.
func postProcess(reply string, analysis Analysis) string {
	hasEmoji := false
	for _, emoji := range commercialEmojis {
		if strings.Contains(reply, emoji) {
			hasEmoji = true
			break
		}
	}
	if !hasEmoji {
		reply = "🛍️ " + reply
	}

	if cta, ok := commercialCTAs[analysis.PrimaryIntent]; ok && len(reply) < ctaMaxReplyLength {
		reply += cta
	}

	return strings.TrimSpace(reply)
}
