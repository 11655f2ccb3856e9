// internal/agent/orchestrator.go
package agent

import (
	"context"

	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/common/metrics"
)

// Tier labels which responder produced a reply.
const (
	TierRAG      = "rag"
	TierFallback = "fallback"
)

// Reply is the orchestrated answer for one user message.
type Reply struct {
	Text           string   `json:"reply"`
	Tier           string   `json:"tier"`
	Intent         string   `json:"intent"`
	MessageType    string   `json:"message_type"`
	Sources        []Source `json:"sources"`
	RelevanceScore float64  `json:"relevance_score"`
}

// RAG is the retrieval-augmented tier seen by the orchestrator.
type RAG interface {
	Respond(ctx context.Context, query string) *Result
}

// Fallback is the always-answers tier.
type Fallback interface {
	Respond(ctx context.Context, message string, user *UserInfo) string
}

// Orchestrator tries the retrieval-augmented responder once, then the
// rule-based responder on anything but a clean success. The user always
// gets a reply.
type Orchestrator struct {
	rag      RAG
	fallback Fallback
	logger   logger.Logger
}

func NewOrchestrator(rag RAG, fallback Fallback, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		rag:      rag,
		fallback: fallback,
		logger:   log.WithFields(map[string]interface{}{"component": "orchestrator"}),
	}
}

// Process answers one message, recording which tier served it.
func (o *Orchestrator) Process(ctx context.Context, message string, user *UserInfo) *Reply {
	analysis := Classify(message)

	result := o.rag.Respond(ctx, message)
	switch result.Status {
	case ResultOk:
		return &Reply{
			Text:           result.Reply,
			Tier:           TierRAG,
			Intent:         analysis.PrimaryIntent,
			MessageType:    analysis.MessageType,
			Sources:        result.Sources,
			RelevanceScore: result.RelevanceScore,
		}
	case ResultUnavailable, ResultFailed:
		o.logger.Info("falling back to rule-based responder", map[string]interface{}{
			"reason": result.Status.String(),
			"intent": analysis.PrimaryIntent,
		})
		metrics.FallbackResponses.WithLabelValues(result.Status.String()).Inc()
	}

	return &Reply{
		Text:        o.fallback.Respond(ctx, message, user),
		Tier:        TierFallback,
		Intent:      analysis.PrimaryIntent,
		MessageType: analysis.MessageType,
		Sources:     []Source{},
	}
}
