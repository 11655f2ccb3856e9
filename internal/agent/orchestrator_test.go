package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
)

type stubRAG struct{ result *Result }

func (s *stubRAG) Respond(ctx context.Context, query string) *Result { return s.result }

type stubFallback struct {
	reply string
	calls int
}

func (s *stubFallback) Respond(ctx context.Context, message string, user *UserInfo) string {
	s.calls++
	return s.reply
}

func TestOrchestrator_RAGAnswers(t *testing.T) {
	rag := &stubRAG{result: &Result{
		Status:         ResultOk,
		Reply:          "respuesta con contexto",
		Sources:        []Source{{DocID: "producto_1", Score: 0.9}},
		RelevanceScore: 0.9,
	}}
	fallback := &stubFallback{reply: "nunca"}
	o := NewOrchestrator(rag, fallback, logger.NewTestLogger(t))

	reply := o.Process(context.Background(), "¿Qué doboks tienen?", nil)

	assert.Equal(t, TierRAG, reply.Tier)
	assert.Equal(t, "respuesta con contexto", reply.Text)
	assert.Equal(t, 0.9, reply.RelevanceScore)
	require.Len(t, reply.Sources, 1)
	assert.Zero(t, fallback.calls)
}

func TestOrchestrator_FallbackOnUnavailable(t *testing.T) {
	rag := &stubRAG{result: &Result{Status: ResultUnavailable}}
	fallback := &stubFallback{reply: "🛍️ respuesta estática"}
	o := NewOrchestrator(rag, fallback, logger.NewTestLogger(t))

	reply := o.Process(context.Background(), "hola", nil)

	assert.Equal(t, TierFallback, reply.Tier)
	assert.Equal(t, "🛍️ respuesta estática", reply.Text)
	assert.Equal(t, IntentGreeting, reply.Intent)
	assert.Empty(t, reply.Sources)
	assert.Equal(t, 1, fallback.calls)
}

func TestOrchestrator_FallbackOnFailed(t *testing.T) {
	rag := &stubRAG{result: &Result{Status: ResultFailed}}
	fallback := &stubFallback{reply: "🛍️ plan B"}
	o := NewOrchestrator(rag, fallback, logger.NewTestLogger(t))

	reply := o.Process(context.Background(), "busco un dobok", nil)

	assert.Equal(t, TierFallback, reply.Tier)
	assert.Equal(t, IntentDobokInquiry, reply.Intent)
	assert.Equal(t, 1, fallback.calls)
}
