// internal/agent/rag.go
package agent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/redis/go-redis/v9"

	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/vectorstore"
)

var (
	ErrRetrievalUnavailable = errors.New("RETRIEVAL_UNAVAILABLE")
)

// ResultStatus tags the outcome of a retrieval-augmented attempt so the
// orchestrator can switch on it explicitly.
type ResultStatus int

const (
	// ResultOk means the reply was produced from retrieved context.
	ResultOk ResultStatus = iota
	// ResultUnavailable means a dependency (embeddings, index) could not
	// serve; the request itself was fine.
	ResultUnavailable
	// ResultFailed means the completion step errored.
	ResultFailed
)

func (s ResultStatus) String() string {
	switch s {
	case ResultOk:
		return "ok"
	case ResultUnavailable:
		return "unavailable"
	default:
		return "failed"
	}
}

// Source is one retrieved document that informed the reply.
type Source struct {
	DocID  string  `json:"doc_id"`
	Nombre string  `json:"nombre"`
	Score  float64 `json:"score"`
}

// Result is the tagged outcome of a retrieval-augmented attempt.
type Result struct {
	Status         ResultStatus `json:"-"`
	Reply          string       `json:"reply"`
	Sources        []Source     `json:"sources"`
	RelevanceScore float64      `json:"relevance_score"`
}

// QueryEmbedder encodes a user query, surfacing failures.
type QueryEmbedder interface {
	EmbedStrict(ctx context.Context, text string) ([]float32, error)
}

// Searcher is the retrieval slice of the vector index.
type Searcher interface {
	Search(ctx context.Context, vector []float32, limit int, filters map[string]interface{}) ([]vectorstore.SearchResult, error)
}

// RAGResponder answers from the synced catalog: embed the query, retrieve
// the top documents, ground a completion on them. Identical queries within
// the cache TTL are served from Redis without touching the model.
type RAGResponder struct {
	embedder QueryEmbedder
	index    Searcher
	client   chatAPI
	cache    *redis.Client
	model    string
	topK     int
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewRAGResponder(
	cfg config.OpenAIConfig,
	retrieval config.RetrievalConfig,
	embedder QueryEmbedder,
	index Searcher,
	cache *redis.Client,
	cacheTTL time.Duration,
	log logger.Logger,
) *RAGResponder {
	r := &RAGResponder{
		embedder: embedder,
		index:    index,
		cache:    cache,
		model:    cfg.Model,
		topK:     retrieval.TopK,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "rag-responder"}),
	}
	if cfg.Configured() {
		r.client = openai.NewClient(cfg.APIKey)
	}
	return r
}

// NewRAGResponderWithClient is used by tests to inject fakes.
func NewRAGResponderWithClient(
	client chatAPI,
	embedder QueryEmbedder,
	index Searcher,
	cache *redis.Client,
	model string,
	topK int,
	cacheTTL time.Duration,
	log logger.Logger,
) *RAGResponder {
	return &RAGResponder{
		embedder: embedder,
		index:    index,
		client:   client,
		cache:    cache,
		model:    model,
		topK:     topK,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// Respond runs one retrieval-augmented attempt. Sources and the relevance
// score come from the actual retrieval ranking.
func (r *RAGResponder) Respond(ctx context.Context, query string) *Result {
	if r.client == nil {
		return &Result{Status: ResultUnavailable}
	}

	if cached := r.cachedResult(ctx, query); cached != nil {
		return cached
	}

	vector, err := r.embedder.EmbedStrict(ctx, query)
	if err != nil {
		r.logger.Warn("query embedding failed", map[string]interface{}{"error": err.Error()})
		return &Result{Status: ResultUnavailable}
	}

	hits, err := r.index.Search(ctx, vector, r.topK, nil)
	if err != nil {
		r.logger.Warn("retrieval failed, no context available", map[string]interface{}{"error": err.Error()})
		return &Result{Status: ResultUnavailable}
	}

	reply, err := r.complete(ctx, query, buildContext(hits))
	if err != nil {
		r.logger.Error("grounded completion failed", map[string]interface{}{"error": err.Error()})
		return &Result{Status: ResultFailed}
	}

	result := &Result{
		Status:  ResultOk,
		Reply:   reply,
		Sources: sourcesFromHits(hits),
	}
	if len(result.Sources) > 0 {
		result.RelevanceScore = result.Sources[0].Score
	}

	r.storeResult(ctx, query, result)
	return result
}

func (r *RAGResponder) cachedResult(ctx context.Context, query string) *Result {
	if r.cache == nil {
		return nil
	}
	val, err := r.cache.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return nil
	}
	var result Result
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil
	}
	result.Status = ResultOk
	return &result
}

func (r *RAGResponder) storeResult(ctx context.Context, query string, result *Result) {
	if r.cache == nil || r.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(query), data, r.cacheTTL).Err(); err != nil {
		r.logger.Warn("reply cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "rag:reply:" + hex.EncodeToString(sum[:])
}

func (r *RAGResponder) complete(ctx context.Context, query, contextText string) (string, error) {
	userPrompt := fmt.Sprintf("Consulta: %s\n\nContexto disponible:\n%s", query, contextText)
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: ragSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   600,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrLLMCompletionFailed)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildContext turns retrieved payloads into the labeled lines the model is
// prompted with.
func buildContext(hits []vectorstore.SearchResult) string {
	if len(hits) == 0 {
		return "Sin información de productos disponible."
	}
	parts := []string{"📦 Información de productos relevantes de la base de datos:"}
	for _, hit := range hits {
		nombre := payloadString(hit.Payload, "nombre", "titulo")
		descripcion := payloadString(hit.Payload, "descripcion", "content")
		parts = append(parts, fmt.Sprintf("- %s: %s", orNA(nombre), orNA(descripcion)))
		parts = append(parts, fmt.Sprintf("  💰 Precio: %s", orNA(payloadString(hit.Payload, "precio"))))
		parts = append(parts, fmt.Sprintf("  📂 Categoría: %s", orNA(payloadString(hit.Payload, "categoria"))))
	}
	return strings.Join(parts, "\n")
}

func sourcesFromHits(hits []vectorstore.SearchResult) []Source {
	sources := make([]Source, 0, len(hits))
	for _, hit := range hits {
		sources = append(sources, Source{
			DocID:  hit.DocID,
			Nombre: payloadString(hit.Payload, "nombre", "titulo"),
			Score:  hit.Score,
		})
	}
	return sources
}

func payloadString(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := payload[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%v", v)
		case int:
			return fmt.Sprintf("%d", v)
		}
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
