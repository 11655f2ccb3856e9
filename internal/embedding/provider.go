// internal/embedding/provider.go
package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/EmmanuelSan01/SportBot/internal/common/config"
	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
)

var (
	ErrEmbeddingFailed   = errors.New("EMBEDDING_FAILED")
	ErrDimensionMismatch = errors.New("EMBEDDING_DIMENSION_MISMATCH")
	ErrMissingAPIKey     = errors.New("embedding provider requires an API key")
)

// embeddingAPI is the slice of the OpenAI client the provider uses.
type embeddingAPI interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Provider turns text into fixed-dimension vectors. A per-call failure is
// absorbed: the caller gets a zero vector and a warning is logged, so one
// bad document never aborts a sync batch.
type Provider struct {
	client    embeddingAPI
	model     string
	dimension int
	logger    logger.Logger
}

func NewProvider(cfg config.EmbeddingConfig, apiKey string, log logger.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension: %d", cfg.Dimension)
	}
	return &Provider{
		client:    openai.NewClient(apiKey),
		model:     cfg.Model,
		dimension: cfg.Dimension,
		logger:    log.WithFields(map[string]interface{}{"component": "embedding"}),
	}, nil
}

// NewProviderWithClient is used by tests to inject a fake API.
func NewProviderWithClient(client embeddingAPI, model string, dimension int, log logger.Logger) *Provider {
	return &Provider{client: client, model: model, dimension: dimension, logger: log}
}

// Dimension returns the configured vector size.
func (p *Provider) Dimension() int {
	return p.dimension
}

// Embed encodes a single text. On API failure it returns a zero vector of
// the configured dimension, never an error, matching the degrade-don't-abort
// contract of the sync pipeline.
func (p *Provider) Embed(ctx context.Context, text string) []float32 {
	vector, err := p.embed(ctx, text)
	if err != nil {
		p.logger.Warn("embedding failed, returning zero vector", map[string]interface{}{
			"error":     err.Error(),
			"textBytes": len(text),
		})
		return make([]float32, p.dimension)
	}
	return vector
}

// EmbedStrict encodes a single text and surfaces failures to the caller.
// The RAG path uses it so a dead provider triggers fallback instead of
// searching with a meaningless zero query vector.
func (p *Provider) EmbedStrict(ctx context.Context, text string) ([]float32, error) {
	return p.embed(ctx, text)
}

func (p *Provider) embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return make([]float32, p.dimension), nil
	}

	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(p.model),
		Dimensions: p.dimension,
	}
	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrEmbeddingFailed)
	}

	vector := resp.Data[0].Embedding
	if len(vector) != p.dimension {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrDimensionMismatch, p.dimension, len(vector))
	}
	return vector, nil
}
