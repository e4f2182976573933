// Package model holds the embedding clients. The same embedder
// configuration must serve both ingestion and query time, otherwise the
// similarity scores in the index are meaningless.
package model

import (
	"context"
	"fmt"
	"math"

	"fcajbot/config"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	ModelInfo() string
}

// NewEmbedder builds the embedder selected by the settings. A missing
// credential or endpoint is a fatal configuration error: there is no
// degraded mode without embeddings.
func NewEmbedder(cfg *config.Settings) (Embedder, error) {
	switch cfg.EmbedderType {
	case "ollama":
		if cfg.EmbeddingBaseURL == "" {
			return nil, fmt.Errorf("embedder: EMBEDDING_BASE_URL is required for ollama")
		}
		return NewOllamaEmbedder(cfg.EmbeddingBaseURL, cfg.EmbeddingModel), nil
	case "openai":
		if cfg.EmbeddingBaseURL == "" && cfg.EmbeddingAPIKey == "" {
			return nil, fmt.Errorf("embedder: EMBEDDING_API_KEY is required for a hosted endpoint")
		}
		return NewOpenAIEmbedder(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("embedder: unknown type %q", cfg.EmbedderType)
	}
}

// l2normalize scales the vector to unit length so cosine similarity
// reduces to a dot product.
func l2normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	for i, x := range v {
		v[i] = float32(float64(x) / norm)
	}
	return v
}
