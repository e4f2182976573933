// Package store persists the vector index and serves nearest-neighbor
// candidates over it. The index is written once by ingestion and treated
// as read-only afterwards.
package store

import (
	"context"
	"errors"
	"math"

	"fcajbot/config"
	"fcajbot/types"
)

// ErrIndexMissing signals that no persisted index exists yet. Query-time
// callers must treat this as fatal and tell the operator to run
// ingestion; serving answers with an empty index is not allowed.
var ErrIndexMissing = errors.New("vector index not found, run the ingest command first")

type VectorStorer interface {
	// Add buffers or writes chunks with their embeddings.
	Add(ctx context.Context, chunks []types.Chunk) error
	// Search returns up to limit candidates nearest to the query vector,
	// best first, with Score and Embedding populated.
	Search(ctx context.Context, vector []float32, limit int) ([]types.Chunk, error)
	Count(ctx context.Context) (int, error)
	// Clear drops the previous index contents before a rebuild.
	Clear(ctx context.Context) error
	// Persist makes the added chunks durable.
	Persist(ctx context.Context) error
	Close() error
}

// New returns an empty store for ingestion, per the configured backend.
func New(ctx context.Context, cfg *config.Settings) (VectorStorer, error) {
	switch cfg.StoreType {
	case "postgres":
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return NewFileStore(cfg.VectorstorePath), nil
	}
}

// Open returns the persisted store for querying. A missing or empty
// index yields ErrIndexMissing.
func Open(ctx context.Context, cfg *config.Settings) (VectorStorer, error) {
	switch cfg.StoreType {
	case "postgres":
		s, err := NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		n, err := s.Count(ctx)
		if err != nil {
			s.Close()
			return nil, err
		}
		if n == 0 {
			s.Close()
			return nil, ErrIndexMissing
		}
		return s, nil
	default:
		return OpenFileStore(cfg.VectorstorePath)
	}
}

// CosineSimilarity over raw vectors. Embedders normalize their output,
// but stored vectors may come from elsewhere, so both norms are taken
// into account.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
