// Package retriever answers "which chunks are relevant to this query".
// It embeds the query with the same model the index was built with,
// pulls a candidate pool from the store and, in mmr mode, diversifies
// the final selection.
package retriever

import (
	"context"
	"fmt"

	"fcajbot/config"
	"fcajbot/model"
	"fcajbot/store"
	"fcajbot/types"
)

type Retriever struct {
	cfg      *config.Settings
	embedder model.Embedder
	storer   store.VectorStorer
}

func New(cfg *config.Settings, embedder model.Embedder, storer store.VectorStorer) *Retriever {
	return &Retriever{cfg: cfg, embedder: embedder, storer: storer}
}

// Retrieve returns up to SearchK chunks for the query. The candidate
// pool has FetchK entries; with search type "mmr" the final K are picked
// by maximal marginal relevance, otherwise plain top-K by similarity.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]types.Chunk, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := r.storer.Search(ctx, vec, r.cfg.FetchK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	if r.cfg.SearchType == "mmr" {
		return selectMMR(vec, candidates, r.cfg.SearchK, r.cfg.MMRLambda), nil
	}
	if len(candidates) > r.cfg.SearchK {
		candidates = candidates[:r.cfg.SearchK]
	}
	return candidates, nil
}
