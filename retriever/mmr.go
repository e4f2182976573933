package retriever

import (
	"fcajbot/store"
	"fcajbot/types"
)

// selectMMR picks k chunks from the candidate pool by maximal marginal
// relevance: each step takes the candidate maximizing
//
//	lambda*sim(candidate, query) - (1-lambda)*max sim(candidate, selected)
//
// so the result stays relevant to the query while penalizing candidates
// that repeat what is already selected.
func selectMMR(query []float32, candidates []types.Chunk, k int, lambda float64) []types.Chunk {
	if k <= 0 {
		return nil
	}
	if k > len(candidates) {
		k = len(candidates)
	}

	relevance := make([]float64, len(candidates))
	for i, c := range candidates {
		relevance[i] = store.CosineSimilarity(query, c.Embedding)
	}

	selected := make([]types.Chunk, 0, k)
	picked := make([]bool, len(candidates))

	for len(selected) < k {
		best := -1
		bestScore := 0.0
		for i := range candidates {
			if picked[i] {
				continue
			}
			redundancy := 0.0
			for _, s := range selected {
				if sim := store.CosineSimilarity(candidates[i].Embedding, s.Embedding); sim > redundancy {
					redundancy = sim
				}
			}
			score := lambda*relevance[i] - (1-lambda)*redundancy
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best == -1 {
			break
		}
		picked[best] = true
		selected = append(selected, candidates[best])
	}
	return selected
}
