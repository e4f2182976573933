package retriever

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fcajbot/types"
)

func chunk(content string, emb []float32) types.Chunk {
	return types.Chunk{Content: content, Embedding: emb}
}

func TestSelectMMRMostRelevantFirst(t *testing.T) {
	query := []float32{1, 0}
	candidates := []types.Chunk{
		chunk("far", []float32{0, 1}),
		chunk("near", []float32{1, 0}),
	}
	got := selectMMR(query, candidates, 1, 0.5)
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].Content)
}

func TestSelectMMRPrefersDiversity(t *testing.T) {
	query := []float32{1, 0}
	// Two near-duplicates on one side of the query plus one equally
	// relevant chunk on the other side.
	candidates := []types.Chunk{
		chunk("dup-1", []float32{0.95, -0.312}),
		chunk("dup-2", []float32{0.93, -0.37}),
		chunk("other", []float32{0.93, 0.37}),
	}
	got := selectMMR(query, candidates, 2, 0.5)
	require.Len(t, got, 2)
	assert.Equal(t, "dup-1", got[0].Content)
	assert.Equal(t, "other", got[1].Content, "second pick should skip the near-duplicate")
}

func TestSelectMMRCapsAtCandidateCount(t *testing.T) {
	query := []float32{1, 0}
	candidates := []types.Chunk{chunk("only", []float32{1, 0})}
	got := selectMMR(query, candidates, 5, 0.5)
	assert.Len(t, got, 1)
}

func TestSelectMMRZeroK(t *testing.T) {
	assert.Empty(t, selectMMR([]float32{1}, []types.Chunk{chunk("a", []float32{1})}, 0, 0.5))
}
