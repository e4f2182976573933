package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fcajbot/types"
)

func testChunk(content string, emb []float32) types.Chunk {
	return types.Chunk{
		ID:        uuid.New(),
		Source:    "data/noi-quy.txt",
		Content:   content,
		Embedding: emb,
	}
}

func TestOpenFileStoreMissingIndex(t *testing.T) {
	_, err := OpenFileStore(filepath.Join(t.TempDir(), "vectorstore"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexMissing))
}

func TestFileStorePersistAndReload(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "vectorstore")

	s := NewFileStore(dir)
	require.NoError(t, s.Add(ctx, []types.Chunk{
		testChunk("điểm cộng workshop", []float32{1, 0}),
		testChunk("quy định vi phạm", []float32{0, 1}),
	}))
	require.NoError(t, s.Persist(ctx))

	loaded, err := OpenFileStore(dir)
	require.NoError(t, err)
	n, err := loaded.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFileStoreSearchRanksByCosine(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Add(ctx, []types.Chunk{
		testChunk("a", []float32{1, 0}),
		testChunk("b", []float32{0.7, 0.7}),
		testChunk("c", []float32{0, 1}),
	}))

	got, err := s.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Content)
	assert.Equal(t, "b", got[1].Content)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestFileStoreSearchLimitCapped(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Add(ctx, []types.Chunk{testChunk("only", []float32{1, 0})}))

	got, err := s.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFileStoreRejectsChunkWithoutEmbedding(t *testing.T) {
	s := NewFileStore(t.TempDir())
	err := s.Add(context.Background(), []types.Chunk{{ID: uuid.New(), Content: "x"}})
	require.Error(t, err)
}

func TestFileStorePersistOverwrites(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "vectorstore")

	s := NewFileStore(dir)
	require.NoError(t, s.Add(ctx, []types.Chunk{testChunk("old", []float32{1, 0})}))
	require.NoError(t, s.Persist(ctx))

	rebuilt := NewFileStore(dir)
	require.NoError(t, rebuilt.Add(ctx, []types.Chunk{
		testChunk("new 1", []float32{1, 0}),
		testChunk("new 2", []float32{0, 1}),
	}))
	require.NoError(t, rebuilt.Persist(ctx))

	loaded, err := OpenFileStore(dir)
	require.NoError(t, err)
	n, _ := loaded.Count(ctx)
	assert.Equal(t, 2, n)
}
