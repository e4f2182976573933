package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultChatModel, cfg.ChatModel)
	assert.Equal(t, DefaultGroqBaseURL, cfg.GroqBaseURL)
	assert.InDelta(t, 0.1, float64(cfg.Temperature), 1e-6)
	assert.Equal(t, "mmr", cfg.SearchType)
	assert.Equal(t, 5, cfg.SearchK)
	assert.Equal(t, 10, cfg.FetchK)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.ChunkOverlap)
	assert.Equal(t, "vectorstore", cfg.VectorstorePath)
	assert.Equal(t, "data", cfg.DataPath)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SEARCH_K", "3")
	t.Setenv("FETCH_K", "7")
	t.Setenv("CHUNK_SIZE", "200")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("SEARCH_TYPE", "similarity")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.SearchK)
	assert.Equal(t, 7, cfg.FetchK)
	assert.Equal(t, 200, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, "similarity", cfg.SearchType)
}

func TestLoadRejectsOverlapLargerThanChunk(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsFetchKBelowSearchK(t *testing.T) {
	t.Setenv("SEARCH_K", "10")
	t.Setenv("FETCH_K", "5")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadPostgresNeedsDSN(t *testing.T) {
	t.Setenv("STORE_TYPE", "postgres")
	_, err := Load()
	require.Error(t, err)
}

func TestRequireAPIKey(t *testing.T) {
	cfg := &Settings{}
	require.Error(t, cfg.RequireAPIKey())
	cfg.GroqAPIKey = "gsk_x"
	require.NoError(t, cfg.RequireAPIKey())
}
