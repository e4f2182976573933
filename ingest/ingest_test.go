package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fcajbot/config"
	"fcajbot/store"
)

// fakeEmbedder returns a deterministic vector per text so tests do not
// need a live endpoint.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return []float32{float32(len(text)), 1}, nil
}

func (f fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = f.Embed(ctx, t)
	}
	return out, nil
}

func (fakeEmbedder) ModelInfo() string { return "fake" }

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	dir := t.TempDir()
	return &config.Settings{
		DataPath:        filepath.Join(dir, "data"),
		VectorstorePath: filepath.Join(dir, "vectorstore"),
		ChunkSize:       500,
		ChunkOverlap:    100,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunIndexesTextFiles(t *testing.T) {
	cfg := testSettings(t)
	writeFile(t, filepath.Join(cfg.DataPath, "noi-quy.txt"), "Quy định chung của FCAJ.\n\nĐiểm cộng cho workshop.")
	writeFile(t, filepath.Join(cfg.DataPath, "sub", "diem.txt"), "Cách tính điểm trong chương trình.")
	writeFile(t, filepath.Join(cfg.DataPath, "ignore.md"), "not indexed")

	s := store.NewFileStore(cfg.VectorstorePath)
	stats, err := New(cfg, fakeEmbedder{}, s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 0, stats.Skipped)
	require.Greater(t, stats.Chunks, 0)

	loaded, err := store.OpenFileStore(cfg.VectorstorePath)
	require.NoError(t, err)
	n, err := loaded.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.Chunks, n)
}

func TestRunEmptyDirectoryBuildsEmptyIndex(t *testing.T) {
	cfg := testSettings(t)
	require.NoError(t, os.MkdirAll(cfg.DataPath, 0755))

	s := store.NewFileStore(cfg.VectorstorePath)
	stats, err := New(cfg, fakeEmbedder{}, s).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	// The marker file exists, so query time will not refuse to start.
	_, err = store.OpenFileStore(cfg.VectorstorePath)
	require.NoError(t, err)
}

func TestRunCountStability(t *testing.T) {
	cfg := testSettings(t)
	writeFile(t, filepath.Join(cfg.DataPath, "doc.txt"), "FCAJ là cộng đồng học AWS tại Việt Nam. Chương trình có nhiều workshop.")

	first, err := New(cfg, fakeEmbedder{}, store.NewFileStore(cfg.VectorstorePath)).Run(context.Background())
	require.NoError(t, err)
	second, err := New(cfg, fakeEmbedder{}, store.NewFileStore(cfg.VectorstorePath)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Chunks, second.Chunks)
}

func TestRunSkipsUnreadablePDF(t *testing.T) {
	cfg := testSettings(t)
	writeFile(t, filepath.Join(cfg.DataPath, "broken.pdf"), "this is not a pdf")
	writeFile(t, filepath.Join(cfg.DataPath, "good.txt"), "Nội dung hợp lệ.")

	stats, err := New(cfg, fakeEmbedder{}, store.NewFileStore(cfg.VectorstorePath)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, stats.Skipped)
}
