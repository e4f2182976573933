package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"fcajbot/types"
)

// indexFileName is the ready marker: its presence under the index
// directory means ingestion has completed at least once.
const indexFileName = "index.json"

// FileStore keeps the whole index in memory and serializes it to a JSON
// file set on disk. Search is brute-force cosine over all entries, which
// is plenty for a corpus of community documents.
type FileStore struct {
	path   string
	chunks []types.Chunk
}

type indexFile struct {
	CreatedAt time.Time     `json:"created_at"`
	Chunks    []types.Chunk `json:"chunks"`
}

// NewFileStore returns an empty store rooted at path, for ingestion.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// OpenFileStore loads a persisted index. Returns ErrIndexMissing when
// the marker file does not exist.
func OpenFileStore(path string) (*FileStore, error) {
	name := filepath.Join(path, indexFileName)
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrIndexMissing)
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	var idx indexFile
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", name, err)
	}
	return &FileStore{path: path, chunks: idx.Chunks}, nil
}

func (s *FileStore) Add(ctx context.Context, chunks []types.Chunk) error {
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			return fmt.Errorf("chunk %s has no embedding", c.ID)
		}
	}
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *FileStore) Search(ctx context.Context, vector []float32, limit int) ([]types.Chunk, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	results := make([]types.Chunk, len(s.chunks))
	copy(results, s.chunks)
	for i := range results {
		results[i].Score = CosineSimilarity(vector, results[i].Embedding)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func (s *FileStore) Count(ctx context.Context) (int, error) {
	return len(s.chunks), nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.chunks = nil
	return nil
}

// Persist writes the index atomically: a temp file in the same
// directory, then rename over the marker. A prior index at the same
// location is overwritten.
func (s *FileStore) Persist(ctx context.Context) error {
	if err := os.MkdirAll(s.path, 0755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	data, err := json.Marshal(indexFile{CreatedAt: time.Now().UTC(), Chunks: s.chunks})
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	tmp, err := os.CreateTemp(s.path, "index-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp index: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.path, indexFileName)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
