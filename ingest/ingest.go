// Package ingest builds the vector index: it discovers source documents
// under the data directory, splits them into overlapping chunks, embeds
// every chunk and persists the result through a vector store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fcajbot/config"
	"fcajbot/model"
	"fcajbot/splitter"
	"fcajbot/store"
	"fcajbot/types"
)

type Stats struct {
	Documents int
	Chunks    int
	Skipped   int
}

type Ingestor struct {
	cfg      *config.Settings
	embedder model.Embedder
	storer   store.VectorStorer
	split    *splitter.Splitter
	logger   *slog.Logger
}

func New(cfg *config.Settings, embedder model.Embedder, storer store.VectorStorer) *Ingestor {
	return &Ingestor{
		cfg:      cfg,
		embedder: embedder,
		storer:   storer,
		split:    splitter.New(cfg.ChunkSize, cfg.ChunkOverlap),
		logger:   slog.Default(),
	}
}

// Run rebuilds the whole index from the data directory, overwriting any
// prior index at the configured location. An unreadable individual file
// is skipped with a warning; an unreachable embedder aborts the run.
func (ing *Ingestor) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	paths, err := ing.discover()
	if err != nil {
		return stats, err
	}
	if len(paths) == 0 {
		ing.logger.Warn("no .pdf or .txt files found, building an empty index",
			"data_path", ing.cfg.DataPath)
	}

	if err := ing.storer.Clear(ctx); err != nil {
		return stats, fmt.Errorf("clear previous index: %w", err)
	}

	for _, path := range paths {
		doc, err := loadDocument(path)
		if err != nil {
			ing.logger.Warn("skipping unreadable file", "path", path, "error", err)
			stats.Skipped++
			continue
		}

		chunks, err := ing.indexDocument(ctx, doc)
		if err != nil {
			return stats, fmt.Errorf("index %s: %w", path, err)
		}

		stats.Documents++
		stats.Chunks += chunks
		ing.logger.Info("indexed document", "path", path, "chunks", chunks)
	}

	if err := ing.storer.Persist(ctx); err != nil {
		return stats, fmt.Errorf("persist index: %w", err)
	}
	return stats, nil
}

// discover walks the data directory recursively and collects supported
// files in a stable order.
func (ing *Ingestor) discover() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(ing.cfg.DataPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf", ".txt":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan data directory %s: %w", ing.cfg.DataPath, err)
	}
	return paths, nil
}

func loadDocument(path string) (types.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err := extractPDFText(path)
		if err != nil {
			return types.Document{}, err
		}
		return types.Document{Source: path, Content: text}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, err
	}
	return types.Document{Source: path, Content: string(data)}, nil
}

// indexDocument splits, embeds and stores one document. Embedding errors
// are not skippable: a half-embedded index would be worse than no index.
func (ing *Ingestor) indexDocument(ctx context.Context, doc types.Document) (int, error) {
	parts := ing.split.Split(doc.Content)
	if len(parts) == 0 {
		return 0, nil
	}

	vectors, err := ing.embedder.EmbedBatch(ctx, parts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	chunks := make([]types.Chunk, len(parts))
	for i, content := range parts {
		chunks[i] = types.Chunk{
			ID:        uuid.New(),
			Source:    doc.Source,
			Index:     i,
			Content:   content,
			Embedding: vectors[i],
		}
	}
	if err := ing.storer.Add(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}
	return len(chunks), nil
}
