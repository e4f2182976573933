package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fcajbot/config"
	"fcajbot/ingest"
	"fcajbot/model"
	"fcajbot/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	embedder, err := model.NewEmbedder(cfg)
	if err != nil {
		slog.Error("embedder unavailable", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	storer, err := store.New(ctx, cfg)
	if err != nil {
		slog.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer storer.Close()

	stats, err := ingest.New(cfg, embedder, storer).Run(ctx)
	if err != nil {
		slog.Error("ingestion failed", "error", err)
		os.Exit(1)
	}

	slog.Info("ingestion complete",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"skipped", stats.Skipped,
		"index", cfg.VectorstorePath)
}
