package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"fcajbot/types"
)

// PostgresStore is the pgvector-backed alternative to the file store,
// for deployments that already run Postgres. Rows are durable as soon as
// Add returns, so Persist is a no-op.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	ready  bool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{pool: pool, logger: slog.Default()}, nil
}

// ensureSchema creates the chunks table sized to the embedding
// dimension of the first batch. The dimension is fixed per embedding
// model, so later batches always match.
func (p *PostgresStore) ensureSchema(ctx context.Context, dim int) error {
	if p.ready {
		return nil
	}
	query := fmt.Sprintf(`
    CREATE EXTENSION IF NOT EXISTS vector;

    CREATE TABLE IF NOT EXISTS chunks (
        id UUID PRIMARY KEY,
        source TEXT NOT NULL,
        position INT NOT NULL,
        content TEXT NOT NULL,
        embedding vector(%d) NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_chunks_embedding ON chunks
        USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);
    `, dim)
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	p.ready = true
	return nil
}

func (p *PostgresStore) Add(ctx context.Context, chunks []types.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := p.ensureSchema(ctx, len(chunks[0].Embedding)); err != nil {
		return err
	}

	query := `
    INSERT INTO chunks (id, source, position, content, embedding)
    VALUES ($1, $2, $3, $4, $5)
    `
	for _, c := range chunks {
		if _, err := p.pool.Exec(ctx, query,
			c.ID, c.Source, c.Index, c.Content, pgvector.NewVector(c.Embedding),
		); err != nil {
			return fmt.Errorf("insert chunk %s: %w", c.ID, err)
		}
	}
	return nil
}

func (p *PostgresStore) Search(ctx context.Context, vector []float32, limit int) ([]types.Chunk, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	query := `
    SELECT id, source, position, content, embedding,
           1 - (embedding <=> $1) AS score
    FROM chunks
    ORDER BY embedding <=> $1
    LIMIT $2
    `
	rows, err := p.pool.Query(ctx, query, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	defer rows.Close()

	var chunks []types.Chunk
	for rows.Next() {
		var c types.Chunk
		var emb pgvector.Vector
		if err := rows.Scan(&c.ID, &c.Source, &c.Index, &c.Content, &emb, &c.Score); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		c.Embedding = emb.Slice()
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func (p *PostgresStore) Count(ctx context.Context) (int, error) {
	var exists bool
	if err := p.pool.QueryRow(ctx, "SELECT to_regclass('chunks') IS NOT NULL").Scan(&exists); err != nil {
		return 0, fmt.Errorf("check chunks table: %w", err)
	}
	if !exists {
		return 0, nil
	}

	var n int
	if err := p.pool.QueryRow(ctx, "SELECT count(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, "DROP TABLE IF EXISTS chunks")
	p.ready = false
	return err
}

func (p *PostgresStore) Persist(ctx context.Context) error {
	return nil
}

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.logger.Info("postgres connection pool closed")
	}
	return nil
}
