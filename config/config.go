// Package config holds all runtime settings of the assistant. Values come
// from the environment (a .env file is loaded by the commands); defaults
// mirror the production deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultChatModel      = "llama-3.1-8b-instant"
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultGroqBaseURL    = "https://api.groq.com/openai/v1"
)

type Settings struct {
	// Hosted LLM (Groq, OpenAI-compatible).
	GroqAPIKey  string  `validate:"required"`
	GroqBaseURL string  `validate:"required,url"`
	ChatModel   string  `validate:"required"`
	Temperature float32 `validate:"gte=0,lte=2"`

	// Embeddings. EmbedderType selects "openai" (any OpenAI-compatible
	// endpoint) or "ollama" (native /api/embeddings).
	EmbedderType     string `validate:"oneof=openai ollama"`
	EmbeddingModel   string `validate:"required"`
	EmbeddingBaseURL string
	EmbeddingAPIKey  string

	// Vector store. StoreType selects "file" or "postgres".
	StoreType       string `validate:"oneof=file postgres"`
	VectorstorePath string `validate:"required"`
	PostgresDSN     string

	// Retrieval.
	SearchType string `validate:"oneof=mmr similarity"`
	SearchK    int    `validate:"gt=0"`
	FetchK     int    `validate:"gt=0,gtefield=SearchK"`
	MMRLambda  float64

	// Ingestion.
	DataPath     string `validate:"required"`
	ChunkSize    int    `validate:"gt=0"`
	ChunkOverlap int    `validate:"gte=0,ltfield=ChunkSize"`

	// Server.
	ListenAddr     string
	RequestTimeout time.Duration
}

// Load reads settings from the environment and applies defaults.
// The LLM API key is deliberately not checked here: ingestion does not
// need it. Query-time callers must call RequireAPIKey.
func Load() (*Settings, error) {
	s := &Settings{
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:      envOr("GROQ_BASE_URL", DefaultGroqBaseURL),
		ChatModel:        envOr("LLM_MODEL", DefaultChatModel),
		Temperature:      float32(envFloat("LLM_TEMPERATURE", 0.1)),
		EmbedderType:     envOr("EMBEDDER_TYPE", "openai"),
		EmbeddingModel:   envOr("EMBEDDING_MODEL", DefaultEmbeddingModel),
		EmbeddingBaseURL: os.Getenv("EMBEDDING_BASE_URL"),
		EmbeddingAPIKey:  os.Getenv("EMBEDDING_API_KEY"),
		StoreType:        envOr("STORE_TYPE", "file"),
		VectorstorePath:  envOr("VECTORSTORE_PATH", "vectorstore"),
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		SearchType:       envOr("SEARCH_TYPE", "mmr"),
		SearchK:          envInt("SEARCH_K", 5),
		FetchK:           envInt("FETCH_K", 10),
		MMRLambda:        envFloat("MMR_LAMBDA", 0.5),
		DataPath:         envOr("DATA_PATH", "data"),
		ChunkSize:        envInt("CHUNK_SIZE", 500),
		ChunkOverlap:     envInt("CHUNK_OVERLAP", 100),
		ListenAddr:       envOr("SERVER_ADDR", ":8080"),
		RequestTimeout:   envDuration("REQUEST_TIMEOUT", 60*time.Second),
	}

	validate := validator.New()
	if err := validate.StructExcept(s, "GroqAPIKey"); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if s.StoreType == "postgres" && s.PostgresDSN == "" {
		return nil, fmt.Errorf("invalid configuration: STORE_TYPE=postgres requires POSTGRES_DSN")
	}
	return s, nil
}

// RequireAPIKey enforces the query-time credential. Missing key is a
// fatal configuration error, never a degraded mode.
func (s *Settings) RequireAPIKey() error {
	if s.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is not set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
