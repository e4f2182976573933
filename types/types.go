package types

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Chunk is one indexed span of source text together with its embedding.
// Chunks are immutable once written to a store; re-running ingestion
// replaces the whole index.
type Chunk struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Index     int       `json:"index"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
	Score     float64   `json:"-"`
}

// Document is a single source file before splitting.
type Document struct {
	Source  string
	Content string
}

// Turn is one message within a conversation session.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
