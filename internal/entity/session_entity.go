package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the isolation boundary for documents, chunks, threads and
// tools. Retrieval for a session only ever sees chunks owned by it.
type Session struct {
	Id                    uuid.UUID
	Name                  string
	ChunkSize             int
	ChunkOverlap          int
	RetrievalStrategy     string
	InternetSearchEnabled bool
	ModelProvider         string
	ModelName             string
	Temperature           float64
	MaxTokens             int
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}
