package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is a contiguous span of document text, the unit of
// retrieval. Embedding vectors live in the model layer (pgvector).
type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	SessionId  uuid.UUID
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
