package dto

import (
	"time"

	"github.com/google/uuid"
)

// RagConfigDTO overrides the session's retrieval configuration for a
// single turn.
type RagConfigDTO struct {
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=naive chunking contextual multi_query"`
	K        int    `json:"k,omitempty" validate:"omitempty,min=1,max=50"`
}

type SendMessageRequest struct {
	SessionId           uuid.UUID     `json:"session_id" validate:"required"`
	ThreadId            *uuid.UUID    `json:"thread_id,omitempty"`
	Message             string        `json:"message" validate:"required"`
	RagConfig           *RagConfigDTO `json:"rag_config,omitempty"`
	PreferInternetFirst bool          `json:"prefer_internet_first,omitempty"`
}

type MessageDTO struct {
	Id          uuid.UUID `json:"id"`
	ThreadId    uuid.UUID `json:"thread_id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	RagStrategy string    `json:"rag_strategy,omitempty"`
	Provenance  string    `json:"provenance,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SendMessageResponse struct {
	ThreadId    uuid.UUID   `json:"thread_id"`
	ThreadTitle string      `json:"thread_title"`
	Sent        *MessageDTO `json:"sent"`
	Reply       *MessageDTO `json:"reply"`
}

// StreamMessageChunk is one server-sent event of a streamed reply.
// The final chunk carries IsComplete.
type StreamMessageChunk struct {
	ThreadId    *uuid.UUID `json:"thread_id,omitempty"`
	Content     string     `json:"content"`
	IsComplete  bool       `json:"is_complete"`
	RagStrategy string     `json:"rag_strategy,omitempty"`
}

type ThreadDTO struct {
	Id        uuid.UUID  `json:"id"`
	SessionId uuid.UUID  `json:"session_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Messages []*MessageDTO `json:"messages"`
}

type StrategyDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
