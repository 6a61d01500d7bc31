package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Name                  string  `json:"name" validate:"required,max=100"`
	ChunkSize             int     `json:"chunk_size,omitempty" validate:"omitempty,min=50,max=8000"`
	ChunkOverlap          int     `json:"chunk_overlap,omitempty" validate:"omitempty,min=0"`
	RetrievalStrategy     string  `json:"retrieval_strategy,omitempty" validate:"omitempty,oneof=naive chunking contextual multi_query"`
	InternetSearchEnabled bool    `json:"internet_search_enabled,omitempty"`
	ModelProvider         string  `json:"model_provider,omitempty"`
	ModelName             string  `json:"model_name,omitempty"`
	Temperature           float64 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`
	MaxTokens             int     `json:"max_tokens,omitempty" validate:"omitempty,min=1"`
}

type UpdateSessionRequest struct {
	Id                    uuid.UUID `json:"-"`
	Name                  *string   `json:"name,omitempty" validate:"omitempty,max=100"`
	ChunkSize             *int      `json:"chunk_size,omitempty" validate:"omitempty,min=50,max=8000"`
	ChunkOverlap          *int      `json:"chunk_overlap,omitempty" validate:"omitempty,min=0"`
	RetrievalStrategy     *string   `json:"retrieval_strategy,omitempty" validate:"omitempty,oneof=naive chunking contextual multi_query"`
	InternetSearchEnabled *bool     `json:"internet_search_enabled,omitempty"`
	IsActive              *bool     `json:"is_active,omitempty"`
	Temperature           *float64  `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`
	MaxTokens             *int      `json:"max_tokens,omitempty" validate:"omitempty,min=1"`
}

type SessionResponse struct {
	Id                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	ChunkSize             int        `json:"chunk_size"`
	ChunkOverlap          int        `json:"chunk_overlap"`
	RetrievalStrategy     string     `json:"retrieval_strategy"`
	InternetSearchEnabled bool       `json:"internet_search_enabled"`
	ModelProvider         string     `json:"model_provider,omitempty"`
	ModelName             string     `json:"model_name,omitempty"`
	Temperature           float64    `json:"temperature"`
	MaxTokens             int        `json:"max_tokens"`
	IsActive              bool       `json:"is_active"`
	DocumentCount         int64      `json:"document_count"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at"`
}
