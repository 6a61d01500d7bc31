package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	SessionId  uuid.UUID `json:"session_id"`
	Filename   string    `json:"filename"`
	SizeBytes  int64     `json:"size_bytes"`
	PageCount  int       `json:"page_count"`
	Processed  bool      `json:"processed"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadDocumentResponse is the ingestion boundary contract: the
// caller learns how many chunks were indexed and whether processing
// succeeded.
type UploadDocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	ChunkCount int       `json:"chunk_count"`
	Processed  bool      `json:"processed"`
}

// IndexDocumentMessage is the watermill payload for async re-indexing.
type IndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
