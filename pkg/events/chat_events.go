package events

import (
	"time"

	"github.com/google/uuid"
)

// DocumentIndexedEvent fires after a document's chunks are embedded and
// stored. Consumers are best-effort; a lost event never blocks a turn.
type DocumentIndexedEvent struct {
	DocumentId uuid.UUID
	SessionId  uuid.UUID
	ChunkCount int
	OccurredAt time.Time
}

func NewDocumentIndexedEvent(documentId, sessionId uuid.UUID, chunkCount int) DocumentIndexedEvent {
	return DocumentIndexedEvent{
		DocumentId: documentId,
		SessionId:  sessionId,
		ChunkCount: chunkCount,
		OccurredAt: time.Now(),
	}
}

func (e DocumentIndexedEvent) EventType() string {
	return "DOCUMENT_INDEXED"
}

func (e DocumentIndexedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"document_id": e.DocumentId.String(),
		"session_id":  e.SessionId.String(),
		"chunk_count": e.ChunkCount,
		"occurred_at": e.OccurredAt.Format(time.RFC3339),
	}
}

func (e DocumentIndexedEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ChatTurnCompletedEvent fires after a full user/assistant exchange is
// persisted.
type ChatTurnCompletedEvent struct {
	SessionId  uuid.UUID
	ThreadId   uuid.UUID
	Strategy   string
	Provenance string
	OccurredAt time.Time
}

func NewChatTurnCompletedEvent(sessionId, threadId uuid.UUID, strategy, provenance string) ChatTurnCompletedEvent {
	return ChatTurnCompletedEvent{
		SessionId:  sessionId,
		ThreadId:   threadId,
		Strategy:   strategy,
		Provenance: provenance,
		OccurredAt: time.Now(),
	}
}

func (e ChatTurnCompletedEvent) EventType() string {
	return "CHAT_TURN_COMPLETED"
}

func (e ChatTurnCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":  e.SessionId.String(),
		"thread_id":   e.ThreadId.String(),
		"strategy":    e.Strategy,
		"provenance":  e.Provenance,
		"occurred_at": e.OccurredAt.Format(time.RFC3339),
	}
}

func (e ChatTurnCompletedEvent) Timestamp() time.Time {
	return e.OccurredAt
}
