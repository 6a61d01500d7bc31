package entity

import (
	"time"

	"github.com/google/uuid"
)

// Thread is one conversational lineage within a session.
type Thread struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
