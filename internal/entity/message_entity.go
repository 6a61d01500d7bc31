package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id          uuid.UUID
	ThreadId    uuid.UUID
	Role        string
	Content     string
	RagStrategy string // set on assistant messages only
	Provenance  string // document | tool | search | mixed | none
	CreatedAt   time.Time
}
