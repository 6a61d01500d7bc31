package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Filename   string
	Content    string
	SizeBytes  int64
	PageCount  int
	Processed  bool
	UploadedAt time.Time
}
