package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename   string    `gorm:"type:varchar(255);not null"`
	Content    string    `gorm:"type:text"` // extracted text kept for re-indexing
	SizeBytes  int64     `gorm:"not null"`
	PageCount  int       `gorm:"default:0"`
	Processed  bool      `gorm:"not null;default:false"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
