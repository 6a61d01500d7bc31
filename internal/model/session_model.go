package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                  string    `gorm:"type:varchar(100);not null"`
	ChunkSize             int       `gorm:"not null;default:1000"`
	ChunkOverlap          int       `gorm:"not null;default:200"`
	RetrievalStrategy     string    `gorm:"type:varchar(50);not null;default:'contextual'"`
	InternetSearchEnabled bool      `gorm:"not null;default:false"`
	ModelProvider         string    `gorm:"type:varchar(50)"`
	ModelName             string    `gorm:"type:varchar(100)"`
	Temperature           float64   `gorm:"default:0.1"`
	MaxTokens             int       `gorm:"default:1024"`
	IsActive              bool      `gorm:"not null;default:true"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
