package model

import (
	"time"

	"github.com/google/uuid"
)

type Tool struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId        uuid.UUID `gorm:"type:uuid;not null;index:idx_tools_session_name,unique"`
	Name             string    `gorm:"type:varchar(100);not null;index:idx_tools_session_name,unique"`
	ToolType         string    `gorm:"type:varchar(20);not null"`
	ApiUrl           string    `gorm:"type:varchar(1000)"`
	HttpMethod       string    `gorm:"type:varchar(10);default:'GET'"`
	FunctionName     string    `gorm:"type:varchar(100)"`
	Description      string    `gorm:"type:text"`
	ParamsDocstring  string    `gorm:"type:text"`
	ReturnsDocstring string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Tool) TableName() string {
	return "tools"
}
