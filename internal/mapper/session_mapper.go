package mapper

import (
	"time"

	"docchat-be/internal/entity"
	"docchat-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:                    s.Id,
		Name:                  s.Name,
		ChunkSize:             s.ChunkSize,
		ChunkOverlap:          s.ChunkOverlap,
		RetrievalStrategy:     s.RetrievalStrategy,
		InternetSearchEnabled: s.InternetSearchEnabled,
		ModelProvider:         s.ModelProvider,
		ModelName:             s.ModelName,
		Temperature:           s.Temperature,
		MaxTokens:             s.MaxTokens,
		IsActive:              s.IsActive,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:                    s.Id,
		Name:                  s.Name,
		ChunkSize:             s.ChunkSize,
		ChunkOverlap:          s.ChunkOverlap,
		RetrievalStrategy:     s.RetrievalStrategy,
		InternetSearchEnabled: s.InternetSearchEnabled,
		ModelProvider:         s.ModelProvider,
		ModelName:             s.ModelName,
		Temperature:           s.Temperature,
		MaxTokens:             s.MaxTokens,
		IsActive:              s.IsActive,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
