package mapper

import (
	"time"

	"docchat-be/internal/entity"
	"docchat-be/internal/model"
)

type ToolMapper struct{}

func NewToolMapper() *ToolMapper {
	return &ToolMapper{}
}

func (m *ToolMapper) ToEntity(t *model.Tool) *entity.Tool {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Tool{
		Id:               t.Id,
		SessionId:        t.SessionId,
		Name:             t.Name,
		ToolType:         t.ToolType,
		ApiUrl:           t.ApiUrl,
		HttpMethod:       t.HttpMethod,
		FunctionName:     t.FunctionName,
		Description:      t.Description,
		ParamsDocstring:  t.ParamsDocstring,
		ReturnsDocstring: t.ReturnsDocstring,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *ToolMapper) ToModel(t *entity.Tool) *model.Tool {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Tool{
		Id:               t.Id,
		SessionId:        t.SessionId,
		Name:             t.Name,
		ToolType:         t.ToolType,
		ApiUrl:           t.ApiUrl,
		HttpMethod:       t.HttpMethod,
		FunctionName:     t.FunctionName,
		Description:      t.Description,
		ParamsDocstring:  t.ParamsDocstring,
		ReturnsDocstring: t.ReturnsDocstring,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *ToolMapper) ToEntities(tools []*model.Tool) []*entity.Tool {
	entities := make([]*entity.Tool, len(tools))
	for i, t := range tools {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
