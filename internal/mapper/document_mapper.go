package mapper

import (
	"docchat-be/internal/entity"
	"docchat-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Filename:   d.Filename,
		Content:    d.Content,
		SizeBytes:  d.SizeBytes,
		PageCount:  d.PageCount,
		Processed:  d.Processed,
		UploadedAt: d.UploadedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Filename:   d.Filename,
		Content:    d.Content,
		SizeBytes:  d.SizeBytes,
		PageCount:  d.PageCount,
		Processed:  d.Processed,
		UploadedAt: d.UploadedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
