package implementation

import (
	"context"
	"errors"

	"docchat-be/internal/entity"
	"docchat-be/internal/mapper"
	"docchat-be/internal/model"
	"docchat-be/internal/repository/contract"
	"docchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ToolRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ToolMapper
}

func NewToolRepository(db *gorm.DB) contract.ToolRepository {
	return &ToolRepositoryImpl{
		db:     db,
		mapper: mapper.NewToolMapper(),
	}
}

func (r *ToolRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ToolRepositoryImpl) Create(ctx context.Context, tool *entity.Tool) error {
	m := r.mapper.ToModel(tool)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tool = *r.mapper.ToEntity(m)
	return nil
}

func (r *ToolRepositoryImpl) Update(ctx context.Context, tool *entity.Tool) error {
	m := r.mapper.ToModel(tool)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*tool = *r.mapper.ToEntity(m)
	return nil
}

func (r *ToolRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tool{}, id).Error
}

func (r *ToolRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.Tool{}).Error
}

func (r *ToolRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tool, error) {
	var m model.Tool
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ToolRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tool, error) {
	var models []*model.Tool
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ToolRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Tool{}).Count(&count).Error
	return count, err
}
