package implementation

import (
	"context"
	"errors"

	"workflow-hub-be/internal/entity"
	"workflow-hub-be/internal/mapper"
	"workflow-hub-be/internal/model"
	"workflow-hub-be/internal/repository/contract"
	"workflow-hub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CategoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkflowMapper
}

func NewCategoryRepository(db *gorm.DB) contract.CategoryRepository {
	return &CategoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkflowMapper(),
	}
}

func (r *CategoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entity.WorkflowCategory) error {
	m := r.mapper.CategoryToModel(category)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*category = *r.mapper.CategoryToEntity(m)
	return nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *entity.WorkflowCategory) error {
	m := r.mapper.CategoryToModel(category)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*category = *r.mapper.CategoryToEntity(m)
	return nil
}

func (r *CategoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowCategory, error) {
	var m model.WorkflowCategory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CategoryToEntity(&m), nil
}

func (r *CategoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowCategory, error) {
	var models []*model.WorkflowCategory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.WorkflowCategory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CategoryToEntity(m)
	}
	return entities, nil
}
